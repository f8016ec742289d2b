package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voyago/models"
)

// generateAlternative proposes a different destination, grounded in the
// full conversation so far. Used when the user accepts a pending
// suggestion offer.
func (s *DefaultPlannerService) generateAlternative(ctx context.Context, session *models.ConversationSession) (*models.AlternativeSuggestion, error) {
	var sb strings.Builder
	sb.WriteString("Based on this travel conversation, suggest ONE alternative destination the user might prefer, with a concrete reason and, if you can estimate it, a rough cost difference (negative means cheaper).\n\n")
	writeTranscript(&sb, session.History)

	var raw string
	err := s.retry().Do(ctx, func(ctx context.Context) error {
		var inner error
		raw, inner = s.GenAI.Generate(ctx, sb.String(), nil, SchemaFor(RequestSuggestion))
		return inner
	})
	if err != nil {
		return nil, Classify(err)
	}

	var suggestion models.AlternativeSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err != nil || suggestion.Location == "" {
		return nil, newParseError(fmt.Errorf("malformed suggestion response"))
	}
	return &suggestion, nil
}

// generateRealTime is the disruption path: given the user's current
// location and their latest saved itinerary, propose an immediate plan
// change (indoor venue, reshuffled day).
func (s *DefaultPlannerService) generateRealTime(ctx context.Context, session *models.ConversationSession, itinerary *models.SavedItinerary, turnText string) (*models.RealTimeSuggestion, error) {
	var sb strings.Builder
	sb.WriteString("The user's travel plans were just disrupted. Suggest ONE concrete alternative activity or venue they can switch to right now.\n")
	fmt.Fprintf(&sb, "User said: %q\n", turnText)
	if !session.Location.IsZero() {
		fmt.Fprintf(&sb, "User's current location: %.4f, %.4f\n", session.Location.Latitude, session.Location.Longitude)
	}
	fmt.Fprintf(&sb, "Their itinerary %q is in %s starting %s:\n", itinerary.Name, itinerary.Location, itinerary.StartDate)
	for _, day := range itinerary.Days {
		fmt.Fprintf(&sb, "%s:\n", day.Date)
		for _, stop := range day.Stops {
			fmt.Fprintf(&sb, "  %s %s\n", stop.Time, stop.Title)
		}
	}

	var raw string
	err := s.retry().Do(ctx, func(ctx context.Context) error {
		var inner error
		raw, inner = s.GenAI.Generate(ctx, sb.String(), nil, SchemaFor(RequestRealTime))
		return inner
	})
	if err != nil {
		return nil, Classify(err)
	}

	var suggestion models.RealTimeSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err != nil || suggestion.Venue == "" {
		return nil, newParseError(fmt.Errorf("malformed real-time suggestion response"))
	}
	return &suggestion, nil
}

func writeTranscript(sb *strings.Builder, history []models.ChatTurn) {
	for _, turn := range history {
		role := "User"
		if turn.Sender == models.SenderAssistant {
			role = "Assistant"
		}
		fmt.Fprintf(sb, "%s: %s\n", role, turn.Text)
	}
}
