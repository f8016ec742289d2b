package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"voyago/models"

	"go.uber.org/zap"
)

const (
	// maxRecentTrips caps how many saved trip refs ride along in the prompt.
	maxRecentTrips = 5
	// maxHistoryTurns caps how much transcript the interpreter sees.
	maxHistoryTurns = 12
)

// InterpretQuery turns the session's chat history, the user's profile
// defaults and recent saved trips (plus an optional image on the latest
// turn) into one validated ApiParams value. Exactly one generative call per
// invocation, wrapped by the retry policy; a non-conforming response is a
// parse error with no partial params.
func (s *DefaultPlannerService) InterpretQuery(ctx context.Context, session *models.ConversationSession, image *models.ImageAttachment) (*models.ApiParams, error) {
	logger := zap.L()

	profile, err := s.Profiles.GetProfile(ctx, session.UserID)
	if err != nil {
		// Profile only supplies defaults; interpret without it rather than fail.
		logger.Warn("interpreter: profile lookup failed", zap.String("userId", session.UserID), zap.Error(err))
		profile = &models.UserProfile{}
	}
	trips, err := s.Trips.RecentTripRefs(ctx, session.UserID, maxRecentTrips)
	if err != nil {
		logger.Warn("interpreter: trip refs lookup failed", zap.String("userId", session.UserID), zap.Error(err))
		trips = nil
	}

	prompt := buildInterpreterPrompt(session, profile, trips, time.Now())

	var raw string
	genErr := s.retry().Do(ctx, func(ctx context.Context) error {
		var inner error
		raw, inner = s.GenAI.Generate(ctx, prompt, image, SchemaFor(RequestInterpret))
		return inner
	})
	if genErr != nil {
		return nil, Classify(genErr)
	}

	params, err := decodeApiParams(raw)
	if err != nil {
		logger.Warn("interpreter: response failed validation", zap.Error(err))
		return nil, newParseError(err)
	}
	return params, nil
}

// decodeApiParams parses and validates a model response against the
// interpreter schema. Any violation rejects the whole response.
func decodeApiParams(raw string) (*models.ApiParams, error) {
	var params models.ApiParams
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("malformed interpreter response: %w", err)
	}
	if err := validateApiParams(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

func validateApiParams(p *models.ApiParams) error {
	if strings.TrimSpace(p.AnalyzedQuery) == "" {
		return fmt.Errorf("interpreter response missing analyzedQuery")
	}
	if f := p.Flight; f != nil {
		if f.Origin == "" || f.Destination == "" || f.DepartureDate == "" {
			return fmt.Errorf("flight params incomplete")
		}
	}
	if h := p.Hotel; h != nil {
		if h.Location == "" || h.CheckInDate == "" || h.CheckOutDate == "" {
			return fmt.Errorf("hotel params incomplete")
		}
	}
	if c := p.Car; c != nil {
		if c.Location == "" || c.PickupDate == "" || c.DropoffDate == "" {
			return fmt.Errorf("car params incomplete")
		}
	}
	if it := p.ItineraryRequest; it != nil && it.Location == "" {
		return fmt.Errorf("itinerary request missing location")
	}
	return nil
}

func buildInterpreterPrompt(session *models.ConversationSession, profile *models.UserProfile, trips []models.SavedTripRef, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("You translate a travel-planning conversation into structured search parameters.\n")
	fmt.Fprintf(&sb, "Today's date is %s.\n\n", now.Format("2006-01-02"))

	sb.WriteString("Rules:\n")
	sb.WriteString("- Fill analyzedQuery with a one-sentence restatement of the latest request.\n")
	sb.WriteString("- Only populate flight, hotel or car blocks the user actually asked for in the latest turn.\n")
	sb.WriteString("- The user's profile below supplies DEFAULTS for unspecified values (star minimums, budgets, car types, airlines, favorite destinations).\n")
	sb.WriteString("- If the latest turn states an explicit value, it OVERRIDES the profile default for this request.\n")
	sb.WriteString("- Resolve references like \"there\" or \"near my <name> trip\" against the most recent assistant-presented result location or the matching saved trip below. Never guess a different place.\n")
	sb.WriteString("- Only populate itineraryRequest if the user explicitly asked for activities, things to do, or an itinerary.\n")
	sb.WriteString("- Resolve relative dates (tomorrow, next weekend) against today's date, format YYYY-MM-DD.\n\n")

	sb.WriteString("User profile defaults:\n")
	if len(profile.PreferredAirlines) > 0 {
		fmt.Fprintf(&sb, "- Preferred airlines: %s\n", strings.Join(profile.PreferredAirlines, ", "))
	}
	if profile.MinHotelStars > 0 {
		fmt.Fprintf(&sb, "- Minimum hotel stars: %d\n", profile.MinHotelStars)
	}
	if len(profile.PreferredCarTypes) > 0 {
		fmt.Fprintf(&sb, "- Preferred car types: %s\n", strings.Join(profile.PreferredCarTypes, ", "))
	}
	if len(profile.FavoriteDests) > 0 {
		fmt.Fprintf(&sb, "- Favorite destinations: %s\n", strings.Join(profile.FavoriteDests, ", "))
	}
	for category, ceiling := range profile.BudgetCeilings {
		fmt.Fprintf(&sb, "- Budget ceiling (%s): %.0f\n", category, ceiling)
	}

	if len(trips) > 0 {
		sb.WriteString("\nSaved trips:\n")
		for _, t := range trips {
			fmt.Fprintf(&sb, "- %s (%s)\n", t.Name, t.Kind)
		}
	}

	sb.WriteString("\nConversation:\n")
	history := session.History
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	for _, turn := range history {
		role := "User"
		if turn.Sender == models.SenderAssistant {
			role = "Assistant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", role, turn.Text)
		if loc := resultLocation(turn.Results); loc != "" {
			fmt.Fprintf(&sb, "(assistant presented results for: %s)\n", loc)
		}
	}

	return sb.String()
}

// resultLocation extracts the location the given results were about, for
// anaphora resolution in later turns.
func resultLocation(results []models.SearchResult) string {
	for _, r := range results {
		switch r.Type {
		case models.ResultFlight:
			if r.Flight != nil {
				return r.Flight.Destination
			}
		case models.ResultStay:
			if r.Stay != nil {
				return r.Stay.Location
			}
		case models.ResultCar:
			if r.Car != nil {
				return r.Car.Location
			}
		}
	}
	return ""
}
