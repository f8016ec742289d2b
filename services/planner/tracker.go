package planner

import (
	"context"
	"time"

	"voyago/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// neutralAck answers a declined suggestion offer without searching.
	neutralAck = "No problem. Let me know whenever you'd like to search for flights, stays or cars."

	// suggestionOffer is appended after a turn that produced flight or stay
	// results, moving the session into AwaitingSuggestionResponse.
	suggestionOffer = " Would you like me to suggest an alternative destination as well?"
)

// AdvanceConversation processes one user turn and returns the assistant
// turn. Rules run in strict precedence order:
//
//  1. Disruption interrupt: a disruption-pattern match with a saved
//     itinerary bypasses the FSM entirely, whatever the current state.
//  2. AwaitingSuggestionResponse: a new-search pattern overrides the
//     pending offer and runs the full pipeline; an affirmative runs the
//     alternative-suggestion generator; anything else is a neutral ack.
//     All three branches land the state back on Idle.
//  3. Idle: the normal interpret, dispatch, synthesize pipeline.
//
// Classified upstream failures come back as an assistant turn carrying the
// canned message, never as a raw error; the returned error is reserved for
// programming mistakes (nil session).
func (s *DefaultPlannerService) AdvanceConversation(ctx context.Context, session *models.ConversationSession, turnText string, image *models.ImageAttachment) (*models.ChatTurn, error) {
	logger := zap.L()

	userTurn := models.ChatTurn{
		ID:         uuid.NewString(),
		Sender:     models.SenderUser,
		Text:       turnText,
		Attachment: image,
		CreatedAt:  time.Now(),
	}
	session.History = append(session.History, userTurn)

	// Rule 1: disruption interrupt, checked before the FSM even while a
	// suggestion offer is pending.
	if MatchesDisruption(turnText) {
		itinerary, err := s.Trips.LatestItinerary(ctx, session.UserID)
		if err != nil {
			logger.Warn("tracker: itinerary lookup failed", zap.String("userId", session.UserID), zap.Error(err))
		}
		if itinerary != nil {
			return s.appendTurn(session, s.disruptionTurn(ctx, session, itinerary, turnText)), nil
		}
	}

	// Rule 2: a pending suggestion offer.
	if session.State == models.StateAwaitingSuggestion {
		session.State = models.StateIdle
		switch {
		case MatchesNewSearch(turnText):
			// The new search overrides the pending offer.
			return s.appendTurn(session, s.pipelineTurn(ctx, session, image)), nil
		case MatchesAffirmative(turnText):
			return s.appendTurn(session, s.alternativeTurn(ctx, session)), nil
		default:
			return s.appendTurn(session, newAssistantTurn(neutralAck)), nil
		}
	}

	// Rule 3: idle, run the normal pipeline.
	return s.appendTurn(session, s.pipelineTurn(ctx, session, image)), nil
}

// pipelineTurn runs interpret, dispatch, synthesize and arms the
// suggestion offer when the results warrant one.
func (s *DefaultPlannerService) pipelineTurn(ctx context.Context, session *models.ConversationSession, image *models.ImageAttachment) models.ChatTurn {
	params, err := s.InterpretQuery(ctx, session, image)
	if err != nil {
		return classifiedTurn(err)
	}

	outcome, err := s.DispatchSearch(ctx, *params)
	if err != nil {
		return classifiedTurn(err)
	}

	summary, snippet, err := s.SynthesizeSummary(ctx, outcome, params.ItineraryRequest)
	if err != nil {
		return classifiedTurn(err)
	}

	turn := newAssistantTurn(summary)
	turn.AnalyzedQuery = params.AnalyzedQuery
	turn.Results = outcome.Results
	turn.Itinerary = snippet

	if hasBookableResult(outcome.Results) {
		turn.Text += suggestionOffer
		session.State = models.StateAwaitingSuggestion
	}
	return turn
}

func (s *DefaultPlannerService) alternativeTurn(ctx context.Context, session *models.ConversationSession) models.ChatTurn {
	suggestion, err := s.generateAlternative(ctx, session)
	if err != nil {
		return classifiedTurn(err)
	}
	turn := newAssistantTurn("How about " + suggestion.Location + "? " + suggestion.Reason)
	turn.Alternative = suggestion
	return turn
}

func (s *DefaultPlannerService) disruptionTurn(ctx context.Context, session *models.ConversationSession, itinerary *models.SavedItinerary, turnText string) models.ChatTurn {
	suggestion, err := s.generateRealTime(ctx, session, itinerary, turnText)
	if err != nil {
		return classifiedTurn(err)
	}
	turn := newAssistantTurn("You could try " + suggestion.Venue + " in " + suggestion.Location + ". " + suggestion.Reason)
	turn.RealTime = suggestion
	return turn
}

func (s *DefaultPlannerService) appendTurn(session *models.ConversationSession, turn models.ChatTurn) *models.ChatTurn {
	session.History = append(session.History, turn)
	return &session.History[len(session.History)-1]
}

// hasBookableResult reports whether the set contains at least one flight or
// stay; car-only results do not arm the suggestion offer.
func hasBookableResult(results []models.SearchResult) bool {
	for _, r := range results {
		if r.Type == models.ResultFlight || r.Type == models.ResultStay {
			return true
		}
	}
	return false
}

func newAssistantTurn(text string) models.ChatTurn {
	return models.ChatTurn{
		ID:        uuid.NewString(),
		Sender:    models.SenderAssistant,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// classifiedTurn converts a classified pipeline failure into the assistant
// message carrying its canned text.
func classifiedTurn(err error) models.ChatTurn {
	classified := Classify(err)
	return newAssistantTurn(classified.Message)
}
