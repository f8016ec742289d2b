package planner

import (
	"context"
	"time"

	"voyago/models"
)

// FlightProvider searches flight offers.
type FlightProvider interface {
	Search(ctx context.Context, params models.FlightParams) ([]models.SearchResult, error)
}

// StayProvider searches hotel and stay offers.
type StayProvider interface {
	Search(ctx context.Context, params models.HotelParams) ([]models.SearchResult, error)
}

// CarProvider searches rental car offers.
type CarProvider interface {
	Search(ctx context.Context, params models.CarParams) ([]models.SearchResult, error)
}

// ProfileStore reads user preference defaults.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// TripStore reads saved trips for anaphora resolution and the disruption path.
type TripStore interface {
	RecentTripRefs(ctx context.Context, userID string, limit int) ([]models.SavedTripRef, error)
	LatestItinerary(ctx context.Context, userID string) (*models.SavedItinerary, error)
}

// PlannerService is the core pipeline exposed to the UI boundary. The
// boundary supplies the session and renders whatever the returned turn
// carries; it owns no pipeline logic itself.
type PlannerService interface {
	InterpretQuery(ctx context.Context, session *models.ConversationSession, image *models.ImageAttachment) (*models.ApiParams, error)
	DispatchSearch(ctx context.Context, params models.ApiParams) (*models.SearchOutcome, error)
	SynthesizeSummary(ctx context.Context, outcome *models.SearchOutcome, itinReq *models.ItineraryParams) (string, *models.ItinerarySnippet, error)
	AdvanceConversation(ctx context.Context, session *models.ConversationSession, turnText string, image *models.ImageAttachment) (*models.ChatTurn, error)
}

// DefaultPlannerService implements PlannerService.
type DefaultPlannerService struct {
	GenAI    GenAIClient
	Flights  FlightProvider
	Stays    StayProvider
	Cars     CarProvider
	Profiles ProfileStore
	Trips    TripStore

	Retry         RetryPolicy
	SearchTimeout time.Duration
}

func (s *DefaultPlannerService) retry() RetryPolicy {
	if s.Retry.MaxRetries == 0 && s.Retry.InitialDelay == 0 {
		return DefaultRetryPolicy
	}
	return s.Retry
}

func (s *DefaultPlannerService) searchTimeout() time.Duration {
	if s.SearchTimeout <= 0 {
		return 15 * time.Second
	}
	return s.SearchTimeout
}
