package planner

import (
	"context"
	"sync/atomic"
	"time"

	"voyago/models"

	genai "github.com/google/generative-ai-go/genai"
)

// genReply is one scripted response from the stub generative client.
type genReply struct {
	out string
	err error
}

// stubGenAI replays scripted replies in order, repeating the last one, and
// records every prompt and image it was given.
type stubGenAI struct {
	replies []genReply
	prompts []string
	images  []*models.ImageAttachment
	calls   int
}

func (s *stubGenAI) Generate(_ context.Context, prompt string, image *models.ImageAttachment, _ *genai.Schema) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.images = append(s.images, image)
	idx := s.calls
	if idx >= len(s.replies) {
		idx = len(s.replies) - 1
	}
	s.calls++
	reply := s.replies[idx]
	return reply.out, reply.err
}

// Function adapters for the provider interfaces.

type flightFunc func(ctx context.Context, params models.FlightParams) ([]models.SearchResult, error)

func (f flightFunc) Search(ctx context.Context, params models.FlightParams) ([]models.SearchResult, error) {
	return f(ctx, params)
}

type stayFunc func(ctx context.Context, params models.HotelParams) ([]models.SearchResult, error)

func (f stayFunc) Search(ctx context.Context, params models.HotelParams) ([]models.SearchResult, error) {
	return f(ctx, params)
}

type carFunc func(ctx context.Context, params models.CarParams) ([]models.SearchResult, error)

func (f carFunc) Search(ctx context.Context, params models.CarParams) ([]models.SearchResult, error) {
	return f(ctx, params)
}

type stubProfiles struct {
	profile *models.UserProfile
}

func (s *stubProfiles) GetProfile(context.Context, string) (*models.UserProfile, error) {
	if s.profile != nil {
		return s.profile, nil
	}
	return &models.UserProfile{}, nil
}

type stubTrips struct {
	refs      []models.SavedTripRef
	itinerary *models.SavedItinerary
}

func (s *stubTrips) RecentTripRefs(context.Context, string, int) ([]models.SavedTripRef, error) {
	return s.refs, nil
}

func (s *stubTrips) LatestItinerary(context.Context, string) (*models.SavedItinerary, error) {
	return s.itinerary, nil
}

// countingProvider tracks invocations for call-count assertions.
func countingFlights(counter *int32, results []models.SearchResult, err error) flightFunc {
	return func(context.Context, models.FlightParams) ([]models.SearchResult, error) {
		atomic.AddInt32(counter, 1)
		return results, err
	}
}

func countingStays(counter *int32, results []models.SearchResult, err error) stayFunc {
	return func(context.Context, models.HotelParams) ([]models.SearchResult, error) {
		atomic.AddInt32(counter, 1)
		return results, err
	}
}

func countingCars(counter *int32, results []models.SearchResult, err error) carFunc {
	return func(context.Context, models.CarParams) ([]models.SearchResult, error) {
		atomic.AddInt32(counter, 1)
		return results, err
	}
}

// newTestService wires a service with fast retries and harmless defaults;
// tests override the fields they exercise.
func newTestService(genAI GenAIClient) *DefaultPlannerService {
	return &DefaultPlannerService{
		GenAI:         genAI,
		Flights:       countingFlights(new(int32), nil, nil),
		Stays:         countingStays(new(int32), nil, nil),
		Cars:          countingCars(new(int32), nil, nil),
		Profiles:      &stubProfiles{},
		Trips:         &stubTrips{},
		Retry:         RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond},
		SearchTimeout: time.Second,
	}
}

func flightResult(airline, destination string) models.SearchResult {
	return models.SearchResult{
		Type: models.ResultFlight,
		Flight: &models.FlightResult{
			Airline:     airline,
			Origin:      "LIS",
			Destination: destination,
			Price:       220,
			Currency:    "EUR",
		},
	}
}

func stayResult(name, location string) models.SearchResult {
	return models.SearchResult{
		Type: models.ResultStay,
		Stay: &models.StayResult{
			Name:          name,
			Location:      location,
			Stars:         4,
			Rating:        8.6,
			PricePerNight: 150,
			Currency:      "EUR",
		},
	}
}

func carResult(company, location string) models.SearchResult {
	return models.SearchResult{
		Type: models.ResultCar,
		Car: &models.CarResult{
			Company:     company,
			Model:       "RAV4",
			CarType:     "SUV",
			Location:    location,
			PricePerDay: 55,
			Currency:    "USD",
		},
	}
}
