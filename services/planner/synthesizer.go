package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voyago/models"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	// summarySampleCap bounds the prompt: the model sees at most this many
	// results, plus the true total so it never invents counts.
	summarySampleCap = 5

	// FallbackSummary is returned for an empty result set without touching
	// the upstream model.
	FallbackSummary = "I couldn't find any results for that search. Would you like to try different criteria?"
)

// SynthesizeSummary produces the one-sentence summary for an aggregated
// result set, and independently the itinerary snippet when one was
// requested. The snippet call is not conditional on search success.
func (s *DefaultPlannerService) SynthesizeSummary(ctx context.Context, outcome *models.SearchOutcome, itinReq *models.ItineraryParams) (string, *models.ItinerarySnippet, error) {
	summary := FallbackSummary
	if len(outcome.Results) > 0 {
		generated, err := s.generateSummary(ctx, outcome)
		if err != nil {
			return "", nil, err
		}
		summary = generated
	}

	var snippet *models.ItinerarySnippet
	if itinReq != nil {
		generated, err := s.generateItinerary(ctx, *itinReq)
		if err != nil {
			// The summary still stands on its own; degrade to no snippet.
			zap.L().Warn("synthesizer: itinerary generation failed", zap.Error(err))
		} else {
			snippet = generated
		}
	}

	return summary, snippet, nil
}

func (s *DefaultPlannerService) generateSummary(ctx context.Context, outcome *models.SearchOutcome) (string, error) {
	sample := lo.Slice(outcome.Results, 0, summarySampleCap)
	lines := lo.Map(sample, func(r models.SearchResult, _ int) string {
		return "- " + describeResult(r)
	})

	var sb strings.Builder
	sb.WriteString("Summarize these travel search results for the user in one friendly sentence.\n")
	fmt.Fprintf(&sb, "There are %d results in total; you are shown a sample of %d. Never state a count you cannot verify from the total given here.\n", len(outcome.Results), len(sample))
	if len(outcome.Failures) > 0 {
		providers := lo.Map(outcome.Failures, func(f models.ProviderFailure, _ int) string { return f.Provider })
		fmt.Fprintf(&sb, "Note: the %s search could not be completed; mention that briefly.\n", strings.Join(providers, " and "))
	}
	sb.WriteString("\nSample:\n")
	sb.WriteString(strings.Join(lines, "\n"))

	var raw string
	err := s.retry().Do(ctx, func(ctx context.Context) error {
		var inner error
		raw, inner = s.GenAI.Generate(ctx, sb.String(), nil, SchemaFor(RequestSummary))
		return inner
	})
	if err != nil {
		return "", Classify(err)
	}

	var decoded struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil || strings.TrimSpace(decoded.Summary) == "" {
		return "", newParseError(fmt.Errorf("malformed summary response"))
	}
	return decoded.Summary, nil
}

func (s *DefaultPlannerService) generateItinerary(ctx context.Context, req models.ItineraryParams) (*models.ItinerarySnippet, error) {
	days := req.Days
	if days <= 0 {
		days = 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Suggest a short %d-day activities itinerary for %s.\n", days, req.Location)
	if req.Interest != "" {
		fmt.Fprintf(&sb, "Focus on: %s.\n", req.Interest)
	}
	sb.WriteString("Keep it to 2-4 stops per day with realistic times.")

	var raw string
	err := s.retry().Do(ctx, func(ctx context.Context) error {
		var inner error
		raw, inner = s.GenAI.Generate(ctx, sb.String(), nil, SchemaFor(RequestItinerary))
		return inner
	})
	if err != nil {
		return nil, Classify(err)
	}

	var snippet models.ItinerarySnippet
	if err := json.Unmarshal([]byte(raw), &snippet); err != nil || snippet.Location == "" {
		return nil, newParseError(fmt.Errorf("malformed itinerary response"))
	}
	return &snippet, nil
}

func describeResult(r models.SearchResult) string {
	switch r.Type {
	case models.ResultFlight:
		if f := r.Flight; f != nil {
			return fmt.Sprintf("Flight %s %s, %s to %s, %d stops, %.2f %s",
				f.Airline, f.FlightNumber, f.Origin, f.Destination, f.Stops, f.Price, f.Currency)
		}
	case models.ResultStay:
		if st := r.Stay; st != nil {
			return fmt.Sprintf("Stay %s in %s, %d stars, rated %.1f, %.2f %s/night",
				st.Name, st.Location, st.Stars, st.Rating, st.PricePerNight, st.Currency)
		}
	case models.ResultCar:
		if c := r.Car; c != nil {
			return fmt.Sprintf("Car %s %s (%s) in %s, %.2f %s/day",
				c.Company, c.Model, c.CarType, c.Location, c.PricePerDay, c.Currency)
		}
	}
	return "unidentified result"
}
