package planner

import (
	"context"
	"sync"

	"voyago/models"

	"go.uber.org/zap"
)

// providerSlot holds one provider's settled outcome. Slots are created in
// fixed category order so aggregation never depends on completion timing.
type providerSlot struct {
	provider string
	results  []models.SearchResult
	err      error
}

// DispatchSearch fans out one concurrent provider call per populated
// sub-param and waits for all of them to settle. A single provider failing
// does not discard the others' results; it is attached as a per-provider
// failure. Only when every requested provider fails does the dispatch
// return an error. No sub-params means an empty outcome with zero calls.
func (s *DefaultPlannerService) DispatchSearch(ctx context.Context, params models.ApiParams) (*models.SearchOutcome, error) {
	if params.Requested() == 0 {
		return &models.SearchOutcome{Results: []models.SearchResult{}}, nil
	}

	var (
		wg    sync.WaitGroup
		slots []*providerSlot
	)
	run := func(provider string, search func(ctx context.Context) ([]models.SearchResult, error)) {
		slot := &providerSlot{provider: provider}
		slots = append(slots, slot)
		wg.Add(1)
		go func() {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, s.searchTimeout())
			defer cancel()
			slot.results, slot.err = search(callCtx)
		}()
	}

	// Aggregation order is fixed: flights, then stays, then cars.
	if params.Flight != nil {
		run("flights", func(ctx context.Context) ([]models.SearchResult, error) {
			return s.Flights.Search(ctx, *params.Flight)
		})
	}
	if params.Hotel != nil {
		run("stays", func(ctx context.Context) ([]models.SearchResult, error) {
			return s.Stays.Search(ctx, *params.Hotel)
		})
	}
	if params.Car != nil {
		run("cars", func(ctx context.Context) ([]models.SearchResult, error) {
			return s.Cars.Search(ctx, *params.Car)
		})
	}
	wg.Wait()

	outcome := &models.SearchOutcome{Results: []models.SearchResult{}}
	var firstErr *PlannerError
	failed := 0
	for _, slot := range slots {
		if slot.err != nil {
			classified := Classify(slot.err)
			zap.L().Warn("dispatch: provider failed",
				zap.String("provider", slot.provider),
				zap.String("kind", string(classified.Kind)),
				zap.Error(slot.err))
			outcome.Failures = append(outcome.Failures, models.ProviderFailure{
				Provider: slot.provider,
				Message:  classified.Message,
			})
			if firstErr == nil {
				firstErr = classified
			}
			failed++
			continue
		}
		outcome.Results = append(outcome.Results, slot.results...)
	}

	if failed == len(slots) {
		return nil, firstErr
	}
	return outcome, nil
}
