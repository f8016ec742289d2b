package planner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchSearchEmptyParamsMakesNoCalls(t *testing.T) {
	var flights, stays, cars int32
	svc := newTestService(&stubGenAI{})
	svc.Flights = countingFlights(&flights, nil, nil)
	svc.Stays = countingStays(&stays, nil, nil)
	svc.Cars = countingCars(&cars, nil, nil)

	outcome, err := svc.DispatchSearch(context.Background(), models.ApiParams{AnalyzedQuery: "just chatting"})

	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.NotNil(t, outcome.Results)
	assert.Empty(t, outcome.Results)
	assert.Empty(t, outcome.Failures)
	assert.Zero(t, atomic.LoadInt32(&flights))
	assert.Zero(t, atomic.LoadInt32(&stays))
	assert.Zero(t, atomic.LoadInt32(&cars))
}

func TestDispatchSearchFixedCategoryOrder(t *testing.T) {
	svc := newTestService(&stubGenAI{})
	// Flights settle last; ordering must not depend on completion timing.
	svc.Flights = flightFunc(func(context.Context, models.FlightParams) ([]models.SearchResult, error) {
		time.Sleep(30 * time.Millisecond)
		return []models.SearchResult{flightResult("TAP", "Porto")}, nil
	})
	svc.Stays = stayFunc(func(context.Context, models.HotelParams) ([]models.SearchResult, error) {
		time.Sleep(10 * time.Millisecond)
		return []models.SearchResult{stayResult("Hotel Foz", "Porto")}, nil
	})
	svc.Cars = countingCars(new(int32), []models.SearchResult{carResult("Avis", "Porto")}, nil)

	params := models.ApiParams{
		AnalyzedQuery: "porto weekend",
		Flight:        &models.FlightParams{Origin: "LIS", Destination: "OPO", DepartureDate: "2026-09-12"},
		Hotel:         &models.HotelParams{Location: "Porto", CheckInDate: "2026-09-12", CheckOutDate: "2026-09-14"},
		Car:           &models.CarParams{Location: "Porto", PickupDate: "2026-09-12", DropoffDate: "2026-09-14"},
	}

	outcome, err := svc.DispatchSearch(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, outcome.Results, 3)
	assert.Equal(t, models.ResultFlight, outcome.Results[0].Type)
	assert.Equal(t, models.ResultStay, outcome.Results[1].Type)
	assert.Equal(t, models.ResultCar, outcome.Results[2].Type)
}

func TestDispatchSearchIsDeterministicAcrossRuns(t *testing.T) {
	svc := newTestService(&stubGenAI{})
	svc.Flights = countingFlights(new(int32), []models.SearchResult{
		flightResult("TAP", "Madrid"), flightResult("Iberia", "Madrid"),
	}, nil)
	svc.Stays = countingStays(new(int32), []models.SearchResult{stayResult("Gran Via Suites", "Madrid")}, nil)

	params := models.ApiParams{
		AnalyzedQuery: "madrid trip",
		Flight:        &models.FlightParams{Origin: "LIS", Destination: "MAD", DepartureDate: "2026-10-01"},
		Hotel:         &models.HotelParams{Location: "Madrid", CheckInDate: "2026-10-01", CheckOutDate: "2026-10-04"},
	}

	first, err := svc.DispatchSearch(context.Background(), params)
	require.NoError(t, err)
	second, err := svc.DispatchSearch(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first.Results, second.Results)
}

func TestDispatchSearchPartialFailureKeepsOtherResults(t *testing.T) {
	svc := newTestService(&stubGenAI{})
	svc.Flights = countingFlights(new(int32), []models.SearchResult{flightResult("TAP", "Rome")}, nil)
	svc.Stays = countingStays(new(int32), nil, &ProviderHTTPError{Provider: "stays", StatusCode: 503})

	params := models.ApiParams{
		AnalyzedQuery: "rome trip",
		Flight:        &models.FlightParams{Origin: "LIS", Destination: "FCO", DepartureDate: "2026-09-20"},
		Hotel:         &models.HotelParams{Location: "Rome", CheckInDate: "2026-09-20", CheckOutDate: "2026-09-23"},
	}

	outcome, err := svc.DispatchSearch(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, models.ResultFlight, outcome.Results[0].Type)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, "stays", outcome.Failures[0].Provider)
	assert.Equal(t, userMessages[KindServerError], outcome.Failures[0].Message)
}

func TestDispatchSearchAllProvidersFailing(t *testing.T) {
	svc := newTestService(&stubGenAI{})
	svc.Flights = countingFlights(new(int32), nil, &ProviderHTTPError{Provider: "flights", StatusCode: 429})
	svc.Stays = countingStays(new(int32), nil, &ProviderHTTPError{Provider: "stays", StatusCode: 500})

	params := models.ApiParams{
		AnalyzedQuery: "doomed trip",
		Flight:        &models.FlightParams{Origin: "LIS", Destination: "JFK", DepartureDate: "2026-11-01"},
		Hotel:         &models.HotelParams{Location: "New York", CheckInDate: "2026-11-01", CheckOutDate: "2026-11-05"},
	}

	outcome, err := svc.DispatchSearch(context.Background(), params)

	require.Error(t, err)
	assert.Nil(t, outcome)
	// The aggregate error is the first failed provider's classified error.
	var classified *PlannerError
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, KindRateLimited, classified.Kind)
}

func TestDispatchSearchPassesParamsThrough(t *testing.T) {
	var gotHotel models.HotelParams
	var gotCar models.CarParams
	svc := newTestService(&stubGenAI{})
	svc.Stays = stayFunc(func(_ context.Context, p models.HotelParams) ([]models.SearchResult, error) {
		gotHotel = p
		return []models.SearchResult{stayResult("Budget Inn", "Austin")}, nil
	})
	svc.Cars = carFunc(func(_ context.Context, p models.CarParams) ([]models.SearchResult, error) {
		gotCar = p
		return []models.SearchResult{carResult("Hertz", "Austin")}, nil
	})

	params := models.ApiParams{
		AnalyzedQuery: "cheap austin stay with an SUV",
		Hotel: &models.HotelParams{
			Location:     "Austin",
			CheckInDate:  "2026-09-05",
			CheckOutDate: "2026-09-08",
			Stars:        2,
		},
		Car: &models.CarParams{
			Location:    "Austin",
			PickupDate:  "2026-09-05",
			DropoffDate: "2026-09-08",
			CarType:     "SUV",
		},
	}

	_, err := svc.DispatchSearch(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, 2, gotHotel.Stars)
	assert.Equal(t, "SUV", gotCar.CarType)
}
