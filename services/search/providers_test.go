package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"voyago/models"
	"voyago/services/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFlightProviderSearch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"origin":         r.URL.Query().Get("origin"),
			"destination":    r.URL.Query().Get("destination"),
			"departure_date": r.URL.Query().Get("departure_date"),
			"airlines":       r.URL.Query().Get("airlines"),
			"api_key":        r.URL.Query().Get("api_key"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"offers": [
			{"airline": "TAP", "flight_number": "TP123", "origin": "LIS", "destination": "OPO",
			 "departure_time": "2026-09-12T08:00:00Z", "arrival_time": "2026-09-12T09:00:00Z",
			 "stops": 0, "price": 89.9, "currency": "EUR"}
		]}`))
	}))
	defer srv.Close()

	provider := NewHTTPFlightProvider(srv.URL, "secret")
	results, err := provider.Search(context.Background(), models.FlightParams{
		Origin:        "LIS",
		Destination:   "OPO",
		DepartureDate: "2026-09-12",
		Airlines:      []string{"TAP", "Ryanair"},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.ResultFlight, results[0].Type)
	require.NotNil(t, results[0].Flight)
	assert.Equal(t, "TAP", results[0].Flight.Airline)
	assert.Equal(t, 89.9, results[0].Flight.Price)

	assert.Equal(t, "LIS", gotQuery["origin"])
	assert.Equal(t, "OPO", gotQuery["destination"])
	assert.Equal(t, "2026-09-12", gotQuery["departure_date"])
	assert.Equal(t, "TAP,Ryanair", gotQuery["airlines"])
	assert.Equal(t, "secret", gotQuery["api_key"])
}

func TestHTTPFlightProviderNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider := NewHTTPFlightProvider(srv.URL, "secret")
	results, err := provider.Search(context.Background(), models.FlightParams{
		Origin: "LIS", Destination: "OPO", DepartureDate: "2026-09-12",
	})

	assert.Nil(t, results)
	var httpErr *planner.ProviderHTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "flights", httpErr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
}

func TestHTTPStayProviderSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("stars"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"stays": [
			{"name": "Budget Inn", "location": "Austin", "stars": 2, "rating": 7.1,
			 "price_per_night": 79.0, "currency": "USD"}
		]}`))
	}))
	defer srv.Close()

	provider := NewHTTPStayProvider(srv.URL, "secret")
	results, err := provider.Search(context.Background(), models.HotelParams{
		Location:     "Austin",
		CheckInDate:  "2026-09-05",
		CheckOutDate: "2026-09-08",
		Stars:        2,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Stay)
	assert.Equal(t, 2, results[0].Stay.Stars)
}

func TestHTTPCarProviderSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SUV", r.URL.Query().Get("car_type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cars": [
			{"company": "Hertz", "model": "RAV4", "car_type": "SUV", "location": "Austin",
			 "price_per_day": 55.0, "currency": "USD"}
		]}`))
	}))
	defer srv.Close()

	provider := NewHTTPCarProvider(srv.URL, "secret")
	results, err := provider.Search(context.Background(), models.CarParams{
		Location:    "Austin",
		PickupDate:  "2026-09-05",
		DropoffDate: "2026-09-08",
		CarType:     "SUV",
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Car)
	assert.Equal(t, "SUV", results[0].Car.CarType)
}
