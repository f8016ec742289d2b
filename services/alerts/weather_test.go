package alerts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastSevere(t *testing.T) {
	assert.False(t, Forecast{PrecipProbability: 40, WindSpeedMax: 20}.Severe())
	assert.True(t, Forecast{PrecipProbability: 70}.Severe())
	assert.True(t, Forecast{WindSpeedMax: 60}.Severe())
	assert.False(t, Forecast{PrecipProbability: 69, WindSpeedMax: 59}.Severe())
}

func TestOpenMeteoDailyForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-09-12", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-09-12", r.URL.Query().Get("end_date"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily": {
			"time": ["2026-09-12"],
			"precipitation_probability_max": [85],
			"wind_speed_10m_max": [42.5]
		}}`))
	}))
	defer srv.Close()

	client := NewOpenMeteoClient(srv.URL)
	forecast, err := client.DailyForecast(context.Background(), models.GeoPoint{Latitude: 38.72, Longitude: -9.14}, "2026-09-12")

	require.NoError(t, err)
	assert.Equal(t, "2026-09-12", forecast.Date)
	assert.Equal(t, 85, forecast.PrecipProbability)
	assert.Equal(t, 42.5, forecast.WindSpeedMax)
	assert.True(t, forecast.Severe())
}

func TestOpenMeteoDailyForecastNoDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"daily": {"time": []}}`))
	}))
	defer srv.Close()

	client := NewOpenMeteoClient(srv.URL)
	_, err := client.DailyForecast(context.Background(), models.GeoPoint{}, "2026-09-12")
	assert.Error(t, err)
}
