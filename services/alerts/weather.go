// Package alerts implements the disruption monitor: scheduled forecast
// checks against upcoming itineraries that surface as travel alerts.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"voyago/models"
)

var weatherHTTPClient = &http.Client{Timeout: 10 * time.Second}

// Forecast is the slice of a daily forecast the monitor cares about.
type Forecast struct {
	Date              string
	PrecipProbability int
	WindSpeedMax      float64
}

// Severe reports whether the forecast is bad enough to disrupt outdoor
// plans. Thresholds are deliberately conservative.
func (f Forecast) Severe() bool {
	return f.PrecipProbability >= 70 || f.WindSpeedMax >= 60
}

// WeatherClient fetches a daily forecast for a coordinate.
type WeatherClient interface {
	DailyForecast(ctx context.Context, geo models.GeoPoint, date string) (*Forecast, error)
}

// OpenMeteoClient implements WeatherClient against the Open-Meteo API.
type OpenMeteoClient struct {
	BaseURL string
}

func NewOpenMeteoClient(baseURL string) *OpenMeteoClient {
	return &OpenMeteoClient{BaseURL: baseURL}
}

func (c *OpenMeteoClient) DailyForecast(ctx context.Context, geo models.GeoPoint, date string) (*Forecast, error) {
	url := fmt.Sprintf(
		"%s?latitude=%f&longitude=%f&daily=precipitation_probability_max,wind_speed_10m_max&start_date=%s&end_date=%s",
		c.BaseURL, geo.Latitude, geo.Longitude, date, date,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := weatherHTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var body struct {
		Daily struct {
			Time              []string  `json:"time"`
			PrecipProbability []int     `json:"precipitation_probability_max"`
			WindSpeedMax      []float64 `json:"wind_speed_10m_max"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Daily.Time) == 0 {
		return nil, fmt.Errorf("weather API returned no days for %s", date)
	}

	forecast := &Forecast{Date: body.Daily.Time[0]}
	if len(body.Daily.PrecipProbability) > 0 {
		forecast.PrecipProbability = body.Daily.PrecipProbability[0]
	}
	if len(body.Daily.WindSpeedMax) > 0 {
		forecast.WindSpeedMax = body.Daily.WindSpeedMax[0]
	}
	return forecast, nil
}
