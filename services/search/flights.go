package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"voyago/models"
)

// HTTPFlightProvider queries a REST flight search API.
type HTTPFlightProvider struct {
	BaseURL string
	APIKey  string
}

func NewHTTPFlightProvider(baseURL, apiKey string) *HTTPFlightProvider {
	return &HTTPFlightProvider{BaseURL: baseURL, APIKey: apiKey}
}

type flightOffer struct {
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Stops         int     `json:"stops"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
}

func (p *HTTPFlightProvider) Search(ctx context.Context, params models.FlightParams) ([]models.SearchResult, error) {
	query := url.Values{}
	query.Set("origin", params.Origin)
	query.Set("destination", params.Destination)
	query.Set("departure_date", params.DepartureDate)
	if params.ReturnDate != "" {
		query.Set("return_date", params.ReturnDate)
	}
	if params.Passengers > 0 {
		query.Set("passengers", strconv.Itoa(params.Passengers))
	}
	if len(params.Airlines) > 0 {
		query.Set("airlines", strings.Join(params.Airlines, ","))
	}
	if params.MaxPrice > 0 {
		query.Set("max_price", fmt.Sprintf("%.2f", params.MaxPrice))
	}

	var body struct {
		Offers []flightOffer `json:"offers"`
	}
	if err := getJSON(ctx, "flights", p.BaseURL, p.APIKey, query, &body); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(body.Offers))
	for _, offer := range body.Offers {
		results = append(results, models.SearchResult{
			Type: models.ResultFlight,
			Flight: &models.FlightResult{
				Airline:       offer.Airline,
				FlightNumber:  offer.FlightNumber,
				Origin:        offer.Origin,
				Destination:   offer.Destination,
				DepartureTime: offer.DepartureTime,
				ArrivalTime:   offer.ArrivalTime,
				Stops:         offer.Stops,
				Price:         offer.Price,
				Currency:      offer.Currency,
			},
		})
	}
	return results, nil
}
