package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"voyago/models"
)

// HTTPStayProvider queries a REST hotel search API.
type HTTPStayProvider struct {
	BaseURL string
	APIKey  string
}

func NewHTTPStayProvider(baseURL, apiKey string) *HTTPStayProvider {
	return &HTTPStayProvider{BaseURL: baseURL, APIKey: apiKey}
}

type stayOffer struct {
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Stars         int     `json:"stars"`
	Rating        float64 `json:"rating"`
	PricePerNight float64 `json:"price_per_night"`
	Currency      string  `json:"currency"`
}

func (p *HTTPStayProvider) Search(ctx context.Context, params models.HotelParams) ([]models.SearchResult, error) {
	query := url.Values{}
	query.Set("location", params.Location)
	query.Set("check_in", params.CheckInDate)
	query.Set("check_out", params.CheckOutDate)
	if params.Guests > 0 {
		query.Set("guests", strconv.Itoa(params.Guests))
	}
	if params.Stars > 0 {
		query.Set("stars", strconv.Itoa(params.Stars))
	}
	if params.MaxPrice > 0 {
		query.Set("max_price", fmt.Sprintf("%.2f", params.MaxPrice))
	}

	var body struct {
		Stays []stayOffer `json:"stays"`
	}
	if err := getJSON(ctx, "stays", p.BaseURL, p.APIKey, query, &body); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(body.Stays))
	for _, offer := range body.Stays {
		results = append(results, models.SearchResult{
			Type: models.ResultStay,
			Stay: &models.StayResult{
				Name:          offer.Name,
				Location:      offer.Location,
				Stars:         offer.Stars,
				Rating:        offer.Rating,
				PricePerNight: offer.PricePerNight,
				Currency:      offer.Currency,
			},
		})
	}
	return results, nil
}
