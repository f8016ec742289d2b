package search

import (
	"context"
	"fmt"
	"net/url"

	"voyago/models"
)

// HTTPCarProvider queries a REST car rental search API.
type HTTPCarProvider struct {
	BaseURL string
	APIKey  string
}

func NewHTTPCarProvider(baseURL, apiKey string) *HTTPCarProvider {
	return &HTTPCarProvider{BaseURL: baseURL, APIKey: apiKey}
}

type carOffer struct {
	Company     string  `json:"company"`
	Model       string  `json:"model"`
	CarType     string  `json:"car_type"`
	Location    string  `json:"location"`
	PricePerDay float64 `json:"price_per_day"`
	Currency    string  `json:"currency"`
}

func (p *HTTPCarProvider) Search(ctx context.Context, params models.CarParams) ([]models.SearchResult, error) {
	query := url.Values{}
	query.Set("location", params.Location)
	query.Set("pickup_date", params.PickupDate)
	query.Set("dropoff_date", params.DropoffDate)
	if params.CarType != "" {
		query.Set("car_type", params.CarType)
	}
	if params.MaxPrice > 0 {
		query.Set("max_price", fmt.Sprintf("%.2f", params.MaxPrice))
	}

	var body struct {
		Cars []carOffer `json:"cars"`
	}
	if err := getJSON(ctx, "cars", p.BaseURL, p.APIKey, query, &body); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(body.Cars))
	for _, offer := range body.Cars {
		results = append(results, models.SearchResult{
			Type: models.ResultCar,
			Car: &models.CarResult{
				Company:     offer.Company,
				Model:       offer.Model,
				CarType:     offer.CarType,
				Location:    offer.Location,
				PricePerDay: offer.PricePerDay,
				Currency:    offer.Currency,
			},
		})
	}
	return results, nil
}
