// Package search holds the HTTP-backed travel data provider clients. Each
// client satisfies the corresponding planner interface and normalizes the
// provider's wire format into models.SearchResult.
package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"voyago/services/planner"
)

// httpClient is shared by all provider calls. Per-call deadlines come from
// the dispatcher's context, not from here.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// getJSON performs an authenticated GET against a provider endpoint and
// decodes the JSON body into out.
func getJSON(ctx context.Context, provider, baseURL, apiKey string, query url.Values, out interface{}) error {
	query.Set("api_key", apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &planner.ProviderHTTPError{Provider: provider, StatusCode: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
