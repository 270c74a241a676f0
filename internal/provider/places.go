package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/autocare/autocare/internal/resilience"
)

// PlacesClient searches providers via an external places API.
// Requests go through the shared resilient HTTP client.
type PlacesClient struct {
	baseURL string
	apiKey  string
	client  *resilience.Client
}

// PlacesConfig holds configuration for the places client.
type PlacesConfig struct {
	BaseURL string
	APIKey  string
}

// NewPlacesClient creates a new places API client.
func NewPlacesClient(cfg PlacesConfig) *PlacesClient {
	return &PlacesClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  resilience.NewClient(resilience.ClientConfig{Name: "places"}),
	}
}

// placesResult is the wire format of one places API result.
type placesResult struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Rating   float64 `json:"rating"`
	Distance float64 `json:"distance"`
}

// Search queries the places API for providers around the query point.
func (c *PlacesClient) Search(ctx context.Context, q Query) ([]Provider, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(q.Lon, 'f', -1, 64))
	if q.Category != "" {
		params.Set("category", string(q.Category))
	}
	if q.RadiusM > 0 {
		params.Set("radius", strconv.FormatFloat(q.RadiusM, 'f', 0, 64))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []placesResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding places response: %w", err)
	}

	providers := make([]Provider, 0, len(payload.Results))
	for _, r := range payload.Results {
		providers = append(providers, Provider{
			ID:             r.ID,
			Name:           r.Name,
			Category:       Category(r.Category),
			Lat:            r.Lat,
			Lon:            r.Lon,
			Address:        r.Address,
			Phone:          r.Phone,
			Rating:         r.Rating,
			DistanceMeters: r.Distance,
		})
	}
	return providers, nil
}

// Ensure PlacesClient implements Searcher.
var _ Searcher = (*PlacesClient)(nil)
