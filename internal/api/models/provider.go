package models

import (
	"github.com/autocare/autocare/internal/provider"
)

// ProviderResponse is the API representation of a service provider.
type ProviderResponse struct {
	ID             string  `json:"providerId"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Address        string  `json:"address,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	DistanceMeters float64 `json:"distanceMeters"`
}

// NewProviderListResponse converts a slice of domain providers.
func NewProviderListResponse(providers []provider.Provider) []*ProviderResponse {
	out := make([]*ProviderResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, &ProviderResponse{
			ID:             p.ID,
			Name:           p.Name,
			Category:       string(p.Category),
			Lat:            p.Lat,
			Lon:            p.Lon,
			Address:        p.Address,
			Phone:          p.Phone,
			Rating:         p.Rating,
			DistanceMeters: p.DistanceMeters,
		})
	}
	return out
}
