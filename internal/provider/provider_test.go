package provider_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocare/autocare/internal/provider"
)

// Query point near Av. Paulista, inside the fixture dataset.
const (
	centerLat = -23.5550
	centerLon = -46.6400
)

func TestSimulatedSearchSortsByDistance(t *testing.T) {
	s := provider.NewSimulatedSearcher()

	results, err := s.Search(context.Background(), provider.Query{Lat: centerLat, Lon: centerLon})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].DistanceMeters, results[i].DistanceMeters)
	}
	for _, p := range results {
		assert.Positive(t, p.DistanceMeters)
	}
}

func TestSimulatedSearchCategoryFilter(t *testing.T) {
	s := provider.NewSimulatedSearcher()

	results, err := s.Search(context.Background(), provider.Query{
		Lat:      centerLat,
		Lon:      centerLon,
		Category: provider.CategoryTireShop,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, p := range results {
		assert.Equal(t, provider.CategoryTireShop, p.Category)
	}
}

func TestSimulatedSearchRadius(t *testing.T) {
	s := provider.NewSimulatedSearcher()
	ctx := context.Background()

	wide, err := s.Search(ctx, provider.Query{Lat: centerLat, Lon: centerLon, RadiusM: 10000})
	require.NoError(t, err)

	narrow, err := s.Search(ctx, provider.Query{Lat: centerLat, Lon: centerLon, RadiusM: 800})
	require.NoError(t, err)

	assert.Less(t, len(narrow), len(wide))
	for _, p := range narrow {
		assert.LessOrEqual(t, p.DistanceMeters, 800.0)
	}
}

func TestSimulatedSearchLimit(t *testing.T) {
	s := provider.NewSimulatedSearcher()

	results, err := s.Search(context.Background(), provider.Query{Lat: centerLat, Lon: centerLon, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSimulatedSearchFarAway(t *testing.T) {
	s := provider.NewSimulatedSearcher()

	// Reykjavik is nowhere near the fixture dataset.
	results, err := s.Search(context.Background(), provider.Query{Lat: 64.1466, Lon: -21.9426})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestServiceValidatesCoordinates(t *testing.T) {
	svc := provider.NewService(provider.NewSimulatedSearcher(), zerolog.Nop())
	ctx := context.Background()

	tests := []provider.Query{
		{Lat: 91, Lon: 0},
		{Lat: -91, Lon: 0},
		{Lat: 0, Lon: 181},
		{Lat: 0, Lon: -181},
	}
	for _, q := range tests {
		_, err := svc.Search(ctx, q)
		assert.ErrorIs(t, err, provider.ErrInvalidQuery, "lat=%v lon=%v", q.Lat, q.Lon)
	}

	_, err := svc.Search(ctx, provider.Query{Lat: centerLat, Lon: centerLon})
	assert.NoError(t, err)
}

func TestServiceDelegatesCustomDataset(t *testing.T) {
	dataset := []provider.Provider{
		{ID: "prv_x", Name: "Test Garage", Category: provider.CategoryMechanic, Lat: 10.0, Lon: 10.0, Rating: 5.0},
	}
	svc := provider.NewService(provider.NewSimulatedSearcherWithData(dataset), zerolog.Nop())

	results, err := svc.Search(context.Background(), provider.Query{Lat: 10.0, Lon: 10.0})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "prv_x", results[0].ID)
}
