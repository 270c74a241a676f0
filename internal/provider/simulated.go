package provider

import (
	"context"
	"math"
	"sort"
)

// SimulatedSearcher serves provider search from a fixed in-memory dataset.
// Used in local mode and tests, when no places API is configured.
type SimulatedSearcher struct {
	dataset []Provider
}

// NewSimulatedSearcher creates a searcher over the built-in dataset.
func NewSimulatedSearcher() *SimulatedSearcher {
	return &SimulatedSearcher{dataset: simulatedProviders()}
}

// NewSimulatedSearcherWithData creates a searcher over a custom dataset.
func NewSimulatedSearcherWithData(dataset []Provider) *SimulatedSearcher {
	return &SimulatedSearcher{dataset: dataset}
}

// Search returns providers around the query point, nearest first.
func (s *SimulatedSearcher) Search(_ context.Context, q Query) ([]Provider, error) {
	radius := q.RadiusM
	if radius <= 0 {
		radius = 10000
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}

	var results []Provider
	for _, p := range s.dataset {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		dist := haversineDistance(q.Lat, q.Lon, p.Lat, p.Lon)
		if dist > radius {
			continue
		}
		p.DistanceMeters = dist
		results = append(results, p)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// haversineDistance calculates the distance between two points in meters
// using the Haversine formula.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// simulatedProviders returns the deterministic fixture dataset, centered on
// São Paulo.
func simulatedProviders() []Provider {
	return []Provider{
		{ID: "prv_sim_001", Name: "Oficina do Zé", Category: CategoryMechanic, Lat: -23.5505, Lon: -46.6333, Address: "Rua Augusta 1200", Phone: "+55 11 3123-4001", Rating: 4.6},
		{ID: "prv_sim_002", Name: "Auto Center Paulista", Category: CategoryMechanic, Lat: -23.5614, Lon: -46.6559, Address: "Av. Paulista 900", Phone: "+55 11 3123-4002", Rating: 4.2},
		{ID: "prv_sim_003", Name: "Pneus Express", Category: CategoryTireShop, Lat: -23.5489, Lon: -46.6388, Address: "Rua da Consolação 450", Phone: "+55 11 3123-4003", Rating: 4.8},
		{ID: "prv_sim_004", Name: "Borracharia 24h", Category: CategoryTireShop, Lat: -23.5587, Lon: -46.6252, Address: "Av. Liberdade 75", Phone: "+55 11 3123-4004", Rating: 3.9},
		{ID: "prv_sim_005", Name: "Funilaria Imperial", Category: CategoryBodyShop, Lat: -23.5440, Lon: -46.6420, Address: "Rua Maria Antônia 98", Phone: "+55 11 3123-4005", Rating: 4.4},
		{ID: "prv_sim_006", Name: "Eletro Auto Silva", Category: CategoryElectrical, Lat: -23.5532, Lon: -46.6451, Address: "Rua Rego Freitas 310", Phone: "+55 11 3123-4006", Rating: 4.1},
		{ID: "prv_sim_007", Name: "Concessionária Norte", Category: CategoryDealership, Lat: -23.5280, Lon: -46.6270, Address: "Av. Tiradentes 2000", Phone: "+55 11 3123-4007", Rating: 4.0},
		{ID: "prv_sim_008", Name: "Mecânica Boa Vista", Category: CategoryMechanic, Lat: -23.5701, Lon: -46.6489, Address: "Rua Vergueiro 1500", Phone: "+55 11 3123-4008", Rating: 4.7},
	}
}

// Ensure SimulatedSearcher implements Searcher.
var _ Searcher = (*SimulatedSearcher)(nil)
