// Package provider locates nearby service providers (mechanics, tire shops
// and similar) via an external places API or a simulated dataset.
package provider

// Category classifies a service provider.
type Category string

const (
	CategoryMechanic   Category = "mechanic"
	CategoryTireShop   Category = "tire_shop"
	CategoryBodyShop   Category = "body_shop"
	CategoryElectrical Category = "electrical"
	CategoryDealership Category = "dealership"
)

// Provider is one service provider search result.
type Provider struct {
	ID       string
	Name     string
	Category Category
	Lat      float64
	Lon      float64
	Address  string
	Phone    string
	Rating   float64

	// DistanceMeters is the straight-line distance from the query point.
	DistanceMeters float64
}

// Query describes a provider search.
type Query struct {
	Lat      float64
	Lon      float64
	Category Category // empty means all categories
	RadiusM  float64  // 0 means the searcher's default radius
	Limit    int      // 0 means the searcher's default limit
}
