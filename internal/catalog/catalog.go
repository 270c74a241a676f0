// Package catalog provides the static maintenance knowledge base: for each
// maintenance kind, its recommended intervals and the user-facing message
// templates per status level.
package catalog

import "strings"

// Level represents a computed maintenance status level.
type Level string

const (
	LevelGood    Level = "good"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
	LevelUnknown Level = "unknown"
)

// Definition describes one maintenance kind.
// At least one of IntervalKm/IntervalMonths is set for deterministic kinds;
// kinds with neither are reported as unknown until the user records history.
type Definition struct {
	// ID is the stable catalog identifier, e.g. "oil_change".
	ID string

	// Name is the human-readable label for the kind.
	Name string

	// IntervalKm is the recommended distance interval in kilometers.
	// Nil for time-only kinds.
	IntervalKm *int

	// IntervalMonths is the recommended elapsed-time interval in months.
	// Nil for distance-only kinds.
	IntervalMonths *int

	// Messages maps a status level to a message template. Templates may use
	// the {remaining_km} and {remaining_months} placeholders.
	Messages map[Level]string
}

// Catalog is a read-only lookup of maintenance kind definitions.
type Catalog struct {
	byID  map[string]*Definition
	order []string
}

// New creates a catalog from the given definitions, preserving their order.
func New(defs []*Definition) *Catalog {
	c := &Catalog{byID: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if _, ok := c.byID[d.ID]; ok {
			continue
		}
		c.byID[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c
}

// Get returns the definition for the given id, or nil if unknown.
// Callers must treat a nil result as "unanalyzable kind" and skip it.
func (c *Catalog) Get(id string) *Definition {
	return c.byID[id]
}

// All returns every definition in fixed catalog order. The order is
// deterministic so that downstream sorting stays stable across runs.
func (c *Catalog) All() []*Definition {
	defs := make([]*Definition, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.byID[id])
	}
	return defs
}

// aliases maps free-form maintenance type strings, as users enter them, to
// canonical catalog ids.
var aliases = map[string]string{
	"oil":          "oil_change",
	"oil change":   "oil_change",
	"troca de oleo": "oil_change",
	"filter":       "oil_filter",
	"oil filter":   "oil_filter",
	"air filter":   "air_filter",
	"tires":        "tire_rotation",
	"tire":         "tire_rotation",
	"rotation":     "tire_rotation",
	"brake":        "brake_service",
	"brakes":       "brake_service",
	"coolant":      "coolant_flush",
	"radiator":     "coolant_flush",
	"spark":        "spark_plugs",
	"plugs":        "spark_plugs",
	"battery":      "battery_replacement",
	"alignment":    "alignment",
	"balancing":    "alignment",
	"timing":       "timing_belt",
	"belt":         "timing_belt",
}

// CanonicalID maps a free-form maintenance type string to a catalog id.
// Unmapped strings are returned unchanged (identity fallback); the caller is
// expected to handle ids the catalog does not know.
func CanonicalID(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if id, ok := aliases[key]; ok {
		return id
	}
	return key
}

func intervals(km, months int) (*int, *int) {
	var pk, pm *int
	if km > 0 {
		pk = &km
	}
	if months > 0 {
		pm = &months
	}
	return pk, pm
}

func def(id, name string, km, months int, messages map[Level]string) *Definition {
	ik, im := intervals(km, months)
	return &Definition{ID: id, Name: name, IntervalKm: ik, IntervalMonths: im, Messages: messages}
}

// Default returns the built-in maintenance catalog.
func Default() *Catalog {
	return New([]*Definition{
		def("oil_change", "Engine oil", 10000, 12, map[Level]string{
			LevelGood:    "Oil is fine for another {remaining_km} km.",
			LevelWarning: "Oil change is coming up soon.",
			LevelDanger:  "Oil change is overdue. Service as soon as possible.",
			LevelUnknown: "No oil change on record. Register your last service.",
		}),
		def("oil_filter", "Oil filter", 10000, 12, map[Level]string{
			LevelGood:    "Oil filter is fine for another {remaining_km} km.",
			LevelWarning: "Oil filter replacement is coming up soon.",
			LevelDanger:  "Oil filter replacement is overdue.",
			LevelUnknown: "No oil filter change on record. Register your last service.",
		}),
		def("air_filter", "Air filter", 15000, 12, map[Level]string{
			LevelGood:    "Air filter is fine for another {remaining_km} km.",
			LevelWarning: "Air filter replacement is coming up soon.",
			LevelDanger:  "Air filter replacement is overdue.",
			LevelUnknown: "No air filter change on record. Register your last service.",
		}),
		def("tire_rotation", "Tire rotation", 10000, 6, map[Level]string{
			LevelGood:    "Next tire rotation in {remaining_km} km.",
			LevelWarning: "Tire rotation is coming up soon.",
			LevelDanger:  "Tire rotation is overdue.",
			LevelUnknown: "No tire rotation on record. Register your last service.",
		}),
		def("brake_service", "Brakes", 20000, 12, map[Level]string{
			LevelGood:    "Brakes are fine for another {remaining_km} km.",
			LevelWarning: "Brake inspection is coming up soon.",
			LevelDanger:  "Brake inspection is overdue. Check the pads and discs.",
			LevelUnknown: "No brake service on record. Register your last service.",
		}),
		def("coolant_flush", "Coolant", 30000, 24, map[Level]string{
			LevelGood:    "Coolant is fine for another {remaining_km} km.",
			LevelWarning: "Coolant flush is coming up soon.",
			LevelDanger:  "Coolant flush is overdue.",
			LevelUnknown: "No coolant flush on record. Register your last service.",
		}),
		def("spark_plugs", "Spark plugs", 40000, 0, map[Level]string{
			LevelGood:    "Spark plugs are fine for another {remaining_km} km.",
			LevelWarning: "Spark plug replacement is coming up soon.",
			LevelDanger:  "Spark plug replacement is overdue.",
			LevelUnknown: "No spark plug change on record. Register your last service.",
		}),
		def("battery_replacement", "Battery", 0, 36, map[Level]string{
			LevelGood:    "Battery is fine for another {remaining_months} month(s).",
			LevelWarning: "Battery is near the end of its expected life.",
			LevelDanger:  "Battery is past its expected life. Have it tested.",
			LevelUnknown: "No battery replacement on record. Register your last service.",
		}),
		def("alignment", "Wheel alignment", 10000, 12, map[Level]string{
			LevelGood:    "Next alignment in {remaining_km} km.",
			LevelWarning: "Wheel alignment is coming up soon.",
			LevelDanger:  "Wheel alignment is overdue.",
			LevelUnknown: "No alignment on record. Register your last service.",
		}),
		def("timing_belt", "Timing belt", 60000, 60, map[Level]string{
			LevelGood:    "Timing belt is fine for another {remaining_km} km.",
			LevelWarning: "Timing belt replacement is coming up soon.",
			LevelDanger:  "Timing belt replacement is overdue. This can damage the engine.",
			LevelUnknown: "No timing belt change on record. Register your last service.",
		}),
	})
}
