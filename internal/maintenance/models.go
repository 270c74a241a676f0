// Package maintenance provides the maintenance status engine: the status
// calculator, the per-vehicle analyzer and the event reconciler that drives
// persisted alert statuses and notifications.
package maintenance

import (
	"errors"
	"time"

	"github.com/autocare/autocare/internal/catalog"
)

// Repository and service errors.
var (
	ErrEventNotFound = errors.New("maintenance event not found")
)

// Status is the persisted alert status of one maintenance event. It is the
// cached result of the last reconcile pass, not a derived value.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusOverdue Status = "overdue"
)

// Event is one performed maintenance service.
// PlannedNextKm/PlannedNextDate are the event's own due thresholds; when set
// they override the catalog intervals during reconciliation.
type Event struct {
	ID        string
	VehicleID string

	// KindID is the maintenance kind, canonicalized via catalog.CanonicalID
	// at creation.
	KindID string

	PerformedAt time.Time

	// Odometer is the vehicle reading in kilometers at the time of service.
	Odometer int

	PlannedNextKm   *int
	PlannedNextDate *time.Time

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Verdict is the derived status of one maintenance kind for a vehicle.
// It is recomputed on demand and never persisted.
type Verdict struct {
	KindID   string
	KindName string
	Level    catalog.Level

	// WearPercent is max(distance progress, time progress) * 100, rounded.
	// Values above 100 mean the interval is exhausted.
	WearPercent int

	// KmDriven and MonthsPassed since the last service. Nil when the vehicle
	// has no service history for this kind.
	KmDriven     *int
	MonthsPassed *float64

	// NextDueKm and NextDueDate are the projected due thresholds.
	NextDueKm   *int
	NextDueDate *time.Time

	Message string
}

// OverallLevel is the aggregated vehicle-level verdict.
// It is distinct from catalog.Level: a vehicle whose only findings are
// missing history aggregates to "info", not "unknown".
type OverallLevel string

const (
	OverallDanger  OverallLevel = "danger"
	OverallWarning OverallLevel = "warning"
	OverallInfo    OverallLevel = "info"
	OverallGood    OverallLevel = "good"
)

// Overall is the aggregated vehicle health verdict.
type Overall struct {
	Level    OverallLevel
	Title    string
	Subtitle string
}

// Analysis is the full derived picture for one vehicle: the aggregate
// verdict, the ranked non-good recommendations and the most urgent one.
type Analysis struct {
	VehicleID       string
	Overall         Overall
	Recommendations []Verdict
	NextAction      *Verdict
}
