// Package vehicle provides vehicle registration and odometer tracking.
package vehicle

import (
	"errors"
	"time"
)

// Repository and service errors.
var (
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrOdometerRegression is returned when an odometer update would lower
	// the current reading. The odometer is monotonically non-decreasing.
	ErrOdometerRegression = errors.New("odometer reading below current value")
)

// OdometerReading is one entry in a vehicle's append-only odometer history.
type OdometerReading struct {
	Km         int
	RecordedAt time.Time
}

// Vehicle represents a registered vehicle.
// Invariant: Odometer is greater than or equal to every reading ever recorded
// in OdometerHistory.
type Vehicle struct {
	ID      string
	OwnerID string
	Brand   string
	Model   string
	Plate   string
	Year    int

	// Odometer is the current reading in kilometers.
	Odometer int

	// OdometerHistory is the append-only log of prior readings.
	OdometerHistory []OdometerReading

	CreatedAt time.Time
	UpdatedAt time.Time
}
