// Package settings provides user-tunable alert thresholds.
package settings

import "errors"

// Repository errors.
var (
	ErrSettingsNotFound = errors.New("alert settings not found")
)

// AlertSettings holds the alert window thresholds used by per-event
// reconciliation. They widen the warning zone independently of the
// catalog-driven wear percentage.
type AlertSettings struct {
	// AlertDays is how many days before a planned due date an event enters
	// the warning state.
	AlertDays int

	// AlertKm is how many kilometers before a planned due distance an event
	// enters the warning state.
	AlertKm int
}

// Defaults returns the default alert settings.
func Defaults() AlertSettings {
	return AlertSettings{
		AlertDays: 7,
		AlertKm:   500,
	}
}
