// Package notification provides the user-facing alert log: an append-only,
// size-bounded collection of notifications with read/unread state.
package notification

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// MaxLogSize is the hard cap on the notification log. Appending beyond the
// cap evicts the oldest entries.
const MaxLogSize = 50

// Type classifies a notification.
type Type string

const (
	TypeMaintenanceAlert Type = "maintenance_alert"
	TypeMaintenanceAdded Type = "maintenance_added"
	TypeVehicleAdded     Type = "vehicle_added"
	TypeKmAlert          Type = "km_alert"
	TypeSystem           Type = "system"
)

// Notification is one entry in the alert log.
type Notification struct {
	ID    string
	Type  Type
	Title string
	Message string

	// RelatedID optionally references the maintenance event that triggered
	// this notification.
	RelatedID *string

	Read      bool
	CreatedAt time.Time
}
