package maintenance

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/notification"
	"github.com/autocare/autocare/internal/settings"
	"github.com/autocare/autocare/internal/vehicle"
)

// Reconciler recomputes persisted event statuses against the current
// odometer and date. Unlike the analyzer, it evaluates each event's own
// planned due values and the user-tunable alert windows, and it is
// edge-triggered: a notification fires only when an event transitions into
// warning or overdue, never on re-evaluation at the same level.
type Reconciler struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewReconciler creates a reconciler backed by the given catalog. The catalog
// is used only for human-readable kind names; due thresholds always come from
// the events themselves.
func NewReconciler(cat *catalog.Catalog, logger zerolog.Logger) *Reconciler {
	return &Reconciler{catalog: cat, logger: logger}
}

// ReconcileResult reports the outcome of one reconcile pass.
type ReconcileResult struct {
	// Changed is true when at least one event status changed, so the caller
	// knows whether to persist and broadcast.
	Changed bool

	// UpdatedEvents holds the events whose status changed, with the new
	// status applied.
	UpdatedEvents []*Event

	// Notifications holds the alerts emitted by status transitions.
	Notifications []*notification.Notification
}

// Reconcile recomputes the status of every event for one vehicle.
//
// Per event: overdue when the planned due date has passed or the odometer
// reached the planned due distance; warning when within the alert windows of
// either threshold; ok otherwise. Events with no planned due values keep
// their status untouched.
//
// The new status is applied to the event regardless of whether a
// notification fires. Callers must serialize reconcile passes per vehicle.
func (r *Reconciler) Reconcile(v *vehicle.Vehicle, events []*Event, alert settings.AlertSettings, now time.Time) ReconcileResult {
	var result ReconcileResult

	for _, ev := range events {
		if ev.PlannedNextKm == nil && ev.PlannedNextDate == nil {
			continue
		}

		newStatus, byDistance := r.evaluate(ev, v.Odometer, alert, now)
		if newStatus == ev.Status {
			continue
		}

		previous := ev.Status
		ev.Status = newStatus
		ev.UpdatedAt = now
		result.Changed = true
		result.UpdatedEvents = append(result.UpdatedEvents, ev)

		// Edge trigger: only a transition into warning or overdue alerts the
		// user. Recovering to ok is silent.
		if newStatus == StatusWarning || newStatus == StatusOverdue {
			n := r.buildNotification(ev, newStatus, byDistance, v)
			result.Notifications = append(result.Notifications, n)

			r.logger.Debug().
				Str("event_id", ev.ID).
				Str("vehicle_id", v.ID).
				Str("from", string(previous)).
				Str("to", string(newStatus)).
				Msg("maintenance status transition")
		}
	}

	return result
}

// evaluate computes the alert status for one event. The second return value
// reports whether the distance threshold (rather than the date) drove the
// result, which selects the notification type.
func (r *Reconciler) evaluate(ev *Event, odometer int, alert settings.AlertSettings, now time.Time) (Status, bool) {
	if ev.PlannedNextKm != nil && odometer >= *ev.PlannedNextKm {
		return StatusOverdue, true
	}
	if ev.PlannedNextDate != nil && now.After(*ev.PlannedNextDate) {
		return StatusOverdue, false
	}

	if ev.PlannedNextKm != nil && odometer >= *ev.PlannedNextKm-alert.AlertKm {
		return StatusWarning, true
	}
	if ev.PlannedNextDate != nil {
		warningFrom := ev.PlannedNextDate.AddDate(0, 0, -alert.AlertDays)
		if !now.Before(warningFrom) {
			return StatusWarning, false
		}
	}

	return StatusOK, false
}

func (r *Reconciler) buildNotification(ev *Event, status Status, byDistance bool, v *vehicle.Vehicle) *notification.Notification {
	kindName := ev.KindID
	if def := r.catalog.Get(catalog.CanonicalID(ev.KindID)); def != nil {
		kindName = def.Name
	}

	vehicleName := v.Brand
	if v.Model != "" {
		vehicleName += " " + v.Model
	}

	relatedID := ev.ID
	n := &notification.Notification{
		Type:      notification.TypeMaintenanceAlert,
		RelatedID: &relatedID,
	}
	if byDistance {
		n.Type = notification.TypeKmAlert
	}

	switch status {
	case StatusOverdue:
		n.Title = fmt.Sprintf("%s overdue", kindName)
		n.Message = fmt.Sprintf("%s for %s is overdue.", kindName, vehicleName)
	default:
		n.Title = fmt.Sprintf("%s due soon", kindName)
		if byDistance && ev.PlannedNextKm != nil {
			n.Message = fmt.Sprintf("%s for %s is due at %d km.", kindName, vehicleName, *ev.PlannedNextKm)
		} else if ev.PlannedNextDate != nil {
			n.Message = fmt.Sprintf("%s for %s is due on %s.", kindName, vehicleName, ev.PlannedNextDate.Format("2006-01-02"))
		} else {
			n.Message = fmt.Sprintf("%s for %s is due soon.", kindName, vehicleName)
		}
	}

	return n
}
