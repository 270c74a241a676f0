package maintenance

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/autocare/autocare/internal/catalog"
)

// Wear thresholds. Both boundaries are inclusive: exactly 80% is a warning,
// exactly 100% is danger.
const (
	warningThreshold = 0.8
	dangerThreshold  = 1.0
)

// daysPerMonth is the month approximation used throughout the status engine.
// Elapsed months are computed as elapsed days / 30, NOT calendar months, so
// results drift up to a day per elapsed month against calendar arithmetic.
// Catalog intervals are defined against this same approximation, which keeps
// progress ratios consistent.
const daysPerMonth = 30

// ComputeStatus computes the status verdict for one maintenance kind given
// the most recent service event for that kind (nil when the vehicle has no
// history), the current odometer reading and the evaluation time.
//
// It is a pure function of its inputs: no clock access, no side effects.
func ComputeStatus(def *catalog.Definition, last *Event, odometer int, now time.Time) Verdict {
	v := Verdict{
		KindID:   def.ID,
		KindName: def.Name,
	}

	// No history is a first-class state, never an error. The engine does not
	// guess a synthetic baseline for history-less vehicles.
	if last == nil {
		v.Level = catalog.LevelUnknown
		v.Message = def.Messages[catalog.LevelUnknown]
		return v
	}

	kmDriven := odometer - last.Odometer
	if kmDriven < 0 {
		// Corrupt data; the vehicle invariant should make this impossible.
		// Clamp rather than report negative wear.
		kmDriven = 0
	}
	monthsPassed := now.Sub(last.PerformedAt).Hours() / 24 / daysPerMonth
	if monthsPassed < 0 {
		monthsPassed = 0
	}

	v.KmDriven = &kmDriven
	v.MonthsPassed = &monthsPassed

	// A definition with no interval at all can never escalate: there is no
	// threshold to compare against.
	if def.IntervalKm == nil && def.IntervalMonths == nil {
		v.Level = catalog.LevelUnknown
		v.Message = def.Messages[catalog.LevelUnknown]
		return v
	}

	var distanceProgress, timeProgress float64
	if def.IntervalKm != nil {
		distanceProgress = float64(kmDriven) / float64(*def.IntervalKm)
		nextDueKm := last.Odometer + *def.IntervalKm
		v.NextDueKm = &nextDueKm
	}
	if def.IntervalMonths != nil {
		timeProgress = monthsPassed / float64(*def.IntervalMonths)
		nextDueDate := last.PerformedAt.Add(time.Duration(*def.IntervalMonths) * daysPerMonth * 24 * time.Hour)
		v.NextDueDate = &nextDueDate
	}

	progress := math.Max(distanceProgress, timeProgress)
	v.WearPercent = int(math.Round(progress * 100))

	switch {
	case progress >= dangerThreshold:
		v.Level = catalog.LevelDanger
	case progress >= warningThreshold:
		v.Level = catalog.LevelWarning
	default:
		v.Level = catalog.LevelGood
	}

	v.Message = renderMessage(def.Messages[v.Level], &v, odometer, now)
	return v
}

// renderMessage substitutes the remaining-distance and remaining-time
// placeholders. Remaining amounts only make sense while the item is still
// good; at warning and beyond the templates carry no placeholders.
func renderMessage(template string, v *Verdict, odometer int, now time.Time) string {
	msg := template
	if strings.Contains(msg, "{remaining_km}") {
		remaining := 0
		if v.NextDueKm != nil && v.Level == catalog.LevelGood {
			remaining = *v.NextDueKm - odometer
		}
		msg = strings.ReplaceAll(msg, "{remaining_km}", strconv.Itoa(remaining))
	}
	if strings.Contains(msg, "{remaining_months}") {
		remaining := 0
		if v.NextDueDate != nil && v.Level == catalog.LevelGood {
			remaining = int(v.NextDueDate.Sub(now).Hours() / 24 / daysPerMonth)
		}
		msg = strings.ReplaceAll(msg, "{remaining_months}", strconv.Itoa(remaining))
	}
	return msg
}
