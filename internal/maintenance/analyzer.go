package maintenance

import (
	"fmt"
	"sort"
	"time"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/vehicle"
)

// severityRank orders verdict levels for recommendation sorting.
// Lower rank sorts first.
func severityRank(level catalog.Level) int {
	switch level {
	case catalog.LevelDanger:
		return 0
	case catalog.LevelWarning:
		return 1
	case catalog.LevelUnknown:
		return 2
	default:
		return 3
	}
}

// AnalyzeVehicle runs the status calculator across every catalog entry for
// one vehicle and derives the aggregated vehicle verdict.
//
// Recommendations contain every non-good verdict. Unknown is always surfaced,
// it represents missing history the user should address; only good with
// history is suppressed. The sort is stable: equal severities keep catalog
// order, so output is deterministic.
func AnalyzeVehicle(v *vehicle.Vehicle, events []*Event, cat *catalog.Catalog, now time.Time) *Analysis {
	analysis := &Analysis{VehicleID: v.ID}

	for _, def := range cat.All() {
		last := latestEventForKind(events, def.ID)
		verdict := ComputeStatus(def, last, v.Odometer, now)
		if verdict.Level == catalog.LevelGood {
			continue
		}
		analysis.Recommendations = append(analysis.Recommendations, verdict)
	}

	sort.SliceStable(analysis.Recommendations, func(i, j int) bool {
		return severityRank(analysis.Recommendations[i].Level) < severityRank(analysis.Recommendations[j].Level)
	})

	analysis.Overall = aggregate(analysis.Recommendations)
	if len(analysis.Recommendations) > 0 {
		analysis.NextAction = &analysis.Recommendations[0]
	}
	return analysis
}

// latestEventForKind returns the most recent event for the kind, comparing by
// performed date. Ties go to the last inserted event: with equal dates the
// most recently logged record wins.
func latestEventForKind(events []*Event, kindID string) *Event {
	var latest *Event
	for _, ev := range events {
		if catalog.CanonicalID(ev.KindID) != kindID {
			continue
		}
		if latest == nil || !ev.PerformedAt.Before(latest.PerformedAt) {
			latest = ev
		}
	}
	return latest
}

// aggregate derives the vehicle-level verdict. First match wins: any danger
// dominates, then warning, then missing history, then good.
func aggregate(recommendations []Verdict) Overall {
	var dangers, warnings, unknowns int
	for _, rec := range recommendations {
		switch rec.Level {
		case catalog.LevelDanger:
			dangers++
		case catalog.LevelWarning:
			warnings++
		case catalog.LevelUnknown:
			unknowns++
		}
	}

	switch {
	case dangers > 0:
		return Overall{
			Level:    OverallDanger,
			Title:    "Maintenance overdue",
			Subtitle: fmt.Sprintf("%d item(s) need immediate attention", dangers),
		}
	case warnings > 0:
		return Overall{
			Level:    OverallWarning,
			Title:    "Maintenance due soon",
			Subtitle: fmt.Sprintf("%d item(s) coming up", warnings),
		}
	case unknowns > 0:
		return Overall{
			Level:    OverallInfo,
			Title:    "Incomplete history",
			Subtitle: "Register past services to complete the picture",
		}
	default:
		return Overall{
			Level:    OverallGood,
			Title:    "All good",
			Subtitle: "No maintenance due",
		}
	}
}
