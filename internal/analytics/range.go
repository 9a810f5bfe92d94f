// Package analytics derives streaks, summary statistics, level buckets and
// heatmap grids from a contribution snapshot. Everything here is pure and
// deterministic given the snapshot, range and filter.
package analytics

import (
	"fmt"
	"time"

	"github.com/octoscope/octoscope/internal/models"
)

// RangeKind selects how the active date window is derived.
type RangeKind string

const (
	RangeYear    RangeKind = "year"    // Jan 1 - Dec 31 of the selected year
	RangeLast365 RangeKind = "last365" // rolling 365-day window ending now
	RangeMonth   RangeKind = "month"   // current calendar month to date
	RangeQuarter RangeKind = "quarter" // current calendar quarter to date
	RangeCustom  RangeKind = "custom"  // caller-supplied bounds
)

// Range is the date-range selector. Year applies to RangeYear and as the
// default start year for RangeCustom; Start/End apply to RangeCustom only.
type Range struct {
	Kind  RangeKind
	Year  int
	Start time.Time
	End   time.Time
}

// ParseRangeKind validates a selector name from an external surface.
func ParseRangeKind(s string) (RangeKind, error) {
	switch RangeKind(s) {
	case RangeYear, RangeLast365, RangeMonth, RangeQuarter, RangeCustom:
		return RangeKind(s), nil
	case "":
		return RangeYear, nil
	default:
		return "", fmt.Errorf("unknown range %q", s)
	}
}

// Bounds resolves the selector to inclusive day-precision bounds.
func (r Range) Bounds(now time.Time) (start, end time.Time) {
	today := models.Day(now)

	switch r.Kind {
	case RangeLast365:
		return today.AddDate(0, 0, -365), today
	case RangeMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today
	case RangeQuarter:
		quarter := (int(today.Month()) - 1) / 3
		return time.Date(today.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, time.UTC), today
	case RangeCustom:
		year := r.Year
		if year == 0 {
			year = today.Year()
		}
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		if !r.Start.IsZero() {
			start = models.Day(r.Start)
		}
		end = today
		if !r.End.IsZero() {
			end = models.Day(r.End)
		}
		return start, end
	default: // RangeYear
		year := r.Year
		if year == 0 {
			year = today.Year()
		}
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
}
