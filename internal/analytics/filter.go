package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/octoscope/octoscope/internal/models"
)

// NoMax disables the upper count bound.
const NoMax = math.MaxInt

// Filter narrows the working day set. A day is included iff its count falls
// in [MinCount, MaxCount] inclusive and its weekday is in the allowed set.
type Filter struct {
	MinCount int
	MaxCount int
	Weekdays map[time.Weekday]bool
}

// DefaultFilter includes every day.
func DefaultFilter() Filter {
	return Filter{
		MinCount: 0,
		MaxCount: NoMax,
		Weekdays: AllWeekdays(),
	}
}

// AllWeekdays builds the full weekday set.
func AllWeekdays() map[time.Weekday]bool {
	all := make(map[time.Weekday]bool, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		all[wd] = true
	}
	return all
}

// Includes applies the count and weekday predicates to one day. Bounds are
// literal: MaxCount 0 selects zero-count days only, callers wanting no upper
// bound pass NoMax.
func (f Filter) Includes(d models.ContributionDay) bool {
	if d.Count < f.MinCount || d.Count > f.MaxCount {
		return false
	}
	if len(f.Weekdays) == 0 {
		return true
	}
	return f.Weekdays[d.Date.Weekday()]
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekdays decodes a comma-separated weekday list ("mon,tue,fri") from
// an external surface. Empty input selects every weekday.
func ParseWeekdays(s string) (map[time.Weekday]bool, error) {
	if s == "" {
		return AllWeekdays(), nil
	}
	out := make(map[time.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if len(name) > 3 {
			name = name[:3]
		}
		wd, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		out[wd] = true
	}
	return out, nil
}

// WorkingSet returns the days inside the range bounds that pass the filter,
// in date order. The snapshot is never mutated.
func WorkingSet(snap models.ContributionSnapshot, r Range, f Filter, now time.Time) []models.ContributionDay {
	start, end := r.Bounds(now)

	var out []models.ContributionDay
	for _, d := range snap.Days {
		if d.Date.Before(start) || d.Date.After(end) {
			continue
		}
		if !f.Includes(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// dayIndex keys a working set by date for O(1) lookups.
func dayIndex(days []models.ContributionDay) map[time.Time]int {
	m := make(map[time.Time]int, len(days))
	for _, d := range days {
		m[d.Date] = d.Count
	}
	return m
}
