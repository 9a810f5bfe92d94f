package analytics

import (
	"time"

	"github.com/octoscope/octoscope/internal/models"
)

// Cell is one day in the heatmap grid.
type Cell struct {
	Date    time.Time `json:"date"`
	Count   int       `json:"count"`
	Level   int       `json:"level"`
	IsToday bool      `json:"isToday"`
}

// Week is one column of seven cells, Sunday first.
type Week [7]Cell

// BuildHeatmap generates week-aligned rows from the Sunday on or before the
// range start through the range end. Days outside the working set, including
// trailing days of the final week beyond the range end, carry count zero.
func BuildHeatmap(snap models.ContributionSnapshot, r Range, f Filter, levels []Level, now time.Time) []Week {
	start, end := r.Bounds(now)
	days := WorkingSet(snap, r, f, now)
	counts := dayIndex(days)
	today := models.Day(now)

	cursor := start.AddDate(0, 0, -int(start.Weekday()))

	var weeks []Week
	for !cursor.After(end) {
		var week Week
		for i := 0; i < 7; i++ {
			count := counts[cursor]
			week[i] = Cell{
				Date:    cursor,
				Count:   count,
				Level:   LevelFor(levels, count),
				IsToday: cursor.Equal(today),
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
