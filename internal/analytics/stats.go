package analytics

import (
	"math"
	"time"

	"github.com/octoscope/octoscope/internal/models"
)

// SummaryStats are the headline numbers for the active range and filter.
// Averages carry one decimal place, rounded half-up.
type SummaryStats struct {
	Total         int     `json:"total"`
	CurrentStreak int     `json:"currentStreak"`
	LongestStreak int     `json:"longestStreak"`
	AvgDaily      float64 `json:"avgDaily"`
	BestDay       int     `json:"bestDay"`
	ActiveDays    int     `json:"activeDays"`
	WeekAvg       float64 `json:"weekAvg"`
}

// ComputeContributionStats derives summary statistics from the snapshot's
// working set. Empty input yields all zeroes, never an error.
func ComputeContributionStats(snap models.ContributionSnapshot, r Range, f Filter, now time.Time) SummaryStats {
	days := WorkingSet(snap, r, f, now)

	var stats SummaryStats
	for _, d := range days {
		stats.Total += d.Count
		if d.Count > 0 {
			stats.ActiveDays++
		}
		if d.Count > stats.BestDay {
			stats.BestDay = d.Count
		}
	}

	if n := len(days); n > 0 {
		stats.AvgDaily = round1(float64(stats.Total) / float64(n))
		stats.WeekAvg = round1(float64(stats.Total) / (float64(n) / 7))
	}

	stats.CurrentStreak = CurrentStreak(days, now)
	stats.LongestStreak = LongestStreak(days)

	return stats
}

// round1 rounds to one decimal place, half-up.
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
