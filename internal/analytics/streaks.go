package analytics

import (
	"sort"
	"time"

	"github.com/octoscope/octoscope/internal/models"
)

// StreakStatus reflects today's standing relative to the current streak.
type StreakStatus string

const (
	StatusActive     StreakStatus = "active"     // contributed today
	StatusMaintained StreakStatus = "maintained" // streak alive, nothing today yet
	StatusBroken     StreakStatus = "broken"     // no current streak
)

// StreakLevel is a named tier for a streak length.
type StreakLevel struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
}

var streakLevels = []StreakLevel{
	{Name: "Legendary", Min: 365},
	{Name: "Master", Min: 100},
	{Name: "Expert", Min: 30},
	{Name: "Active", Min: 7},
	{Name: "Beginner", Min: 0},
}

// LevelForStreak maps a streak length to its tier.
func LevelForStreak(streak int) StreakLevel {
	for _, lvl := range streakLevels {
		if streak >= lvl.Min {
			return lvl
		}
	}
	return streakLevels[len(streakLevels)-1]
}

// BestDay is the single highest-count day.
type BestDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// BestMonth is the highest-total calendar month, labelled "January 2024"
// style.
type BestMonth struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StreakState is derived from a snapshot, never stored.
type StreakState struct {
	CurrentStreak      int          `json:"currentStreak"`
	LongestStreak      int          `json:"longestStreak"`
	ActiveDays         int          `json:"activeDays"`
	DaysTracked        int          `json:"daysTracked"`
	TotalContributions int          `json:"totalContributions"`
	TodayCount         int          `json:"todayCount"`
	BestDay            BestDay      `json:"bestDay"`
	BestMonth          BestMonth    `json:"bestMonth"`
	Status             StreakStatus `json:"status"`
	Level              StreakLevel  `json:"level"`
}

// CurrentStreak walks backward day-by-day from today, counting consecutive
// days with at least one contribution. Today itself is allowed to be zero
// without breaking the streak; today zero and yesterday zero means no
// streak.
func CurrentStreak(days []models.ContributionDay, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	counts := dayIndex(days)
	today := models.Day(now)

	cursor := today
	if counts[today] == 0 {
		cursor = today.AddDate(0, 0, -1)
	}

	earliest := days[0].Date
	streak := 0
	for !cursor.Before(earliest) {
		if counts[cursor] == 0 {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak is a single forward pass over the set in date order. A gap
// between recorded dates implies zero-count days, which break a run.
func LongestStreak(days []models.ContributionDay) int {
	longest, run := 0, 0
	var prev time.Time

	for i, d := range days {
		switch {
		case d.Count == 0:
			run = 0
		case i > 0 && run > 0 && d.Date.Sub(prev) > 24*time.Hour:
			// gap between recorded dates implies zero-count days
			run = 1
		default:
			run++
		}
		if run > longest {
			longest = run
		}
		prev = d.Date
	}
	return longest
}

// ComputeStreaks derives the full streak state from a snapshot. Empty input
// yields zeroes and StatusBroken.
func ComputeStreaks(snap models.ContributionSnapshot, now time.Time) StreakState {
	state := StreakState{Status: StatusBroken, Level: LevelForStreak(0)}
	if snap.Empty() {
		return state
	}

	counts := dayIndex(snap.Days)
	today := models.Day(now)

	monthTotals := make(map[string]int)
	monthLabels := make(map[string]string)

	for _, d := range snap.Days {
		state.TotalContributions += d.Count
		state.DaysTracked++
		if d.Count > 0 {
			state.ActiveDays++
			if d.Count > state.BestDay.Count {
				state.BestDay = BestDay{Date: d.Date, Count: d.Count}
			}
		}

		key := d.Date.Format("2006-01")
		monthTotals[key] += d.Count
		monthLabels[key] = d.Date.Format("January 2006")
	}

	keys := make([]string, 0, len(monthTotals))
	for key := range monthTotals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bestKey := ""
	for _, key := range keys {
		if monthTotals[key] > monthTotals[bestKey] {
			bestKey = key
		}
	}
	if bestKey != "" && monthTotals[bestKey] > 0 {
		state.BestMonth = BestMonth{Label: monthLabels[bestKey], Count: monthTotals[bestKey]}
	}

	state.CurrentStreak = CurrentStreak(snap.Days, now)
	state.LongestStreak = LongestStreak(snap.Days)
	state.TodayCount = counts[today]
	state.Level = LevelForStreak(state.CurrentStreak)

	switch {
	case state.TodayCount > 0:
		state.Status = StatusActive
	case state.CurrentStreak > 0:
		state.Status = StatusMaintained
	default:
		state.Status = StatusBroken
	}

	return state
}
