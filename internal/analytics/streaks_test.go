package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octoscope/octoscope/internal/models"
)

func day(t *testing.T, date string, count int) models.ContributionDay {
	t.Helper()
	d, err := models.ParseDay(date)
	require.NoError(t, err)
	return models.ContributionDay{Date: d, Count: count}
}

func snapshot(t *testing.T, days ...models.ContributionDay) models.ContributionSnapshot {
	t.Helper()
	return models.ContributionSnapshot{
		Days:         days,
		TotalsByYear: map[int]int{},
		Source:       models.SourceGraphQL,
	}
}

func at(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := models.ParseDay(date)
	require.NoError(t, err)
	return d.Add(12 * time.Hour)
}

func TestCurrentStreak_ActiveToday(t *testing.T) {
	days := []models.ContributionDay{
		day(t, "2024-03-08", 2),
		day(t, "2024-03-09", 1),
		day(t, "2024-03-10", 3),
	}
	assert.Equal(t, 3, CurrentStreak(days, at(t, "2024-03-10")))
}

func TestCurrentStreak_TodayZeroDoesNotBreak(t *testing.T) {
	days := []models.ContributionDay{
		day(t, "2024-03-08", 2),
		day(t, "2024-03-09", 1),
		day(t, "2024-03-10", 0),
	}
	assert.Equal(t, 2, CurrentStreak(days, at(t, "2024-03-10")))
}

func TestCurrentStreak_TodayAndYesterdayZero(t *testing.T) {
	days := []models.ContributionDay{
		day(t, "2024-03-08", 2),
		day(t, "2024-03-09", 0),
		day(t, "2024-03-10", 0),
	}
	assert.Equal(t, 0, CurrentStreak(days, at(t, "2024-03-10")))
}

func TestCurrentStreak_Empty(t *testing.T) {
	assert.Equal(t, 0, CurrentStreak(nil, at(t, "2024-03-10")))
}

func TestLongestStreak_GapBreaksRun(t *testing.T) {
	days := []models.ContributionDay{
		day(t, "2024-01-01", 1),
		day(t, "2024-01-02", 2),
		day(t, "2024-01-05", 1),
		day(t, "2024-01-06", 1),
		day(t, "2024-01-07", 1),
	}
	assert.Equal(t, 3, LongestStreak(days))
}

func TestLongestStreak_ZeroDayResets(t *testing.T) {
	days := []models.ContributionDay{
		day(t, "2024-01-01", 1),
		day(t, "2024-01-02", 1),
		day(t, "2024-01-03", 0),
		day(t, "2024-01-04", 4),
	}
	assert.Equal(t, 2, LongestStreak(days))
}

func TestLongestStreak_Empty(t *testing.T) {
	assert.Equal(t, 0, LongestStreak(nil))
}

func TestLevelForStreak(t *testing.T) {
	cases := []struct {
		streak int
		name   string
	}{
		{0, "Beginner"},
		{6, "Beginner"},
		{7, "Active"},
		{30, "Expert"},
		{100, "Master"},
		{365, "Legendary"},
		{400, "Legendary"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, LevelForStreak(tc.streak).Name, "streak %d", tc.streak)
	}
}

func TestComputeStreaks_Empty(t *testing.T) {
	state := ComputeStreaks(snapshot(t), at(t, "2024-03-10"))

	assert.Equal(t, StatusBroken, state.Status)
	assert.Equal(t, 0, state.CurrentStreak)
	assert.Equal(t, 0, state.LongestStreak)
	assert.Equal(t, "Beginner", state.Level.Name)
	assert.Zero(t, state.BestDay.Count)
	assert.Empty(t, state.BestMonth.Label)
}

func TestComputeStreaks_Full(t *testing.T) {
	snap := snapshot(t,
		day(t, "2024-02-28", 5),
		day(t, "2024-02-29", 3),
		day(t, "2024-03-08", 2),
		day(t, "2024-03-09", 1),
		day(t, "2024-03-10", 4),
	)

	state := ComputeStreaks(snap, at(t, "2024-03-10"))

	assert.Equal(t, 15, state.TotalContributions)
	assert.Equal(t, 5, state.DaysTracked)
	assert.Equal(t, 5, state.ActiveDays)
	assert.Equal(t, 4, state.TodayCount)
	assert.Equal(t, 3, state.CurrentStreak)
	assert.Equal(t, 3, state.LongestStreak)
	assert.Equal(t, StatusActive, state.Status)
	assert.Equal(t, "Beginner", state.Level.Name)

	assert.Equal(t, 5, state.BestDay.Count)
	assert.Equal(t, day(t, "2024-02-28", 5).Date, state.BestDay.Date)

	assert.Equal(t, "February 2024", state.BestMonth.Label)
	assert.Equal(t, 8, state.BestMonth.Count)
}

func TestComputeStreaks_MaintainedWhenNothingToday(t *testing.T) {
	snap := snapshot(t,
		day(t, "2024-03-08", 2),
		day(t, "2024-03-09", 1),
		day(t, "2024-03-10", 4),
	)

	state := ComputeStreaks(snap, at(t, "2024-03-11"))

	assert.Equal(t, 3, state.CurrentStreak)
	assert.Equal(t, 0, state.TodayCount)
	assert.Equal(t, StatusMaintained, state.Status)
}

func TestComputeStreaks_BestMonthPrefersEarliestOnTie(t *testing.T) {
	snap := snapshot(t,
		day(t, "2024-01-15", 6),
		day(t, "2024-02-15", 6),
	)

	state := ComputeStreaks(snap, at(t, "2024-03-10"))
	assert.Equal(t, "January 2024", state.BestMonth.Label)
}
