package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeatmap_SundayAlignedYear(t *testing.T) {
	// 2023 both starts and ends on a Sunday
	snap := snapshot(t, day(t, "2023-01-01", 4), day(t, "2023-06-15", 1))
	weeks := BuildHeatmap(snap, Range{Kind: RangeYear, Year: 2023}, DefaultFilter(), DefaultLevels(), at(t, "2024-06-15"))

	require.Len(t, weeks, 53)
	assert.Equal(t, day(t, "2023-01-01", 0).Date, weeks[0][0].Date)
	assert.Equal(t, time.Sunday, weeks[0][0].Date.Weekday())
	assert.Equal(t, 4, weeks[0][0].Count)
	assert.Equal(t, 2, weeks[0][0].Level)

	// the last week starts on Dec 31 and spills into 2024 with zero counts
	last := weeks[52]
	assert.Equal(t, day(t, "2023-12-31", 0).Date, last[0].Date)
	for i := 1; i < 7; i++ {
		assert.Zero(t, last[i].Count, "trailing cell %d", i)
		assert.Equal(t, 0, last[i].Level)
	}
}

func TestBuildHeatmap_LeadingPadding(t *testing.T) {
	// Jan 1 2024 is a Monday, so the grid starts on Dec 31 2023
	snap := snapshot(t, day(t, "2024-01-01", 2))
	weeks := BuildHeatmap(snap, Range{Kind: RangeYear, Year: 2024}, DefaultFilter(), DefaultLevels(), at(t, "2024-06-15"))

	require.NotEmpty(t, weeks)
	assert.Equal(t, day(t, "2023-12-31", 0).Date, weeks[0][0].Date)
	assert.Zero(t, weeks[0][0].Count)
	assert.Equal(t, 2, weeks[0][1].Count)
	assert.Equal(t, 1, weeks[0][1].Level)
}

func TestBuildHeatmap_MarksToday(t *testing.T) {
	snap := snapshot(t, day(t, "2024-06-15", 1))
	weeks := BuildHeatmap(snap, Range{Kind: RangeYear, Year: 2024}, DefaultFilter(), DefaultLevels(), at(t, "2024-06-15"))

	var found bool
	for _, week := range weeks {
		for _, cell := range week {
			if cell.IsToday {
				found = true
				assert.Equal(t, day(t, "2024-06-15", 0).Date, cell.Date)
			}
		}
	}
	assert.True(t, found)
}

func TestBuildHeatmap_FilteredDaysRenderAsZero(t *testing.T) {
	snap := snapshot(t, day(t, "2024-01-01", 2), day(t, "2024-01-02", 9))
	f := DefaultFilter()
	f.MaxCount = 5

	weeks := BuildHeatmap(snap, Range{Kind: RangeYear, Year: 2024}, f, DefaultLevels(), at(t, "2024-06-15"))

	require.NotEmpty(t, weeks)
	assert.Equal(t, 2, weeks[0][1].Count)
	assert.Zero(t, weeks[0][2].Count)
}
