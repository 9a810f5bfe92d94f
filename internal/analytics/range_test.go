package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangeKind(t *testing.T) {
	for _, s := range []string{"year", "last365", "month", "quarter", "custom"} {
		kind, err := ParseRangeKind(s)
		require.NoError(t, err)
		assert.Equal(t, RangeKind(s), kind)
	}

	kind, err := ParseRangeKind("")
	require.NoError(t, err)
	assert.Equal(t, RangeYear, kind)

	_, err = ParseRangeKind("fortnight")
	assert.Error(t, err)
}

func TestRangeBounds_Year(t *testing.T) {
	start, end := Range{Kind: RangeYear, Year: 2023}.Bounds(at(t, "2024-03-10"))
	assert.Equal(t, day(t, "2023-01-01", 0).Date, start)
	assert.Equal(t, day(t, "2023-12-31", 0).Date, end)
}

func TestRangeBounds_YearDefaultsToCurrent(t *testing.T) {
	start, end := Range{Kind: RangeYear}.Bounds(at(t, "2024-03-10"))
	assert.Equal(t, day(t, "2024-01-01", 0).Date, start)
	assert.Equal(t, day(t, "2024-12-31", 0).Date, end)
}

func TestRangeBounds_Last365(t *testing.T) {
	start, end := Range{Kind: RangeLast365}.Bounds(at(t, "2024-03-10"))
	assert.Equal(t, day(t, "2023-03-11", 0).Date, start)
	assert.Equal(t, day(t, "2024-03-10", 0).Date, end)
}

func TestRangeBounds_Month(t *testing.T) {
	start, end := Range{Kind: RangeMonth}.Bounds(at(t, "2024-03-10"))
	assert.Equal(t, day(t, "2024-03-01", 0).Date, start)
	assert.Equal(t, day(t, "2024-03-10", 0).Date, end)
}

func TestRangeBounds_Quarter(t *testing.T) {
	start, end := Range{Kind: RangeQuarter}.Bounds(at(t, "2024-05-15"))
	assert.Equal(t, day(t, "2024-04-01", 0).Date, start)
	assert.Equal(t, day(t, "2024-05-15", 0).Date, end)
}

func TestRangeBounds_Custom(t *testing.T) {
	r := Range{
		Kind:  RangeCustom,
		Start: day(t, "2024-02-01", 0).Date,
		End:   day(t, "2024-02-29", 0).Date,
	}
	start, end := r.Bounds(at(t, "2024-03-10"))
	assert.Equal(t, day(t, "2024-02-01", 0).Date, start)
	assert.Equal(t, day(t, "2024-02-29", 0).Date, end)
}

func TestRangeBounds_CustomDefaults(t *testing.T) {
	start, end := Range{Kind: RangeCustom}.Bounds(at(t, "2024-03-10"))
	assert.Equal(t, day(t, "2024-01-01", 0).Date, start)
	assert.Equal(t, day(t, "2024-03-10", 0).Date, end)
}
