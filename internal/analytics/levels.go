package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/octoscope/octoscope/internal/models"
)

// Unbounded marks a level with no upper count limit.
const Unbounded = math.MaxInt

// Level is one heatmap intensity bucket. An ordered level set must cover
// [0, +inf) with no gaps and no overlaps.
type Level struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Color string `json:"color"`
	Label string `json:"label"`
}

var defaultLabels = []string{
	"No contributions",
	"Low activity",
	"Medium activity",
	"High activity",
	"Very high activity",
	"Exceptional activity",
}

var defaultColors = []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39", "#0e4429"}

// DefaultLevels is the GitHub-style fixed bucket set.
func DefaultLevels() []Level {
	return []Level{
		{Min: 0, Max: 0, Color: defaultColors[0], Label: defaultLabels[0]},
		{Min: 1, Max: 3, Color: defaultColors[1], Label: defaultLabels[1]},
		{Min: 4, Max: 6, Color: defaultColors[2], Label: defaultLabels[2]},
		{Min: 7, Max: 10, Color: defaultColors[3], Label: defaultLabels[3]},
		{Min: 11, Max: Unbounded, Color: defaultColors[4], Label: defaultLabels[4]},
	}
}

// ValidateLevels checks the partition invariant. Level edits replace the
// whole list and must pass here before acceptance.
func ValidateLevels(levels []Level) error {
	if len(levels) == 0 {
		return fmt.Errorf("level set must not be empty")
	}
	if levels[0].Min != 0 {
		return fmt.Errorf("first level must start at 0, got %d", levels[0].Min)
	}
	for i, lvl := range levels {
		if lvl.Max != Unbounded && lvl.Max < lvl.Min {
			return fmt.Errorf("level %d: max %d below min %d", i, lvl.Max, lvl.Min)
		}
		if i > 0 {
			prev := levels[i-1]
			if prev.Max == Unbounded {
				return fmt.Errorf("level %d: unbounded level must be last", i-1)
			}
			if lvl.Min != prev.Max+1 {
				return fmt.Errorf("level %d: min %d not contiguous with previous max %d", i, lvl.Min, prev.Max)
			}
		}
	}
	if levels[len(levels)-1].Max != Unbounded {
		return fmt.Errorf("last level must be unbounded")
	}
	return nil
}

// LevelFor maps a count to the index of the first bucket containing it, or
// -1 when the set does not cover the count.
func LevelFor(levels []Level, count int) int {
	for i, lvl := range levels {
		if count >= lvl.Min && (lvl.Max == Unbounded || count <= lvl.Max) {
			return i
		}
	}
	return -1
}

// PercentileLevels derives buckets from the 25th/50th/75th/90th percentiles
// of the nonzero count distribution in the working set. Percentile q is the
// floor(n*q)-th element of the sorted nonzero counts. Falls back to the
// default set when no nonzero counts exist.
func PercentileLevels(days []models.ContributionDay) []Level {
	counts := nonzeroCounts(days)
	if len(counts) == 0 {
		return DefaultLevels()
	}
	sort.Ints(counts)

	n := len(counts)
	cuts := []int{
		counts[int(float64(n)*0.25)],
		counts[int(float64(n)*0.50)],
		counts[int(float64(n)*0.75)],
		counts[int(float64(n)*0.90)],
	}
	return buildLevels(cuts)
}

// QuartileLevels derives buckets at 25%/50%/75% of the maximum count in the
// working set.
func QuartileLevels(days []models.ContributionDay) []Level {
	max := 0
	for _, d := range days {
		if d.Count > max {
			max = d.Count
		}
	}
	if max == 0 {
		return DefaultLevels()
	}

	cuts := []int{
		int(math.Round(float64(max) * 0.25)),
		int(math.Round(float64(max) * 0.50)),
		int(math.Round(float64(max) * 0.75)),
	}
	return buildLevels(cuts)
}

// buildLevels turns ascending cut points into a partition of [0, +inf): the
// zero bucket, one bucket per cut, and a final unbounded bucket. Equal or
// out-of-order cuts are nudged up to keep the partition invariant.
func buildLevels(cuts []int) []Level {
	levels := make([]Level, 0, len(cuts)+2)
	levels = append(levels, Level{Min: 0, Max: 0, Color: defaultColors[0], Label: defaultLabels[0]})

	lo := 1
	for i, cut := range cuts {
		hi := cut
		if hi < lo {
			hi = lo
		}
		levels = append(levels, Level{Min: lo, Max: hi, Color: defaultColors[i+1], Label: defaultLabels[i+1]})
		lo = hi + 1
	}
	levels = append(levels, Level{
		Min:   lo,
		Max:   Unbounded,
		Color: defaultColors[len(cuts)+1],
		Label: defaultLabels[len(cuts)+1],
	})
	return levels
}

func nonzeroCounts(days []models.ContributionDay) []int {
	var counts []int
	for _, d := range days {
		if d.Count > 0 {
			counts = append(counts, d.Count)
		}
	}
	return counts
}
