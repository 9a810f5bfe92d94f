package display

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/octoscope/octoscope/internal/analytics"
)

// Cell glyphs by level index; anything past the table reuses the last glyph.
var levelGlyphs = []string{".", "-", "+", "*", "#", "@"}

var levelColors = []*color.Color{
	color.New(color.FgHiBlack),
	color.New(color.FgGreen),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgHiGreen),
	color.New(color.FgHiGreen, color.Bold),
	color.New(color.FgHiWhite, color.BgGreen),
}

// Heatmap renders the grid as one terminal row per weekday, weeks as
// columns, matching the dashboard's layout.
func Heatmap(weeks []analytics.Week) {
	if len(weeks) == 0 {
		return
	}

	fmt.Println()
	headerColor.Println("CONTRIBUTION HEATMAP")
	fmt.Println(strings.Repeat("-", 60))

	labels := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for day := 0; day < 7; day++ {
		fmt.Printf("%s ", labels[day])
		for _, week := range weeks {
			cell := week[day]
			idx := cell.Level
			if idx < 0 {
				idx = 0
			}
			if idx >= len(levelGlyphs) {
				idx = len(levelGlyphs) - 1
			}
			if cell.IsToday {
				color.New(color.FgHiYellow, color.Bold).Print(levelGlyphs[idx])
				continue
			}
			levelColors[idx].Print(levelGlyphs[idx])
		}
		fmt.Println()
	}
}

// Legend prints the level boundaries under the heatmap.
func Legend(levels []analytics.Level) {
	fmt.Print("Less ")
	for i := range levels {
		idx := i
		if idx >= len(levelGlyphs) {
			idx = len(levelGlyphs) - 1
		}
		levelColors[idx].Print(levelGlyphs[idx])
	}
	fmt.Println(" More")
	for _, lvl := range levels {
		if lvl.Max == analytics.Unbounded {
			fmt.Printf("  %s: %d+\n", lvl.Label, lvl.Min)
			continue
		}
		fmt.Printf("  %s: %d-%d\n", lvl.Label, lvl.Min, lvl.Max)
	}
}
