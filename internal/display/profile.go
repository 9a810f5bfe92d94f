package display

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/octoscope/octoscope/internal/analytics"
	"github.com/octoscope/octoscope/internal/models"
	"github.com/octoscope/octoscope/internal/viewmodel"
)

var headerColor = color.New(color.FgCyan, color.Bold)

// Profile prints the profile header and cross-repository aggregates.
func Profile(o viewmodel.Overview) {
	fmt.Println()
	headerColor.Printf("%s", o.Login)
	if o.Name != "" {
		fmt.Printf(" (%s)", o.Name)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 60))

	if o.Bio != "" {
		fmt.Printf("%s\n", o.Bio)
	}
	if o.Location != "" {
		fmt.Printf("%s %s\n", color.WhiteString("Location:"), o.Location)
	}
	fmt.Printf("%s %d\n", color.WhiteString("Joined:"), o.JoinedYear)
	fmt.Printf("%s %d  %s %d\n",
		color.WhiteString("Followers:"), o.Followers,
		color.WhiteString("Following:"), o.Following)
	fmt.Printf("%s %d  %s %d  %s %d\n",
		color.WhiteString("Repos:"), o.PublicRepos,
		color.WhiteString("Gists:"), o.PublicGists,
		color.WhiteString("Orgs:"), o.Organizations)
	fmt.Printf("%s %d  %s %d\n",
		color.WhiteString("Total stars:"), o.TotalStars,
		color.WhiteString("Total forks:"), o.TotalForks)
	if o.YearTotal > 0 {
		fmt.Printf("%s %d\n", color.WhiteString("Contributions this year:"), o.YearTotal)
	}
}

// Summary prints the range statistics and streak state.
func Summary(stats analytics.SummaryStats, streaks analytics.StreakState) {
	fmt.Println()
	headerColor.Println("CONTRIBUTION SUMMARY")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%s %d\n", color.WhiteString("Total:"), stats.Total)
	fmt.Printf("%s %d  %s %d\n",
		color.WhiteString("Active days:"), stats.ActiveDays,
		color.WhiteString("Best day:"), stats.BestDay)
	fmt.Printf("%s %.1f  %s %.1f\n",
		color.WhiteString("Daily average:"), stats.AvgDaily,
		color.WhiteString("Weekly average:"), stats.WeekAvg)

	fmt.Println()
	switch streaks.Status {
	case analytics.StatusActive:
		color.Green("Current streak: %d days (%s) - contributed today", streaks.CurrentStreak, streaks.Level.Name)
	case analytics.StatusMaintained:
		color.Yellow("Current streak: %d days (%s) - nothing today yet", streaks.CurrentStreak, streaks.Level.Name)
	default:
		color.Red("No current streak")
	}
	fmt.Printf("%s %d days\n", color.WhiteString("Longest streak:"), streaks.LongestStreak)
	if streaks.BestDay.Count > 0 {
		fmt.Printf("%s %d on %s\n",
			color.WhiteString("Best day:"),
			streaks.BestDay.Count, streaks.BestDay.Date.Format("Jan 2, 2006"))
	}
	if streaks.BestMonth.Count > 0 {
		fmt.Printf("%s %d in %s\n",
			color.WhiteString("Best month:"),
			streaks.BestMonth.Count, streaks.BestMonth.Label)
	}
}

// Languages prints the byte-share breakdown.
func Languages(stats []viewmodel.LanguageStat) {
	if len(stats) == 0 {
		return
	}
	fmt.Println()
	headerColor.Println("LANGUAGES")
	fmt.Println(strings.Repeat("-", 60))
	for i, s := range stats {
		bar := strings.Repeat("#", int(s.Percentage/2))
		fmt.Printf("%2d. %-14s %5.1f%% %s\n", i+1, s.Language, s.Percentage, color.GreenString(bar))
	}
}

// Comparison prints the two-profile comparison with per-metric winners.
func Comparison(cmp viewmodel.Comparison) {
	fmt.Println()
	headerColor.Printf("%s vs %s\n", cmp.UserA, cmp.UserB)
	fmt.Println(strings.Repeat("-", 60))

	for _, m := range cmp.Metrics {
		marker := " "
		switch m.Winner {
		case viewmodel.WinnerA:
			marker = "<"
		case viewmodel.WinnerB:
			marker = ">"
		}
		fmt.Printf("%-24s %8d %s %-8d (%+.1f%%)\n", m.Label, m.A, marker, m.B, m.DiffPercent)
	}

	fmt.Println()
	switch cmp.Overall {
	case viewmodel.WinnerA:
		color.Green("Overall: %s leads", cmp.UserA)
	case viewmodel.WinnerB:
		color.Green("Overall: %s leads", cmp.UserB)
	default:
		color.Yellow("Overall: tie")
	}
}

// NoData prints the placeholder shown when contributions are unavailable.
func NoData(snap models.ContributionSnapshot) {
	if snap.Empty() {
		color.Yellow("\n[!] No contribution data available; profile sections above are still complete")
	}
}
