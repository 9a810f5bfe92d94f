package viewmodel

import (
	"math"
	"time"

	"github.com/octoscope/octoscope/internal/models"
)

// Winner names the side that leads a metric or the whole comparison.
type Winner string

const (
	WinnerA   Winner = "a"
	WinnerB   Winner = "b"
	WinnerTie Winner = "tie"
)

// MetricComparison is one metric compared across two profiles. DiffPercent
// is A's percentage difference relative to B.
type MetricComparison struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	A           int     `json:"a"`
	B           int     `json:"b"`
	DiffPercent float64 `json:"diffPercent"`
	Winner      Winner  `json:"winner"`
}

// Comparison is the full two-profile comparison. Overall is decided by the
// majority of metrics won; equal wins are a tie, never assigned arbitrarily.
type Comparison struct {
	UserA   string             `json:"userA"`
	UserB   string             `json:"userB"`
	Metrics []MetricComparison `json:"metrics"`
	Overall Winner             `json:"overall"`
}

// Compare builds the metric-by-metric comparison of two snapshots.
func Compare(a, b *models.ProfileSnapshot, now time.Time) Comparison {
	year := now.UTC().Year()

	metrics := []MetricComparison{
		compareMetric("followers", "Followers", a.User.GetFollowers(), b.User.GetFollowers()),
		compareMetric("following", "Following", a.User.GetFollowing(), b.User.GetFollowing()),
		compareMetric("repos", "Public Repos", a.User.GetPublicRepos(), b.User.GetPublicRepos()),
		compareMetric("gists", "Public Gists", a.User.GetPublicGists(), b.User.GetPublicGists()),
		compareMetric("totalStars", "Total Stars", TotalStars(a.Repositories), TotalStars(b.Repositories)),
		compareMetric("totalForks", "Total Forks", TotalForks(a.Repositories), TotalForks(b.Repositories)),
		compareMetric("contributions", "This Year Contributions",
			a.Contributions.TotalForYear(year), b.Contributions.TotalForYear(year)),
	}

	var winsA, winsB int
	for _, m := range metrics {
		switch m.Winner {
		case WinnerA:
			winsA++
		case WinnerB:
			winsB++
		}
	}

	overall := WinnerTie
	if winsA > winsB {
		overall = WinnerA
	} else if winsB > winsA {
		overall = WinnerB
	}

	return Comparison{
		UserA:   a.Username(),
		UserB:   b.Username(),
		Metrics: metrics,
		Overall: overall,
	}
}

func compareMetric(key, label string, a, b int) MetricComparison {
	winner := WinnerTie
	if a > b {
		winner = WinnerA
	} else if b > a {
		winner = WinnerB
	}
	return MetricComparison{
		Key:         key,
		Label:       label,
		A:           a,
		B:           b,
		DiffPercent: percentDiff(a, b),
		Winner:      winner,
	}
}

// percentDiff is (a-b)/b as a percentage, one decimal. A zero baseline maps
// to 100 when a leads and 0 otherwise.
func percentDiff(a, b int) float64 {
	if b == 0 {
		if a > 0 {
			return 100
		}
		return 0
	}
	return math.Floor(float64(a-b)/float64(b)*1000+0.5) / 10
}
