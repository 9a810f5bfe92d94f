// Package viewmodel shapes snapshots and analytics output into the
// structures the presentation layer renders. Pure transforms, no I/O.
package viewmodel

import (
	"math"
	"sort"

	gh "github.com/google/go-github/v57/github"
)

const topLanguages = 10

// LanguageStat is one language's share of the sampled repositories.
type LanguageStat struct {
	Language   string  `json:"language"`
	Bytes      int     `json:"bytes"`
	Percentage float64 `json:"percentage"`
}

// LanguageBreakdown aggregates per-repo byte counts into percentages of the
// total, one decimal place, sorted descending by bytes and capped at the
// top ten.
func LanguageBreakdown(repoLanguages map[string]map[string]int) []LanguageStat {
	byteTotals := make(map[string]int)
	total := 0
	for _, langs := range repoLanguages {
		for lang, bytes := range langs {
			byteTotals[lang] += bytes
			total += bytes
		}
	}
	if total == 0 {
		return nil
	}

	stats := make([]LanguageStat, 0, len(byteTotals))
	for lang, bytes := range byteTotals {
		stats = append(stats, LanguageStat{
			Language:   lang,
			Bytes:      bytes,
			Percentage: math.Floor(float64(bytes)/float64(total)*1000+0.5) / 10,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Bytes != stats[j].Bytes {
			return stats[i].Bytes > stats[j].Bytes
		}
		return stats[i].Language < stats[j].Language
	})

	if len(stats) > topLanguages {
		stats = stats[:topLanguages]
	}
	return stats
}

// TotalStars sums stargazers across a repository list.
func TotalStars(repos []*gh.Repository) int {
	total := 0
	for _, r := range repos {
		total += r.GetStargazersCount()
	}
	return total
}

// TotalForks sums forks across a repository list.
func TotalForks(repos []*gh.Repository) int {
	total := 0
	for _, r := range repos {
		total += r.GetForksCount()
	}
	return total
}
