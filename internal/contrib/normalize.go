// Package contrib normalizes heterogeneous contribution payloads into the
// canonical ContributionSnapshot consumed by the analytics engine.
package contrib

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/octoscope/octoscope/internal/github"
	"github.com/octoscope/octoscope/internal/models"
)

// Fetcher is the slice of the transport client the normalizer needs.
type Fetcher interface {
	HasToken() bool
	ContributionCalendar(ctx context.Context, username string) (*github.Calendar, error)
	FallbackContributions(ctx context.Context, username string) (*github.FallbackResponse, error)
}

// Fetch resolves contribution data with a strict preference order: the
// GraphQL calendar when a credential exists, the public fallback service
// otherwise or on any GraphQL failure. Both paths failing yields an empty
// snapshot, which is a valid outcome rather than an error.
func Fetch(ctx context.Context, f Fetcher, username string, now time.Time, log zerolog.Logger) models.ContributionSnapshot {
	if f.HasToken() {
		cal, err := f.ContributionCalendar(ctx, username)
		if err == nil {
			return FromCalendar(cal, now)
		}
		log.Warn().Err(err).Str("username", username).Msg("graphql calendar failed, trying fallback")
	}

	resp, err := f.FallbackContributions(ctx, username)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("fallback contributions failed")
		return Empty()
	}
	return FromFallback(resp)
}

// FromCalendar flattens the week-grouped GraphQL calendar into the canonical
// day sequence. The totals map holds a single entry for the current calendar
// year, sourced from the calendar's own reported total.
func FromCalendar(cal *github.Calendar, now time.Time) models.ContributionSnapshot {
	if cal == nil {
		return Empty()
	}

	var days []models.ContributionDay
	for _, week := range cal.Weeks {
		for _, d := range week {
			date, err := models.ParseDay(d.Date)
			if err != nil {
				continue
			}
			days = append(days, models.ContributionDay{Date: date, Count: d.ContributionCount})
		}
	}
	days = sortDays(days)

	return models.ContributionSnapshot{
		Days:         days,
		TotalsByYear: map[int]int{now.UTC().Year(): cal.TotalContributions},
		Source:       models.SourceGraphQL,
	}
}

// FromFallback maps the public service's {date, count} shape into the
// canonical model. Yearly totals carry over where the year keys parse.
func FromFallback(resp *github.FallbackResponse) models.ContributionSnapshot {
	if resp == nil || len(resp.Contributions) == 0 {
		return Empty()
	}

	var days []models.ContributionDay
	for _, d := range resp.Contributions {
		date, err := models.ParseDay(d.Date)
		if err != nil {
			continue
		}
		days = append(days, models.ContributionDay{Date: date, Count: d.Count})
	}
	days = sortDays(days)

	totals := make(map[int]int, len(resp.Total))
	for yearStr, total := range resp.Total {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			continue
		}
		totals[year] = total
	}

	if len(days) == 0 {
		return Empty()
	}

	return models.ContributionSnapshot{
		Days:         days,
		TotalsByYear: totals,
		Source:       models.SourceFallback,
	}
}

// Empty returns the valid no-data snapshot.
func Empty() models.ContributionSnapshot {
	return models.ContributionSnapshot{
		TotalsByYear: map[int]int{},
		Source:       models.SourceNone,
	}
}

// sortDays orders ascending by date and drops duplicate dates, keeping the
// first occurrence. At most one entry per date is an invariant of the model.
func sortDays(days []models.ContributionDay) []models.ContributionDay {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	out := days[:0]
	var last time.Time
	for i, d := range days {
		if i > 0 && d.Date.Equal(last) {
			continue
		}
		out = append(out, d)
		last = d.Date
	}
	return out
}
