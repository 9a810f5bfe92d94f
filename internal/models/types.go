package models

import (
	"time"

	gh "github.com/google/go-github/v57/github"
)

// ContributionDay is one calendar day of recorded activity. Date carries day
// precision only (UTC midnight).
type ContributionDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// ContributionSource identifies which upstream produced a snapshot. A
// snapshot never mixes records from different sources.
type ContributionSource string

const (
	SourceGraphQL  ContributionSource = "graphql"
	SourceFallback ContributionSource = "fallback"
	SourceNone     ContributionSource = "none"
)

// ContributionSnapshot is the canonical contribution model. Days are sorted
// ascending by date with at most one entry per date; gaps imply zero for
// consumers. Treated as immutable once built.
type ContributionSnapshot struct {
	Days         []ContributionDay  `json:"days"`
	TotalsByYear map[int]int        `json:"totalsByYear"`
	Source       ContributionSource `json:"source"`
}

// Empty reports whether the snapshot carries no contribution data at all.
// This is a valid outcome, not an error.
func (s ContributionSnapshot) Empty() bool {
	return len(s.Days) == 0
}

// TotalForYear returns the recorded total for a calendar year, zero when the
// year is unknown.
func (s ContributionSnapshot) TotalForYear(year int) int {
	return s.TotalsByYear[year]
}

// ProfileSnapshot is the aggregate root for one profile lookup. It is built
// once per search and replaced wholesale on refresh; fields are never
// mutated in place after construction.
type ProfileSnapshot struct {
	User          *gh.User
	Repositories  []*gh.Repository
	Events        []*gh.Event
	Organizations []*gh.Organization
	Gists         []*gh.Gist
	Starred       []*gh.StarredRepository
	Contributions ContributionSnapshot
	RepoLanguages map[string]map[string]int
	FetchedAt     time.Time
}

// Username returns the login the snapshot was built for.
func (s *ProfileSnapshot) Username() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.GetLogin()
}

// Day normalizes a timestamp to UTC midnight, the precision ContributionDay
// dates are keyed on.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses an ISO calendar date (2006-01-02) into a UTC day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
