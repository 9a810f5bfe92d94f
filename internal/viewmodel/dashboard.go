package viewmodel

import (
	"time"

	"github.com/octoscope/octoscope/internal/analytics"
	"github.com/octoscope/octoscope/internal/models"
)

// Overview is the profile header plus cross-repository aggregates.
type Overview struct {
	Login         string `json:"login"`
	Name          string `json:"name"`
	Bio           string `json:"bio"`
	Location      string `json:"location"`
	AvatarURL     string `json:"avatarUrl"`
	Followers     int    `json:"followers"`
	Following     int    `json:"following"`
	PublicRepos   int    `json:"publicRepos"`
	PublicGists   int    `json:"publicGists"`
	Organizations int    `json:"organizations"`
	Starred       int    `json:"starred"`
	TotalStars    int    `json:"totalStars"`
	TotalForks    int    `json:"totalForks"`
	JoinedYear    int    `json:"joinedYear"`
	YearTotal     int    `json:"yearTotal"`
}

// Dashboard is the complete payload handed to the presentation layer for one
// profile.
type Dashboard struct {
	Overview  Overview               `json:"overview"`
	Languages []LanguageStat         `json:"languages"`
	Streaks   analytics.StreakState  `json:"streaks"`
	Summary   analytics.SummaryStats `json:"summary"`
	Heatmap   []analytics.Week       `json:"heatmap"`
	Source    string                 `json:"contributionSource"`
	FetchedAt time.Time              `json:"fetchedAt"`
}

// BuildOverview flattens the snapshot's profile fields and aggregates.
func BuildOverview(snap *models.ProfileSnapshot, now time.Time) Overview {
	o := Overview{
		Organizations: len(snap.Organizations),
		Starred:       len(snap.Starred),
		TotalStars:    TotalStars(snap.Repositories),
		TotalForks:    TotalForks(snap.Repositories),
		YearTotal:     snap.Contributions.TotalForYear(now.UTC().Year()),
	}
	if u := snap.User; u != nil {
		o.Login = u.GetLogin()
		o.Name = u.GetName()
		o.Bio = u.GetBio()
		o.Location = u.GetLocation()
		o.AvatarURL = u.GetAvatarURL()
		o.Followers = u.GetFollowers()
		o.Following = u.GetFollowing()
		o.PublicRepos = u.GetPublicRepos()
		o.PublicGists = u.GetPublicGists()
		o.JoinedYear = u.GetCreatedAt().Year()
	}
	return o
}

// BuildDashboard assembles the full view-model with the given range, filter
// and level set.
func BuildDashboard(snap *models.ProfileSnapshot, r analytics.Range, f analytics.Filter, levels []analytics.Level, now time.Time) Dashboard {
	return Dashboard{
		Overview:  BuildOverview(snap, now),
		Languages: LanguageBreakdown(snap.RepoLanguages),
		Streaks:   analytics.ComputeStreaks(snap.Contributions, now),
		Summary:   analytics.ComputeContributionStats(snap.Contributions, r, f, now),
		Heatmap:   analytics.BuildHeatmap(snap.Contributions, r, f, levels, now),
		Source:    string(snap.Contributions.Source),
		FetchedAt: snap.FetchedAt,
	}
}
