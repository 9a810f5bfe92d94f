// Package aggregate orchestrates the parallel GitHub fetches that build one
// ProfileSnapshot, degrading individual sub-fetch failures to empty
// defaults. Only the primary user lookup is fatal.
package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/rs/zerolog"

	"github.com/octoscope/octoscope/internal/contrib"
	"github.com/octoscope/octoscope/internal/models"
)

// languageRepoLimit caps the secondary per-repo language fan-out.
const languageRepoLimit = 8

// Fetcher is the transport surface the aggregator consumes. *github.Client
// satisfies it; tests substitute mocks.
type Fetcher interface {
	HasToken() bool
	User(ctx context.Context, username string) (*gh.User, error)
	Repositories(ctx context.Context, username string) ([]*gh.Repository, error)
	Events(ctx context.Context, username string) ([]*gh.Event, error)
	Organizations(ctx context.Context, username string) ([]*gh.Organization, error)
	Gists(ctx context.Context, username string) ([]*gh.Gist, error)
	Starred(ctx context.Context, username string) ([]*gh.StarredRepository, error)
	Languages(ctx context.Context, owner, repo string) (map[string]int, error)
	RateLimit(ctx context.Context) (*gh.RateLimits, error)
	contrib.Fetcher
}

// Aggregator fans out the profile fetches and merges the results.
type Aggregator struct {
	fetcher Fetcher
	log     zerolog.Logger
	now     func() time.Time

	// Progress, when set, is called once per completed sub-fetch.
	Progress func(stage string)
}

func New(fetcher Fetcher, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		log:     log.With().Str("component", "aggregate").Logger(),
		now:     time.Now,
	}
}

func (a *Aggregator) step(stage string) {
	if a.Progress != nil {
		a.Progress(stage)
	}
}

// FetchAllUserData builds a ProfileSnapshot from seven concurrent fetches
// plus a secondary language fan-out. The user lookup error is surfaced
// verbatim and aborts the aggregation; every other failure degrades to an
// empty default and is only logged.
func (a *Aggregator) FetchAllUserData(ctx context.Context, username string) (*models.ProfileSnapshot, error) {
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}

	if limits, err := a.fetcher.RateLimit(ctx); err == nil {
		a.log.Debug().
			Int("remaining", limits.GetCore().Remaining).
			Int("limit", limits.GetCore().Limit).
			Msg("rate limit before aggregation")
	}

	snap := &models.ProfileSnapshot{
		RepoLanguages: map[string]map[string]int{},
	}
	var userErr error

	var wg sync.WaitGroup
	wg.Add(7)

	go func() {
		defer wg.Done()
		snap.User, userErr = a.fetcher.User(ctx, username)
		a.step("user")
	}()
	go func() {
		defer wg.Done()
		snap.Repositories = degrade(a.log, "repositories", username, func() ([]*gh.Repository, error) {
			return a.fetcher.Repositories(ctx, username)
		})
		a.step("repositories")
	}()
	go func() {
		defer wg.Done()
		snap.Events = degrade(a.log, "events", username, func() ([]*gh.Event, error) {
			return a.fetcher.Events(ctx, username)
		})
		a.step("events")
	}()
	go func() {
		defer wg.Done()
		snap.Organizations = degrade(a.log, "organizations", username, func() ([]*gh.Organization, error) {
			return a.fetcher.Organizations(ctx, username)
		})
		a.step("organizations")
	}()
	go func() {
		defer wg.Done()
		snap.Gists = degrade(a.log, "gists", username, func() ([]*gh.Gist, error) {
			return a.fetcher.Gists(ctx, username)
		})
		a.step("gists")
	}()
	go func() {
		defer wg.Done()
		snap.Starred = degrade(a.log, "starred", username, func() ([]*gh.StarredRepository, error) {
			return a.fetcher.Starred(ctx, username)
		})
		a.step("starred")
	}()
	go func() {
		defer wg.Done()
		snap.Contributions = contrib.Fetch(ctx, a.fetcher, username, a.now(), a.log)
		a.step("contributions")
	}()

	wg.Wait()

	if userErr != nil {
		return nil, userErr
	}

	a.fetchLanguages(ctx, username, snap)

	snap.FetchedAt = a.now()
	a.log.Info().
		Str("username", username).
		Int("repos", len(snap.Repositories)).
		Int("events", len(snap.Events)).
		Int("contribution_days", len(snap.Contributions.Days)).
		Msg("aggregation complete")

	return snap, nil
}

// fetchLanguages runs the secondary fan-out over the top repositories. Each
// per-repo failure degrades to an empty mapping for that repository alone.
func (a *Aggregator) fetchLanguages(ctx context.Context, username string, snap *models.ProfileSnapshot) {
	repos := snap.Repositories
	if len(repos) > languageRepoLimit {
		repos = repos[:languageRepoLimit]
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, repo := range repos {
		wg.Add(1)
		go func(repo *gh.Repository) {
			defer wg.Done()
			langs, err := a.fetcher.Languages(ctx, username, repo.GetName())
			if err != nil {
				a.log.Warn().Err(err).Str("repo", repo.GetName()).Msg("language fetch degraded to empty")
				langs = map[string]int{}
			}
			mu.Lock()
			snap.RepoLanguages[repo.GetName()] = langs
			mu.Unlock()
			a.step("languages")
		}(repo)
	}
	wg.Wait()
}

// degrade converts a sub-fetch failure into an empty default, logging it as
// the only trace. Partial data is silent to the end user.
func degrade[T any](log zerolog.Logger, field, username string, fetch func() ([]T, error)) []T {
	items, err := fetch()
	if err != nil {
		log.Warn().Err(err).Str("field", field).Str("username", username).Msg("sub-fetch degraded to empty")
		return nil
	}
	return items
}
