package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	defaultGraphQLURL  = "https://api.github.com/graphql"
	defaultFallbackURL = "https://github-contributions-api.deno.dev"
	defaultUserAgent   = "octoscope/1.0"
	defaultTimeout     = 15 * time.Second

	// Fixed page sizes matching the dashboard's card layouts.
	repoPageSize    = 12
	eventPageSize   = 30
	gistPageSize    = 10
	starredPageSize = 10
)

// Config is the transport configuration, injected at construction. Credential
// material is set once here and never read from ambient state mid-request.
type Config struct {
	Token       string
	GraphQLURL  string
	FallbackURL string
	UserAgent   string
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.GraphQLURL == "" {
		c.GraphQLURL = defaultGraphQLURL
	}
	if c.FallbackURL == "" {
		c.FallbackURL = defaultFallbackURL
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Client issues single requests against GitHub's REST and GraphQL APIs plus
// the fallback contribution service. It never retries; retry and degradation
// policy belongs to the aggregator.
type Client struct {
	rest *gh.Client
	http *http.Client
	cfg  Config
	log  zerolog.Logger
}

// NewClient builds a client from an explicit config. An empty token is legal
// and only subjects the caller to anonymous rate limits.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	cfg = cfg.withDefaults()

	httpClient := &http.Client{Timeout: cfg.Timeout}
	rest := gh.NewClient(nil)
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		rest = gh.NewClient(oauth2.NewClient(context.Background(), ts))
	}

	return &Client{
		rest: rest,
		http: httpClient,
		cfg:  cfg,
		log:  log.With().Str("component", "github").Logger(),
	}
}

// HasToken reports whether a credential is configured. The GraphQL
// contribution path is skipped entirely without one.
func (c *Client) HasToken() bool {
	return c.cfg.Token != ""
}

// User fetches the primary profile. This is the load-bearing lookup: its
// failure is fatal to an aggregation.
func (c *Client) User(ctx context.Context, username string) (*gh.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	user, resp, err := c.rest.Users.Get(ctx, username)
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return user, nil
}

// Repositories fetches the first page of repositories sorted by most
// recently updated.
func (c *Client) Repositories(ctx context.Context, username string) ([]*gh.Repository, error) {
	opts := &gh.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: repoPageSize},
	}
	repos, resp, err := c.rest.Repositories.List(ctx, username, opts)
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return repos, nil
}

// Events fetches recent public events.
func (c *Client) Events(ctx context.Context, username string) ([]*gh.Event, error) {
	opts := &gh.ListOptions{PerPage: eventPageSize}
	events, resp, err := c.rest.Activity.ListEventsPerformedByUser(ctx, username, true, opts)
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return events, nil
}

// Organizations fetches the user's public organizations.
func (c *Client) Organizations(ctx context.Context, username string) ([]*gh.Organization, error) {
	orgs, resp, err := c.rest.Organizations.List(ctx, username, nil)
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Gists fetches recent public gists.
func (c *Client) Gists(ctx context.Context, username string) ([]*gh.Gist, error) {
	opts := &gh.GistListOptions{ListOptions: gh.ListOptions{PerPage: gistPageSize}}
	gists, resp, err := c.rest.Gists.List(ctx, username, opts)
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return gists, nil
}

// Starred fetches recently starred repositories.
func (c *Client) Starred(ctx context.Context, username string) ([]*gh.StarredRepository, error) {
	opts := &gh.ActivityListStarredOptions{ListOptions: gh.ListOptions{PerPage: starredPageSize}}
	starred, resp, err := c.rest.Activity.ListStarred(ctx, username, opts)
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return starred, nil
}

// Languages fetches the byte-count-per-language breakdown for one repository.
func (c *Client) Languages(ctx context.Context, owner, repo string) (map[string]int, error) {
	langs, resp, err := c.rest.Repositories.ListLanguages(ctx, owner, repo)
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return langs, nil
}

// RateLimit probes the current core quota.
func (c *Client) RateLimit(ctx context.Context) (*gh.RateLimits, error) {
	limits, resp, err := c.rest.RateLimit.Get(ctx)
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return limits, nil
}
