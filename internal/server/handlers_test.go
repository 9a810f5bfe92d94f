package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octoscope/octoscope/internal/aggregate"
	"github.com/octoscope/octoscope/internal/github"
	"github.com/octoscope/octoscope/internal/viewmodel"
)

type stubFetcher struct {
	userErr error
}

func (s *stubFetcher) HasToken() bool { return false }

func (s *stubFetcher) User(_ context.Context, username string) (*gh.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return &gh.User{Login: gh.String(username), Followers: gh.Int(10)}, nil
}

func (s *stubFetcher) Repositories(context.Context, string) ([]*gh.Repository, error) {
	return []*gh.Repository{{Name: gh.String("demo"), StargazersCount: gh.Int(3)}}, nil
}

func (s *stubFetcher) Events(context.Context, string) ([]*gh.Event, error) { return nil, nil }

func (s *stubFetcher) Organizations(context.Context, string) ([]*gh.Organization, error) {
	return nil, nil
}

func (s *stubFetcher) Gists(context.Context, string) ([]*gh.Gist, error) { return nil, nil }

func (s *stubFetcher) Starred(context.Context, string) ([]*gh.StarredRepository, error) {
	return nil, nil
}

func (s *stubFetcher) Languages(context.Context, string, string) (map[string]int, error) {
	return map[string]int{"Go": 100}, nil
}

func (s *stubFetcher) RateLimit(context.Context) (*gh.RateLimits, error) {
	return nil, &github.APIError{Kind: github.KindNetwork}
}

func (s *stubFetcher) ContributionCalendar(context.Context, string) (*github.Calendar, error) {
	return nil, &github.APIError{Kind: github.KindUnauthorized}
}

func (s *stubFetcher) FallbackContributions(context.Context, string) (*github.FallbackResponse, error) {
	// handlers evaluate ranges against the wall clock, so the stub data
	// tracks it too
	today := time.Now().UTC()
	return &github.FallbackResponse{
		Contributions: []github.FallbackDay{
			{Date: today.AddDate(0, 0, -1).Format("2006-01-02"), Count: 2},
			{Date: today.Format("2006-01-02"), Count: 5},
		},
		Total: map[string]int{today.Format("2006"): 7},
	}, nil
}

func testServer(t *testing.T, f aggregate.Fetcher) *Server {
	t.Helper()
	return New(":0", aggregate.New(f, zerolog.Nop()), zerolog.Nop())
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, testServer(t, &stubFetcher{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleDashboard(t *testing.T) {
	rec := get(t, testServer(t, &stubFetcher{}), "/api/users/octocat")
	require.Equal(t, http.StatusOK, rec.Code)

	var dash viewmodel.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))

	assert.Equal(t, "octocat", dash.Overview.Login)
	assert.Equal(t, "fallback", dash.Source)
	assert.NotEmpty(t, dash.Heatmap)
	assert.NotEmpty(t, dash.Languages)
}

func TestHandleDashboard_NotFound(t *testing.T) {
	f := &stubFetcher{userErr: &github.APIError{Kind: github.KindNotFound}}
	rec := get(t, testServer(t, f), "/api/users/ghost")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestHandleDashboard_RateLimited(t *testing.T) {
	f := &stubFetcher{userErr: &github.APIError{Kind: github.KindRateLimited}}
	rec := get(t, testServer(t, f), "/api/users/octocat")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestHandleDashboard_UpstreamMapsToBadGateway(t *testing.T) {
	f := &stubFetcher{userErr: &github.APIError{Kind: github.KindUpstream, StatusCode: 500}}
	rec := get(t, testServer(t, f), "/api/users/octocat")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleStats_InvalidRange(t *testing.T) {
	rec := get(t, testServer(t, &stubFetcher{}), "/api/users/octocat/stats?range=fortnight")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStats(t *testing.T) {
	rec := get(t, testServer(t, &stubFetcher{}), "/api/users/octocat/stats?range=last365&min=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		Total      int `json:"total"`
		ActiveDays int `json:"activeDays"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.ActiveDays)
}

func TestHandleStats_WeekdayFilter(t *testing.T) {
	// the stub reports activity today and yesterday; restricting to today's
	// weekday keeps only today's count
	todayName := strings.ToLower(time.Now().UTC().Weekday().String()[:3])
	rec := get(t, testServer(t, &stubFetcher{}), "/api/users/octocat/stats?range=last365&weekdays="+todayName)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 5, stats.Total)
}

func TestHandleStats_InvalidWeekdays(t *testing.T) {
	rec := get(t, testServer(t, &stubFetcher{}), "/api/users/octocat/stats?weekdays=someday")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStreaks(t *testing.T) {
	rec := get(t, testServer(t, &stubFetcher{}), "/api/users/octocat/streaks")
	require.Equal(t, http.StatusOK, rec.Code)

	var state struct {
		TotalContributions int `json:"totalContributions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 7, state.TotalContributions)
}

func TestHandleHeatmap_LevelStrategies(t *testing.T) {
	for _, strategy := range []string{"", "percentile", "quartile"} {
		rec := get(t, testServer(t, &stubFetcher{}), "/api/users/octocat/heatmap?levels="+strategy)
		require.Equal(t, http.StatusOK, rec.Code, "strategy %q", strategy)

		var payload struct {
			Weeks  []any `json:"weeks"`
			Levels []any `json:"levels"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.NotEmpty(t, payload.Levels, "strategy %q", strategy)
	}
}

func TestHandleCompare(t *testing.T) {
	rec := get(t, testServer(t, &stubFetcher{}), "/api/compare?a=alice&b=bob")
	require.Equal(t, http.StatusOK, rec.Code)

	var cmp viewmodel.Comparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmp))
	assert.Equal(t, "alice", cmp.UserA)
	assert.Equal(t, "bob", cmp.UserB)
	assert.Len(t, cmp.Metrics, 7)
}

func TestHandleCompare_MissingParams(t *testing.T) {
	rec := get(t, testServer(t, &stubFetcher{}), "/api/compare?a=alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t, &stubFetcher{})
	get(t, s, "/healthz")

	rec := get(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "octoscope_requests_total")
}
