package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/octoscope/octoscope/internal/analytics"
	"github.com/octoscope/octoscope/internal/github"
	"github.com/octoscope/octoscope/internal/models"
	"github.com/octoscope/octoscope/internal/viewmodel"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.fetch(w, r)
	if !ok {
		return
	}
	rng, filter, err := parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	dash := viewmodel.BuildDashboard(snap, rng, filter, analytics.DefaultLevels(), time.Now())
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.fetch(w, r)
	if !ok {
		return
	}
	rng, filter, err := parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	now := time.Now()
	days := analytics.WorkingSet(snap.Contributions, rng, filter, now)
	levels := levelsFor(r.URL.Query().Get("levels"), days)
	grid := analytics.BuildHeatmap(snap.Contributions, rng, filter, levels, now)

	writeJSON(w, http.StatusOK, map[string]any{
		"weeks":  grid,
		"levels": levels,
	})
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.fetch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.ComputeStreaks(snap.Contributions, time.Now()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.fetch(w, r)
	if !ok {
		return
	}
	rng, filter, err := parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.ComputeContributionStats(snap.Contributions, rng, filter, time.Now()))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	userA := r.URL.Query().Get("a")
	userB := r.URL.Query().Get("b")
	if userA == "" || userB == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "both a and b query parameters are required"})
		return
	}

	snapA, err := s.agg.FetchAllUserData(r.Context(), userA)
	if err != nil {
		s.writeError(w, err)
		return
	}
	snapB, err := s.agg.FetchAllUserData(r.Context(), userB)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, viewmodel.Compare(snapA, snapB, time.Now()))
}

// fetch runs the aggregation for the path username, writing the error
// response itself when the primary lookup fails.
func (s *Server) fetch(w http.ResponseWriter, r *http.Request) (*models.ProfileSnapshot, bool) {
	username := chi.URLParam(r, "username")
	snap, err := s.agg.FetchAllUserData(r.Context(), username)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return snap, true
}

// writeError maps the transport error taxonomy onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	message := "GitHub request failed"

	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.UserMessage()
		switch apiErr.Kind {
		case github.KindNotFound:
			status = http.StatusNotFound
		case github.KindRateLimited:
			status = http.StatusTooManyRequests
		}
	} else {
		message = err.Error()
		status = http.StatusBadRequest
	}

	s.log.Warn().Err(err).Int("status", status).Msg("request failed")
	writeJSON(w, status, errorResponse{Error: message})
}

// parseQuery decodes the range and filter query parameters.
func parseQuery(r *http.Request) (analytics.Range, analytics.Filter, error) {
	q := r.URL.Query()

	kind, err := analytics.ParseRangeKind(q.Get("range"))
	if err != nil {
		return analytics.Range{}, analytics.Filter{}, err
	}

	rng := analytics.Range{Kind: kind}
	if year := q.Get("year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return analytics.Range{}, analytics.Filter{}, err
		}
		rng.Year = y
	}
	if start := q.Get("start"); start != "" {
		t, err := models.ParseDay(start)
		if err != nil {
			return analytics.Range{}, analytics.Filter{}, err
		}
		rng.Start = t
	}
	if end := q.Get("end"); end != "" {
		t, err := models.ParseDay(end)
		if err != nil {
			return analytics.Range{}, analytics.Filter{}, err
		}
		rng.End = t
	}

	filter := analytics.DefaultFilter()
	if min := q.Get("min"); min != "" {
		n, err := strconv.Atoi(min)
		if err != nil {
			return analytics.Range{}, analytics.Filter{}, err
		}
		filter.MinCount = n
	}
	if max := q.Get("max"); max != "" {
		n, err := strconv.Atoi(max)
		if err != nil {
			return analytics.Range{}, analytics.Filter{}, err
		}
		filter.MaxCount = n
	}
	if wd := q.Get("weekdays"); wd != "" {
		set, err := analytics.ParseWeekdays(wd)
		if err != nil {
			return analytics.Range{}, analytics.Filter{}, err
		}
		filter.Weekdays = set
	}

	return rng, filter, nil
}

// levelsFor picks the bucketing strategy requested for a heatmap.
func levelsFor(strategy string, days []models.ContributionDay) []analytics.Level {
	switch strategy {
	case "percentile":
		return analytics.PercentileLevels(days)
	case "quartile":
		return analytics.QuartileLevels(days)
	default:
		return analytics.DefaultLevels()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
