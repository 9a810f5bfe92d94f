package aggregate

import (
	"context"
	"errors"
	"sync"

	"github.com/octoscope/octoscope/internal/models"
)

// ErrSuperseded reports that a newer search started while this one was in
// flight; its result was discarded, never merged.
var ErrSuperseded = errors.New("search superseded by a newer one")

// Session serializes snapshot ownership across searches: last search wins,
// stale in-flight completions are ignored so a snapshot never interleaves
// fields from two usernames.
type Session struct {
	agg *Aggregator

	mu      sync.Mutex
	seq     uint64
	current *models.ProfileSnapshot
}

func NewSession(agg *Aggregator) *Session {
	return &Session{agg: agg}
}

// Search runs an aggregation tagged with a fresh search id. If a newer
// search starts before this one resolves, the result is dropped and
// ErrSuperseded is returned.
func (s *Session) Search(ctx context.Context, username string) (*models.ProfileSnapshot, error) {
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.mu.Unlock()

	snap, err := s.agg.FetchAllUserData(ctx, username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.seq {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	s.current = snap
	return snap, nil
}

// Current returns the snapshot of the most recent completed search, nil when
// none exists. The returned snapshot is immutable; refreshes replace it
// wholesale.
func (s *Session) Current() *models.ProfileSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reset discards the current snapshot and invalidates any in-flight search.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.current = nil
}
