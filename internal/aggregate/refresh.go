package aggregate

import (
	"context"
	"time"

	"github.com/octoscope/octoscope/internal/contrib"
	"github.com/octoscope/octoscope/internal/models"
)

// RefreshHandle owns one auto-refresh loop. Stop is deterministic: it
// returns only after the loop has exited, so no background task outlives the
// owning view.
type RefreshHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop terminates the refresh loop and waits for it to drain.
func (h *RefreshHandle) Stop() {
	h.cancel()
	<-h.done
}

// AutoRefresh periodically re-fetches contribution data and hands each fresh
// snapshot to onUpdate. The handle must be stopped when the owning view is
// torn down.
func (a *Aggregator) AutoRefresh(ctx context.Context, username string, interval time.Duration, onUpdate func(models.ContributionSnapshot)) *RefreshHandle {
	ctx, cancel := context.WithCancel(ctx)
	h := &RefreshHandle{cancel: cancel, done: make(chan struct{})}

	ticker := time.NewTicker(interval)
	go func() {
		defer close(h.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := contrib.Fetch(ctx, a.fetcher, username, a.now(), a.log)
				if ctx.Err() != nil {
					return
				}
				onUpdate(snap)
			}
		}
	}()
	return h
}
