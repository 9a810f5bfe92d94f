package display

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	gh "github.com/google/go-github/v57/github"
)

// RateLimiter is the probe surface needed to report remaining quota.
type RateLimiter interface {
	RateLimit(ctx context.Context) (*gh.RateLimits, error)
}

// RateLimit prints the core quota after a run so users can see how much
// anonymous headroom remains.
func RateLimit(ctx context.Context, client RateLimiter) {
	limits, err := client.RateLimit(ctx)
	if err != nil {
		return
	}
	core := limits.GetCore()
	if core == nil {
		return
	}

	fmt.Println()
	fmt.Println(strings.Repeat("-", 50))
	percentage := float64(core.Remaining) / float64(core.Limit) * 100
	switch {
	case percentage > 50:
		color.Green("API rate limit: %d/%d remaining (%.1f%%)", core.Remaining, core.Limit, percentage)
	case percentage > 20:
		color.Yellow("API rate limit: %d/%d remaining (%.1f%%)", core.Remaining, core.Limit, percentage)
	default:
		color.Red("API rate limit: %d/%d remaining (%.1f%%), resets at %s",
			core.Remaining, core.Limit, percentage, core.Reset.Time.Format("15:04:05"))
	}
}
