package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	ucli "github.com/urfave/cli/v2"

	"github.com/octoscope/octoscope/internal/aggregate"
	"github.com/octoscope/octoscope/internal/analytics"
	"github.com/octoscope/octoscope/internal/cli"
	"github.com/octoscope/octoscope/internal/config"
	"github.com/octoscope/octoscope/internal/display"
	"github.com/octoscope/octoscope/internal/github"
	"github.com/octoscope/octoscope/internal/logging"
	"github.com/octoscope/octoscope/internal/models"
	"github.com/octoscope/octoscope/internal/server"
	"github.com/octoscope/octoscope/internal/viewmodel"
)

// fetchStages is the number of concurrent sub-fetches behind one snapshot,
// used to size the progress bar.
const fetchStages = 7

func newProgressBar(username string) *progressbar.ProgressBar {
	return progressbar.NewOptions(fetchStages,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(10),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]Fetching %s[reset]", username)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]#[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func runLookup(c *ucli.Context) error {
	cfg, err := config.ParseConfig(c)
	if err != nil || cfg == nil {
		return err
	}

	log := logging.New(cfg.Verbose)

	client := github.NewClient(github.Config{Token: cfg.Token}, log)
	agg := aggregate.New(client, log)
	session := aggregate.NewSession(agg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kind, err := analytics.ParseRangeKind(cfg.Range)
	if err != nil {
		return err
	}
	rng := analytics.Range{Kind: kind, Year: cfg.Year}

	filter := analytics.DefaultFilter()
	filter.MinCount = cfg.MinCount
	filter.MaxCount = cfg.MaxCount
	filter.Weekdays, err = analytics.ParseWeekdays(cfg.Weekdays)
	if err != nil {
		return err
	}

	bar := newProgressBar(cfg.Username)
	agg.Progress = func(string) { _ = bar.Add(1) }

	snap, err := session.Search(ctx, cfg.Username)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		color.Red("❌ %s", lookupMessage(err))
		return ucli.Exit("", 1)
	}

	var other *models.ProfileSnapshot
	if cfg.CompareWith != "" {
		agg.Progress = nil
		other, err = agg.FetchAllUserData(ctx, cfg.CompareWith)
		if err != nil {
			color.Red("❌ Comparison fetch failed: %v", err)
			other = nil
		}
	}

	if cfg.Format == "json" {
		return writeJSON(os.Stdout, snap, other, rng, filter)
	}

	render(snap, rng, filter)
	if other != nil {
		display.Comparison(viewmodel.Compare(snap, other, time.Now()))
	}
	display.RateLimit(ctx, client)

	if cfg.Refresh {
		color.Cyan("\nRefreshing every %s, press Ctrl-C to stop", cfg.RefreshInterval)
		handle := agg.AutoRefresh(ctx, cfg.Username, cfg.RefreshInterval, func(cs models.ContributionSnapshot) {
			fresh := *snap
			fresh.Contributions = cs
			fresh.FetchedAt = time.Now()
			render(&fresh, rng, filter)
		})
		<-ctx.Done()
		handle.Stop()
	}
	return nil
}

// lookupMessage prefers the typed error's human-readable line.
func lookupMessage(err error) string {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

// writeJSON emits the dashboard payload, plus the comparison when a second
// profile was fetched.
func writeJSON(w io.Writer, snap, other *models.ProfileSnapshot, rng analytics.Range, filter analytics.Filter) error {
	now := time.Now()
	out := struct {
		Dashboard  viewmodel.Dashboard   `json:"dashboard"`
		Comparison *viewmodel.Comparison `json:"comparison,omitempty"`
	}{
		Dashboard: viewmodel.BuildDashboard(snap, rng, filter, analytics.DefaultLevels(), now),
	}
	if other != nil {
		cmp := viewmodel.Compare(snap, other, now)
		out.Comparison = &cmp
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func render(snap *models.ProfileSnapshot, rng analytics.Range, filter analytics.Filter) {
	now := time.Now()

	display.Profile(viewmodel.BuildOverview(snap, now))

	if snap.Contributions.Empty() {
		display.NoData(snap.Contributions)
	} else {
		levels := analytics.DefaultLevels()
		display.Heatmap(analytics.BuildHeatmap(snap.Contributions, rng, filter, levels, now))
		display.Legend(levels)
	}

	display.Summary(
		analytics.ComputeContributionStats(snap.Contributions, rng, filter, now),
		analytics.ComputeStreaks(snap.Contributions, now),
	)
	display.Languages(viewmodel.LanguageBreakdown(snap.RepoLanguages))
}

func runServe(c *ucli.Context) error {
	cfg := config.ParseServeConfig(c)
	log := logging.NewJSON(os.Stderr, cfg.Verbose)

	client := github.NewClient(github.Config{Token: cfg.Token}, log)
	agg := aggregate.New(client, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Addr, agg, log).Run(ctx)
}

func main() {
	// Missing .env is fine, flags and the environment still apply.
	_ = godotenv.Load()

	app := cli.NewApp(runLookup, runServe)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var _ aggregate.Fetcher = (*github.Client)(nil)
