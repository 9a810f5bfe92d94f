package config

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/octoscope/octoscope/internal/analytics"
)

// AppConfig carries everything the CLI run needs, parsed once up front.
// Credential material is set here and injected downstream; nothing reads it
// from ambient state mid-request.
type AppConfig struct {
	Username    string
	CompareWith string
	Token       string

	Range    string
	Year     int
	MinCount int
	MaxCount int
	Weekdays string
	Format   string

	Refresh         bool
	RefreshInterval time.Duration
	Verbose         bool
}

// ParseConfig builds the lookup configuration from CLI flags and arguments.
func ParseConfig(c *cli.Context) (*AppConfig, error) {
	if c.NArg() == 0 {
		return nil, cli.ShowAppHelp(c)
	}
	if c.NArg() > 2 {
		return nil, fmt.Errorf("expected at most two usernames, got %d arguments", c.NArg())
	}

	cfg := &AppConfig{
		Username:        c.Args().Get(0),
		CompareWith:     c.Args().Get(1),
		Token:           c.String("token"),
		Range:           c.String("range"),
		Year:            c.Int("year"),
		MinCount:        c.Int("min"),
		MaxCount:        analytics.NoMax,
		Weekdays:        c.String("weekdays"),
		Format:          c.String("format"),
		Refresh:         c.Bool("refresh"),
		RefreshInterval: c.Duration("refresh-interval"),
		Verbose:         c.Bool("verbose"),
	}
	if c.IsSet("max") {
		cfg.MaxCount = c.Int("max")
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 5 * time.Minute
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		return nil, fmt.Errorf("unknown format %q, expected text or json", cfg.Format)
	}
	return cfg, nil
}

// ServeConfig carries the HTTP server settings.
type ServeConfig struct {
	Addr    string
	Token   string
	Verbose bool
}

// ParseServeConfig builds the server configuration from CLI flags.
func ParseServeConfig(c *cli.Context) *ServeConfig {
	addr := c.String("addr")
	if addr == "" {
		addr = ":8080"
	}
	return &ServeConfig{
		Addr:    addr,
		Token:   c.String("token"),
		Verbose: c.Bool("verbose"),
	}
}
