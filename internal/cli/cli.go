package cli

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/octoscope/octoscope/internal/utils"
)

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}} [options] <username> [compare-username]

Commands:
   {{range .VisibleCommands}}{{join .Names ", "}}{{"\t"}}{{.Usage}}
   {{end}}
Options:
   {{range .VisibleFlags}}{{.}}
   {{end}}`

// NewApp wires the CLI surface: a default lookup action plus the serve
// command for the dashboard API.
func NewApp(lookup, serve cli.ActionFunc) *cli.App {
	cli.AppHelpTemplate = helpTemplate

	return &cli.App{
		Name:    "octoscope",
		Usage:   "GitHub profile dashboard: contribution analytics, streaks and language stats",
		Version: "v" + utils.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "GitHub personal access token (enables the GraphQL contribution calendar)",
				EnvVars: []string{"GITHUB_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "range",
				Aliases: []string{"r"},
				Usage:   "Date range: year, last365, month, quarter, custom",
				Value:   "year",
			},
			&cli.IntFlag{
				Name:    "year",
				Aliases: []string{"y"},
				Usage:   "Calendar year for the year range (defaults to the current year)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text or json",
				Value:   "text",
			},
			&cli.IntFlag{
				Name:  "min",
				Usage: "Only count days with at least this many contributions",
			},
			&cli.IntFlag{
				Name:  "max",
				Usage: "Only count days with at most this many contributions",
			},
			&cli.StringFlag{
				Name:  "weekdays",
				Usage: "Only count these weekdays, comma-separated (e.g. mon,wed,fri)",
			},
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Keep refreshing contribution data until interrupted",
			},
			&cli.DurationFlag{
				Name:  "refresh-interval",
				Usage: "Interval between contribution refreshes",
				Value: 5 * time.Minute,
			},
			// no short alias: Version is set, so urfave/cli claims -v for
			// its version flag
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve the dashboard API over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8080",
					},
				},
				Action: serve,
			},
		},
		Action:    lookup,
		ArgsUsage: "<username> [compare-username]",
		Authors: []*cli.Author{
			{Name: "octoscope contributors"},
		},
	}
}
