package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestNewApp_FlagParsing(t *testing.T) {
	var (
		verbose  bool
		username string
	)
	app := NewApp(func(c *cli.Context) error {
		verbose = c.Bool("verbose")
		username = c.Args().First()
		return nil
	}, nil)
	app.Writer = io.Discard

	require.NoError(t, app.Run([]string{"octoscope", "--verbose", "octocat"}))
	assert.True(t, verbose)
	assert.Equal(t, "octocat", username)
}

// Version is set on the app, so urfave/cli registers its own --version, -v
// flag; no other flag may claim the v alias or flag-set construction panics.
func TestNewApp_VersionFlagDoesNotCollide(t *testing.T) {
	app := NewApp(func(*cli.Context) error { return nil }, nil)
	app.Writer = io.Discard

	require.NotPanics(t, func() {
		assert.NoError(t, app.Run([]string{"octoscope", "--version"}))
	})
	require.NotPanics(t, func() {
		assert.NoError(t, app.Run([]string{"octoscope", "-v"}))
	})
}

func TestNewApp_ServeCommandRegistered(t *testing.T) {
	var addr string
	app := NewApp(nil, func(c *cli.Context) error {
		addr = c.String("addr")
		return nil
	})
	app.Writer = io.Discard

	require.NoError(t, app.Run([]string{"octoscope", "serve", "--addr", ":9090"}))
	assert.Equal(t, ":9090", addr)
}
