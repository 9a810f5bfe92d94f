package utils

import (
	"runtime/debug"
	"strings"
)

// version is injected with -ldflags on release builds.
var version string

// GetVersion resolves the build version: the injected value first, the module
// build info otherwise. The leading "v" is stripped either way.
func GetVersion() string {
	v := version
	if v == "" {
		v = "unknown"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			v = info.Main.Version
		}
	}
	return strings.TrimPrefix(v, "v")
}
