// Package version holds build information, set with -ldflags at release time
// and read from the Go build info otherwise.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "0.0.0-dev"
	Revision  = "unknown"
	BuildDate = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "0.0.0-dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Revision == "unknown" {
				Revision = s.Value
			}
		case "vcs.time":
			if BuildDate == "unknown" {
				BuildDate = s.Value
			}
		}
	}
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("%s (revision: %s, built: %s, %s)", Version, Revision, BuildDate, runtime.Version())
}
