// Package version provides build version information.
package version

import (
	"fmt"
	"runtime"
)

// These are set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the one-line version banner used by --version.
func Info() string {
	commitShort := Commit
	if len(commitShort) > 7 {
		commitShort = commitShort[:7]
	}
	return fmt.Sprintf("skilltrail %s (%s) built on %s with %s",
		Version, commitShort, BuildDate, runtime.Version())
}

// Short returns just the version number.
func Short() string {
	return Version
}
