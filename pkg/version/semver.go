package version

import (
	"github.com/Masterminds/semver/v3"
)

var (
	parsedVersion  *semver.Version
	parseAttempted bool
	parsedFrom     string
)

// resetParsedVersion clears the cached parsed version for testing.
func resetParsedVersion() {
	parsedVersion = nil
	parseAttempted = false
	parsedFrom = ""
}

// Parsed returns the parsed semantic version, or nil if unparseable.
// The result is cached until Version changes.
func Parsed() *semver.Version {
	if parseAttempted && parsedFrom == Version {
		return parsedVersion
	}
	parseAttempted = true
	parsedFrom = Version
	parsedVersion = nil

	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	parsedVersion = v
	return parsedVersion
}

// IsPrerelease returns true if the current version is a pre-release.
// Returns false for unparseable versions (like "dev").
func IsPrerelease() bool {
	v := Parsed()
	if v == nil {
		return false
	}
	return v.Prerelease() != ""
}

// IsDevBuild returns true if this is a development build (no valid semver).
func IsDevBuild() bool {
	return Parsed() == nil
}

// Compare compares the current version to another version string.
// Returns: -1 if current < other, 0 if equal, 1 if current > other.
// Returns 0 if either version is unparseable.
func Compare(other string) int {
	current := Parsed()
	if current == nil {
		return 0
	}

	otherV, err := semver.NewVersion(other)
	if err != nil {
		return 0
	}

	return current.Compare(otherV)
}

// IsOlderThan reports whether the running binary is older than other.
// A ledger written by a newer release may carry state this binary does not
// understand. Dev builds and unparseable versions are never older.
func IsOlderThan(other string) bool {
	return Compare(other) < 0
}
