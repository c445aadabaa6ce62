// Package version holds the build version of the dayfold server.
package version

import "fmt"

var (
	// Version is the semver of the current build, set via -ldflags at release time.
	Version = "0.3.0"
	// DevVersion is reported when running from source.
	DevVersion = "0.3.0-dev"
)

func GetCurrentVersion(mode string) string {
	if mode == "dev" {
		return DevVersion
	}
	return Version
}

func GetVersionWithCommit(commit string) string {
	if commit == "" {
		return Version
	}
	return fmt.Sprintf("%s-%s", Version, commit)
}
