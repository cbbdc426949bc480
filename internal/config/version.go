package config

import "fmt"

// Build metadata, overridden through SetBuildFlags by the release build
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags records the build metadata injected at link time.
// Empty values keep the defaults.
func SetBuildFlags(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		Commit = commit
	}
	if date != "" {
		Date = date
	}
}

// VersionString formats the build metadata for the version command
func VersionString() string {
	return fmt.Sprintf("ssv-deploy version %s (commit %s, built %s)", Version, Commit, Date)
}
