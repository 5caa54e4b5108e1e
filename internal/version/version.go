// Package version holds build metadata stamped at link time, e.g.
//
//	go build -ldflags "-X ecoatlas/internal/version.Version=v1.2.0"
package version

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the git commit hash
	Commit = "dev"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// Build is the metadata reported by the API index.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// Current returns the stamped build metadata.
func Current() Build {
	return Build{Version: Version, Commit: Commit, BuildTime: BuildTime}
}

// IsRelease reports whether the binary was stamped with a release version.
func (b Build) IsRelease() bool {
	return b.Version != "" && b.Version != "dev"
}

func (b Build) String() string {
	if !b.IsRelease() {
		return fmt.Sprintf("dev (%s)", b.Commit)
	}
	return fmt.Sprintf("%s (%s, built %s)", b.Version, b.Commit, b.BuildTime)
}
