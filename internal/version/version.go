package version

import "fmt"

// Version is the specref release, set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/specref/internal/version.Version=v0.3.0".
var Version = "dev"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `specref --version`.
func String() string {
	if GitCommit == "unknown" {
		return fmt.Sprintf("specref %s", Version)
	}
	return fmt.Sprintf("specref %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
