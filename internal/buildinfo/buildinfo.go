package buildinfo

import "fmt"

// Set via -ldflags "-X .../internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("skill-manager %s (commit=%s, date=%s)", Version, Commit, Date)
}
