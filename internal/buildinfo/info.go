package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/cleared-dev/moneytrack/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String describes the running moneytrack build.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
