package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version = "0.1.0"
	Commit  = "dev"
	Date    = "unknown"
)

func Full() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

func Short() string {
	return Version
}
