// Package version holds the build information of gopond.
package version

import "fmt"

// Set at build time with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/alexiusacademia/gopond/internal/version.Version=0.2.0 \
//	  -X github.com/alexiusacademia/gopond/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"

	Author = "Alexius Academia"
	Year   = "2025"
)

// String returns the one-line version banner
func String() string {
	return fmt.Sprintf("gopond v%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
