// Package version holds the release identifiers of the numerik binaries.
package version

import "fmt"

// Version constants
const (
	// Engine is the version of the calculation packages
	Engine = "0.2.0"
	// API is the version prefix of the HTTP routes
	API = "v1"
)

// Build metadata, set with -ldflags "-X github.com/msto63/numerik/pkg/core/version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// String returns the version line printed by the CLI
func String() string {
	return fmt.Sprintf("numerik %s (api %s, commit %s, built %s)", Engine, API, Commit, BuildDate)
}
