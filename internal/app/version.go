package app

import "fmt"

// Build metadata, injected by the release build:
//
//	go build -ldflags "-X github.com/heartmarshall/household-backend/internal/app.Version=1.4.0 \
//	  -X github.com/heartmarshall/household-backend/internal/app.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the version string reported by /health and the startup log.
func BuildVersion() string {
	if Commit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s+%s (built %s)", Version, Commit, BuildTime)
}
