// Package buildinfo exposes version metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/gridaxis/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/gridaxis/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/gridaxis/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/gridaxis
package buildinfo

import "fmt"

// Overridden via -X at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the JSON shape reported by the server's health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Current returns the stamped build information.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template is the cobra version template for the gridaxis binary.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
