// Package pipeline runs axis problems end to end: build the layouter, report
// its bounds and lay it out at every requested size, with caching.
//
// The CLI and the HTTP server share one [Runner] implementation so both
// report the same errors, hit the same cache entries and emit the same
// observability events.
//
// # Usage
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	res, err := runner.Solve(ctx, p, pipeline.Options{Sizes: []int{320, 640}})
//	if err != nil {
//	    return err
//	}
//	for _, sol := range res.Solutions {
//	    fmt.Println(sol.Size, sol.Elements)
//	}
package pipeline

import (
	"time"

	"github.com/matzehuels/gridaxis/pkg/problem"
)

// Options controls a single Solve call.
type Options struct {
	// Sizes overrides the problem's own sizes. When both are empty the
	// preferred size is used.
	Sizes []int

	// Refresh bypasses cached solutions (fresh ones are still stored).
	Refresh bool
}

// Result is the outcome of Runner.Solve.
type Result struct {
	Problem   string             `json:"problem,omitempty" toml:"problem,omitempty"`
	Hash      string             `json:"hash" toml:"hash"`
	Bounds    problem.Bounds     `json:"bounds" toml:"bounds"`
	Solutions []problem.Solution `json:"solutions" toml:"solutions"`
	Stats     Stats              `json:"stats" toml:"stats"`
}

// Stats records how a result was obtained.
type Stats struct {
	Duration  time.Duration `json:"duration_ns" toml:"duration_ns"`
	CacheHits int           `json:"cache_hits" toml:"cache_hits"`
}

func (o Options) sizes(p *problem.Problem, b problem.Bounds) []int {
	switch {
	case len(o.Sizes) > 0:
		return o.Sizes
	case len(p.Sizes) > 0:
		return p.Sizes
	default:
		return []int{b.Preferred}
	}
}
