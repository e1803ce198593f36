// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through small hook interfaces; the binary decides
// what to do with them. Nothing is wired by default: every hook starts as a
// no-op implementation, so the solver packages carry no dependency on a
// metrics backend.
//
// # Usage
//
// Register hooks at startup:
//
//	func main() {
//	    observability.SetSolveHooks(&promSolveHooks{})
//	    // ... run application
//	}
//
// Libraries call the registered hooks:
//
//	observability.Solve().OnSolveStart(ctx, p.Name, len(p.Elements))
//	// ... lay out ...
//	observability.Solve().OnSolveComplete(ctx, p.Name, strategy, len(sizes), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solve Hooks
// =============================================================================

// SolveHooks receives events from axis solves.
type SolveHooks interface {
	OnSolveStart(ctx context.Context, problem string, elements int)
	OnSolveComplete(ctx context.Context, problem, strategy string, sizes int, duration time.Duration, err error)

	// OnConstraintRelaxed reports a maximum on [first, last] that had to be
	// widened from declared to relaxed.
	OnConstraintRelaxed(ctx context.Context, problem string, first, last, declared, relaxed int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the solution cache.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, backend string)
	OnCacheMiss(ctx context.Context, backend string)
	OnCacheSet(ctx context.Context, backend string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path, requestID string)
	OnResponse(ctx context.Context, method, path string, status int, duration time.Duration)
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolveHooks is a no-op implementation of SolveHooks.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnSolveStart(context.Context, string, int) {}
func (NoopSolveHooks) OnSolveComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopSolveHooks) OnConstraintRelaxed(context.Context, string, int, int, int, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)               {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solveHooks SolveHooks = NoopSolveHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetSolveHooks registers solve hooks. Nil is ignored.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers server hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered server hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults. Tests use it to isolate
// registrations.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
