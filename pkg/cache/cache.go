// Package cache stores solved layouts so repeated requests for the same
// problem and size skip the optimizer.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the shared server deployment and [NullCache] when caching is off.
// Keys are built by a [Keyer] from a hash of the canonical problem encoding.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as hit == false with
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes. Solutions are deterministic for a given problem hash,
// so they can live long; bounds are cheap and kept shorter.
const (
	TTLSolution = 7 * 24 * time.Hour
	TTLBounds   = 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// SolutionKey addresses the layout of a problem at one size.
	SolutionKey(problemHash string, size int) string

	// BoundsKey addresses the min/max/preferred sizes of a problem.
	BoundsKey(problemHash string) string
}

// DefaultKeyer produces keys of the form "solution:<hash>" where the hash
// covers every input that affects the result.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey implements Keyer.
func (DefaultKeyer) SolutionKey(problemHash string, size int) string {
	return hashKey("solution", problemHash, size)
}

// BoundsKey implements Keyer.
func (DefaultKeyer) BoundsKey(problemHash string) string {
	return fmt.Sprintf("bounds:%s", problemHash)
}
