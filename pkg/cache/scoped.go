package cache

// ScopedKeyer prefixes every key of an inner Keyer. The server uses it to
// keep API results apart from CLI results when both share one Redis.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, falling back to DefaultKeyer when it is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SolutionKey implements Keyer.
func (k *ScopedKeyer) SolutionKey(problemHash string, size int) string {
	return k.prefix + k.inner.SolutionKey(problemHash, size)
}

// BoundsKey implements Keyer.
func (k *ScopedKeyer) BoundsKey(problemHash string) string {
	return k.prefix + k.inner.BoundsKey(problemHash)
}
