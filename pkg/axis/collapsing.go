package axis

import (
	"maps"
	"slices"
)

// Strategy names the layouter a Collapsing axis delegates to.
type Strategy string

const (
	StrategyEmpty   Strategy = "empty"
	StrategyTrivial Strategy = "trivial"
	StrategyUniform Strategy = "uniform"
	StrategyComplex Strategy = "complex"
)

// constraint is one AddConstraints call as received.
type constraint struct {
	element, length int
	min, max        int
	preferred       int
}

// Collapsing removes degenerate elements before laying out an axis.
//
// An element is degenerate when no constraint with a minimum or a maximum
// covers it. The remaining elements are renumbered densely and handed to a
// [Trivial], [Uniform] or [Complex] layouter depending on what the
// constraints need. Degenerate elements get size 0, are placed where the
// next live element starts, and take no spacing.
type Collapsing struct {
	spacing     int
	n           int
	constraints []constraint
	weights     map[int]float64

	built    bool
	inner    Layouter
	strategy Strategy
	live     []int // original index of each inner element
	slot     []int // inner index of each original element, or -1
	scratch  *Result
}

// NewCollapsing returns an empty layouter with spacing between the live
// elements.
func NewCollapsing(spacing int) *Collapsing {
	return &Collapsing{
		spacing: clamp(spacing, 0, MaxBound),
		weights: make(map[int]float64),
	}
}

// AddConstraints records the constraint and discards the underlying layouter.
func (c *Collapsing) AddConstraints(element, length, lo, hi, preferred int) {
	if element < 0 || length < 1 {
		return
	}
	c.constraints = append(c.constraints, constraint{element, length, lo, hi, preferred})
	c.n = max(c.n, element+length)
	c.built = false
}

// SetWeight sets the share of slack for element, forwarding it to the
// underlying layouter when element is live.
func (c *Collapsing) SetWeight(element int, weight float64) {
	if element < 0 {
		return
	}
	weight = max(weight, 0)
	c.weights[element] = weight
	if element >= c.n {
		c.n = element + 1
		c.built = false
		return
	}
	if c.built && c.inner != nil && c.slot[element] >= 0 {
		c.inner.SetWeight(c.slot[element], weight)
	}
}

// ElementCount returns the number of elements referenced so far, live or not.
func (c *Collapsing) ElementCount() int { return c.n }

// Strategy returns the kind of layouter the live elements were given.
func (c *Collapsing) Strategy() Strategy {
	c.build()
	return c.strategy
}

// Live returns the original indices of the elements that are laid out.
func (c *Collapsing) Live() []int {
	c.build()
	return slices.Clone(c.live)
}

// Relaxations returns the maxima widened by the underlying layouter, in
// original element indices.
func (c *Collapsing) Relaxations() []Relaxation {
	c.build()
	cx, ok := c.inner.(*Complex)
	if !ok {
		return nil
	}
	rs := cx.Relaxations()
	for i := range rs {
		rs[i].First = c.live[rs[i].First]
		rs[i].Last = c.live[rs[i].Last]
	}
	return rs
}

// MinSize returns the minimum of the live elements, or 0 when there are none.
func (c *Collapsing) MinSize() int {
	if c.build(); c.inner == nil {
		return 0
	}
	return c.inner.MinSize()
}

// MaxSize returns the maximum of the live elements, or 0 when there are none.
func (c *Collapsing) MaxSize() int {
	if c.build(); c.inner == nil {
		return 0
	}
	return c.inner.MaxSize()
}

// PreferredSize returns the preferred size of the live elements.
func (c *Collapsing) PreferredSize() int {
	if c.build(); c.inner == nil {
		return 0
	}
	return c.inner.PreferredSize()
}

// Validate builds the underlying layouter and validates it.
func (c *Collapsing) Validate() error {
	if c.build(); c.inner == nil {
		return nil
	}
	return c.inner.Validate()
}

// CreateLayoutInfo returns an empty result.
func (c *Collapsing) CreateLayoutInfo() *Result { return &Result{} }

// Layout lays out the live elements and places the degenerate ones between
// them.
func (c *Collapsing) Layout(info *Result, size int) error {
	if info == nil {
		return ErrNilResult
	}
	c.build()
	info.resize(c.n)
	if c.inner == nil {
		return nil
	}
	if err := c.inner.Layout(c.scratch, size); err != nil {
		return err
	}

	end := c.scratch.Total()
	for i := c.n - 1; i >= 0; i-- {
		if s := c.slot[i]; s >= 0 {
			info.locations[i] = c.scratch.Location(s)
			info.sizes[i] = c.scratch.Size(s)
			end = info.locations[i]
			continue
		}
		info.locations[i] = end
	}
	return nil
}

// CloneLayouter returns an unbuilt copy with the same constraints and
// weights.
func (c *Collapsing) CloneLayouter() Layouter {
	return &Collapsing{
		spacing:     c.spacing,
		n:           c.n,
		constraints: slices.Clone(c.constraints),
		weights:     maps.Clone(c.weights),
	}
}

// build classifies the elements and creates the underlying layouter.
func (c *Collapsing) build() {
	if c.built {
		return
	}
	c.built = true
	c.inner = nil
	c.scratch = &Result{}

	isLive := make([]bool, c.n)
	for _, k := range c.constraints {
		if k.min == SizeUnset && k.max == SizeUnset {
			continue
		}
		for i := k.element; i < k.element+k.length; i++ {
			isLive[i] = true
		}
	}
	c.live = make([]int, 0, c.n)
	c.slot = make([]int, c.n)
	for i, ok := range isLive {
		c.slot[i] = -1
		if ok {
			c.slot[i] = len(c.live)
			c.live = append(c.live, i)
		}
	}

	type mapped struct {
		constraint
		first, last int
	}
	var ms []mapped
	spansMany := false
	for _, k := range c.constraints {
		first, last, ok := c.liveSpan(k.element, k.element+k.length-1)
		if !ok {
			continue
		}
		ms = append(ms, mapped{k, first, last})
		if last > first && (k.min != SizeUnset || k.max != SizeUnset) {
			spansMany = true
		}
	}

	switch {
	case len(c.live) == 0:
		c.strategy = StrategyEmpty
		return
	case len(c.live) == 1:
		c.strategy, c.inner = StrategyTrivial, NewTrivial()
	case spansMany:
		c.strategy, c.inner = StrategyComplex, NewComplex(c.spacing)
	default:
		c.strategy, c.inner = StrategyUniform, NewUniform(c.spacing)
	}

	for _, m := range ms {
		c.inner.AddConstraints(m.first, m.last-m.first+1, m.min, m.max, m.preferred)
	}
	for i, s := range c.slot {
		if w, ok := c.weights[i]; ok && s >= 0 {
			c.inner.SetWeight(s, w)
		}
	}
}

// liveSpan maps the original range [first, last] to the inner indices of the
// live elements it covers.
func (c *Collapsing) liveSpan(first, last int) (int, int, bool) {
	lo, hi := -1, -1
	for i := first; i <= last; i++ {
		if s := c.slot[i]; s >= 0 {
			if lo < 0 {
				lo = s
			}
			hi = s
		}
	}
	return lo, hi, lo >= 0
}
