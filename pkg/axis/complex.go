package axis

import (
	"cmp"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/gridaxis/pkg/optimizer"
)

// Relaxation records a maximum that was widened to keep the model feasible.
// Values include the spacing inside the span, like the declared constraint.
type Relaxation struct {
	Span
	Declared int
	Relaxed  int
}

// rangeBounds is a merged multi-element constraint.
type rangeBounds struct {
	min, max  int
	preferred int
}

// Complex lays out an axis with constraints spanning several elements.
//
// Constraints are collected into a range table, propagated, and registered
// with an [optimizer.Optimizer]: minima first, then maxima from the shortest
// span to the longest. A maximum the optimizer cannot accept is widened to
// the smallest value it can, so when constraints compete the longer span is
// the one that gives way. Layout asks the optimizer for the integer sizes
// closest to the weighted distribution of the total.
type Complex struct {
	spacing int
	elems   elements
	ranges  map[Span]rangeBounds

	state *complexState
	cache layoutCache
}

// complexState is everything derived from the constraints by validate.
type complexState struct {
	err       error
	opt       *optimizer.Optimizer
	min, max  int // element sums, spacing excluded
	elemMin   []int
	elemMax   []int
	relaxed   []Relaxation
	conflicts []Span
}

// NewComplex returns an empty layouter with spacing between elements.
func NewComplex(spacing int) *Complex {
	return &Complex{
		spacing: clamp(spacing, 0, MaxBound),
		ranges:  make(map[Span]rangeBounds),
	}
}

// AddConstraints merges the bounds into the element or range and discards the
// resolved model.
func (c *Complex) AddConstraints(element, length, lo, hi, preferred int) {
	if element < 0 || length < 1 {
		return
	}
	c.elems.ensure(element + length)
	if length == 1 {
		c.elems[element].constrain(lo, hi, preferred)
	} else {
		span := Span{element, element + length - 1}
		b, ok := c.ranges[span]
		if !ok {
			b = rangeBounds{min: SizeUnset, max: SizeUnset, preferred: SizeUnset}
		}
		c.ranges[span] = mergeRange(b, lo, hi, preferred)
	}
	c.invalidate()
}

// mergeRange merges a constraint into b. SizeUnset means the bound is open;
// other values are capped at MaxBound.
func mergeRange(b rangeBounds, lo, hi, preferred int) rangeBounds {
	lo, hi, preferred = clampBound(lo), clampBound(hi), clampBound(preferred)
	if lo != SizeUnset {
		b.min = max(b.min, lo)
	}
	if hi != SizeUnset && (b.max == SizeUnset || hi < b.max) {
		b.max = hi
	}
	if b.max != SizeUnset && b.min != SizeUnset {
		b.max = max(b.max, b.min)
	}
	if preferred != SizeUnset {
		b.preferred = max(b.preferred, preferred)
	}
	return b
}

// SetWeight sets the share of slack for element.
func (c *Complex) SetWeight(element int, weight float64) {
	if element >= len(c.elems) {
		// New elements change the model, not just the distribution.
		c.invalidate()
	}
	c.elems.setWeight(element, weight)
	c.cache.invalidate()
}

// ElementCount returns the number of elements referenced so far.
func (c *Complex) ElementCount() int { return len(c.elems) }

func (c *Complex) invalidate() {
	c.state = nil
	c.cache.invalidate()
}

// Validate resolves the constraints and returns ErrModeling when the minimums
// contradict each other.
func (c *Complex) Validate() error {
	return c.validate().err
}

// MinSize returns the smallest total the resolved constraints allow, or 0 on
// a modeling error.
func (c *Complex) MinSize() int {
	st := c.validate()
	if st.err != nil {
		return 0
	}
	return withSpacing(st.min, len(c.elems), c.spacing)
}

// MaxSize returns the largest total the resolved constraints allow, or 0 on a
// modeling error.
func (c *Complex) MaxSize() int {
	st := c.validate()
	if st.err != nil {
		return 0
	}
	return withSpacing(st.max, len(c.elems), c.spacing)
}

// PreferredSize sums the preferred sizes of the elements, each clamped into
// the bounds the constraints leave it. Preferred sizes of ranges are not
// used.
func (c *Complex) PreferredSize() int {
	st := c.validate()
	if st.err != nil {
		return 0
	}
	sum := 0
	for i, e := range c.elems {
		sum = satAdd(sum, clamp(e.preferred, st.elemMin[i], st.elemMax[i]))
	}
	return clamp(withSpacing(sum, len(c.elems), c.spacing), c.MinSize(), c.MaxSize())
}

// Relaxations returns the maxima widened during validation.
func (c *Complex) Relaxations() []Relaxation {
	return slices.Clone(c.validate().relaxed)
}

// Conflicts returns the spans whose declared bounds contradict each other
// once propagated through the range table. Every conflict is resolved by a
// relaxation.
func (c *Complex) Conflicts() []Span {
	return slices.Clone(c.validate().conflicts)
}

// CreateLayoutInfo returns an empty result.
func (c *Complex) CreateLayoutInfo() *Result { return &Result{} }

// Layout solves for the sizes closest to the weighted distribution of size.
func (c *Complex) Layout(info *Result, size int) error {
	if info == nil {
		return ErrNilResult
	}
	st := c.validate()
	if st.err != nil {
		return st.err
	}
	n := len(c.elems)
	size = clamp(size, c.MinSize(), c.MaxSize())
	if sizes, ok := c.cache.lookup(size); ok {
		info.place(sizes, c.spacing)
		return nil
	}
	if n == 0 {
		info.resize(0)
		return nil
	}

	total := size - spacingTotal(n, c.spacing)
	desired := distribute(total, st.elemMin, st.elemMax, c.elems.weights())

	start, err := st.opt.FeasibleSolution(float64(total))
	if err != nil {
		return fmt.Errorf("axis: starting point for %d: %w", size, err)
	}
	x, err := st.opt.Solve(start, toFloats(desired), float64(total))
	if err != nil {
		return fmt.Errorf("axis: solve for %d: %w", size, err)
	}
	prefix, err := st.opt.Project(x, total)
	if err != nil {
		return fmt.Errorf("axis: project for %d: %w", size, err)
	}
	sizes := optimizer.SizesFromPrefix(prefix)

	c.cache.store(size, sizes)
	info.place(sizes, c.spacing)
	return nil
}

// CloneLayouter returns an unresolved copy with the same constraints.
func (c *Complex) CloneLayouter() Layouter {
	return &Complex{
		spacing: c.spacing,
		elems:   c.elems.clone(),
		ranges:  maps.Clone(c.ranges),
	}
}

// validate resolves the constraints once and caches the outcome until the
// next AddConstraints.
func (c *Complex) validate() *complexState {
	if c.state != nil {
		return c.state
	}
	c.state = c.resolve()
	return c.state
}

// spanBound is a constraint in element units (inner spacing removed).
type spanBound struct {
	span  Span
	value int
}

func (c *Complex) resolve() *complexState {
	n := len(c.elems)
	st := &complexState{opt: optimizer.New(n)}

	store := newRangeStore(n)
	for i, e := range c.elems {
		hi := SizeUnset
		if e.max < SizeUnlimited {
			hi = e.max
		}
		store.add(i, i, e.min, hi)
	}
	for _, span := range c.sortedSpans() {
		b := c.ranges[span]
		store.add(span.First, span.Last, c.inner(span, b.min), c.inner(span, b.max))
	}
	store.propagate()
	st.conflicts = store.conflicts()

	var (
		mins      []spanBound
		maxs      []spanBound
		redundant []spanBound
	)
	for i, e := range c.elems {
		mins = append(mins, spanBound{Span{i, i}, e.min})
		if e.max < SizeUnlimited {
			maxs = append(maxs, spanBound{Span{i, i}, e.max})
		}
	}
	for _, span := range c.sortedSpans() {
		cl := store.at(span.First, span.Last)
		b := c.ranges[span]
		if lo := c.inner(span, b.min); lo != SizeUnset && !cl.redundantMin {
			mins = append(mins, spanBound{span, lo})
		}
		if hi := c.inner(span, b.max); hi != SizeUnset {
			if cl.redundantMax {
				redundant = append(redundant, spanBound{span, hi})
			} else {
				maxs = append(maxs, spanBound{span, hi})
			}
		}
	}

	for _, m := range mins {
		if !st.opt.AddConstraint(optimizer.MinConstraint(m.span.First, m.span.Last, float64(m.value))) {
			st.err = fmt.Errorf("%w: minimum %d on [%d,%d]", ErrModeling, m.value, m.span.First, m.span.Last)
			return st
		}
	}

	slices.SortStableFunc(maxs, func(a, b spanBound) int {
		return cmp.Or(cmp.Compare(a.span.Len(), b.span.Len()), cmp.Compare(a.span.First, b.span.First))
	})
	for _, m := range maxs {
		c.addMax(st, m)
	}
	if len(st.relaxed) > 0 {
		// Redundant maxima were implied by bounds that no longer hold.
		for _, m := range redundant {
			c.addMax(st, m)
		}
	}

	lo, hi := st.opt.Bounds(optimizer.Origin, n-1)
	st.min, st.max = toSize(lo), toSize(hi)
	st.elemMin = make([]int, n)
	st.elemMax = make([]int, n)
	for i := range n {
		lo, hi := st.opt.Bounds(i-1, i)
		st.elemMin[i], st.elemMax[i] = toSize(lo), toSize(hi)
	}
	return st
}

// addMax registers a maximum, as an equality when the span's minimum is the
// same, and relaxes it when the optimizer rejects it.
func (c *Complex) addMax(st *complexState, m spanBound) {
	first, last := m.span.First, m.span.Last
	if c.spanMin(m.span) == m.value {
		if st.opt.AddConstraint(optimizer.ExactConstraint(first, last, float64(m.value))) {
			return
		}
	}
	if st.opt.AddConstraint(optimizer.MaxConstraint(first, last, float64(m.value))) {
		return
	}

	relaxed, ok := relaxMax(st.opt, m)
	if ok {
		st.opt.AddConstraint(optimizer.MaxConstraint(first, last, float64(relaxed)))
	} else {
		relaxed = SizeUnlimited
	}
	inner := spacingTotal(m.span.Len(), c.spacing)
	st.relaxed = append(st.relaxed, Relaxation{
		Span:     m.span,
		Declared: m.value + inner,
		Relaxed:  withSpacing(relaxed, m.span.Len(), c.spacing),
	})
}

// relaxMax finds the smallest maximum above m.value the optimizer accepts:
// the distance above the declared value doubles until a feasible value is
// found, then a binary search narrows the last interval. It reports false
// when even SizeUnlimited is rejected.
func relaxMax(opt *optimizer.Optimizer, m spanBound) (int, bool) {
	fits := func(v int) bool {
		return opt.CanAdd(optimizer.MaxConstraint(m.span.First, m.span.Last, float64(v)))
	}

	lo, step := m.value, 1
	hi := lo + step
	for !fits(hi) {
		if hi >= SizeUnlimited {
			return 0, false
		}
		lo = hi
		step *= 2
		hi = min(m.value+step, SizeUnlimited)
	}
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if fits(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, true
}

// spanMin returns the declared minimum of span in element units, or
// SizeUnset.
func (c *Complex) spanMin(span Span) int {
	if span.Len() == 1 {
		return c.elems[span.First].min
	}
	return c.inner(span, c.ranges[span].min)
}

// inner converts a range bound to element units by removing the spacing
// between the elements of span.
func (c *Complex) inner(span Span, v int) int {
	if v == SizeUnset {
		return SizeUnset
	}
	return max(v-spacingTotal(span.Len(), c.spacing), 0)
}

func (c *Complex) sortedSpans() []Span {
	spans := make([]Span, 0, len(c.ranges))
	for s := range c.ranges {
		spans = append(spans, s)
	}
	slices.SortFunc(spans, func(a, b Span) int {
		return cmp.Or(cmp.Compare(a.First, b.First), cmp.Compare(a.Last, b.Last))
	})
	return spans
}

func toSize(v float64) int {
	if math.IsInf(v, 1) || v >= SizeUnlimited {
		return SizeUnlimited
	}
	if math.IsInf(v, -1) || v <= 0 {
		return 0
	}
	return int(math.Round(v))
}

func toFloats(vs []int) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}
