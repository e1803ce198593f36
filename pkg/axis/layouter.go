package axis

import "errors"

const (
	// SizeUnset marks a bound that should not be constrained.
	SizeUnset = -1

	// SizeUnlimited is the effective value of an unset maximum. Aggregate
	// sizes saturate at this value.
	SizeUnlimited = 1 << 30

	// MaxBound is the largest min, max, preferred or spacing value a
	// layouter keeps; larger values are clamped to it. Axes with fewer than
	// 128 elements therefore never reach SizeUnlimited.
	MaxBound = 1 << 22
)

var (
	// ErrModeling is returned when the accumulated minima contradict each
	// other. The layouter is unusable afterwards.
	ErrModeling = errors.New("axis: contradictory minimum constraints")

	// ErrNilResult is returned by Layout when called without a result.
	ErrNilResult = errors.New("axis: nil layout result")
)

// Layouter lays out the elements of one axis.
//
// Callers add constraints and weights, query the aggregate sizes to size the
// container, and then call Layout with the size actually granted. Adding a
// constraint invalidates everything computed so far.
type Layouter interface {
	// AddConstraints restricts element (length 1) or the range
	// [element, element+length-1]. Any of min, max and preferred may be
	// SizeUnset. Repeated constraints on the same span merge: the larger
	// minimum and the smaller maximum win.
	AddConstraints(element, length, min, max, preferred int)

	// SetWeight sets the relative share of slack space for element.
	// Negative weights are treated as 0. The default weight is 1.
	SetWeight(element int, weight float64)

	// ElementCount returns the number of elements referenced so far.
	ElementCount() int

	MinSize() int
	MaxSize() int
	PreferredSize() int

	// Validate resolves the accumulated constraints. It returns ErrModeling
	// when they are contradictory; the aggregate sizes are 0 in that case.
	Validate() error

	// CreateLayoutInfo returns an empty result suitable for Layout.
	CreateLayoutInfo() *Result

	// Layout computes locations and sizes for size, clamped into
	// [MinSize(), MaxSize()], and stores them in info.
	Layout(info *Result, size int) error

	// CloneLayouter returns an independent layouter with the same
	// constraints, weights and spacing.
	CloneLayouter() Layouter
}

var (
	_ Layouter = (*Trivial)(nil)
	_ Layouter = (*Uniform)(nil)
	_ Layouter = (*Complex)(nil)
	_ Layouter = (*Collapsing)(nil)
)

// layoutCache remembers the sizes of the last layout so that repeated
// layouts with the same total are free.
type layoutCache struct {
	valid bool
	size  int
	sizes []int
}

func (c *layoutCache) lookup(size int) ([]int, bool) {
	if !c.valid || c.size != size {
		return nil, false
	}
	return c.sizes, true
}

func (c *layoutCache) store(size int, sizes []int) {
	c.valid, c.size, c.sizes = true, size, sizes
}

func (c *layoutCache) invalidate() {
	c.valid, c.sizes = false, nil
}

// clampBound caps a constraint value at MaxBound. SizeUnset passes through.
func clampBound(v int) int {
	if v == SizeUnset {
		return v
	}
	return min(v, MaxBound)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// satAdd adds sizes, saturating at SizeUnlimited.
func satAdd(a, b int) int {
	if a >= SizeUnlimited || b >= SizeUnlimited {
		return SizeUnlimited
	}
	return min(a+b, SizeUnlimited)
}

// spacingTotal returns the spacing between n consecutive elements.
func spacingTotal(n, spacing int) int {
	if n < 2 {
		return 0
	}
	return (n - 1) * spacing
}

// withSpacing adds the spacing of n elements to an element sum, keeping
// SizeUnlimited saturated.
func withSpacing(sum, n, spacing int) int {
	if sum >= SizeUnlimited {
		return SizeUnlimited
	}
	return satAdd(sum, spacingTotal(n, spacing))
}
