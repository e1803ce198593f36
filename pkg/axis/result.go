package axis

import "slices"

// Result holds the location and size of every element of an axis after a
// layout. Locations are offsets from the start of the axis.
//
// A Result is valid until the layouter that filled it lays out again.
type Result struct {
	locations []int
	sizes     []int
}

// Len returns the number of elements.
func (r *Result) Len() int { return len(r.sizes) }

// Location returns the offset of element i, or 0 if i is out of range.
func (r *Result) Location(i int) int {
	if i < 0 || i >= len(r.locations) {
		return 0
	}
	return r.locations[i]
}

// Size returns the size of element i, or 0 if i is out of range.
func (r *Result) Size(i int) int {
	if i < 0 || i >= len(r.sizes) {
		return 0
	}
	return r.sizes[i]
}

// RangeSize returns the extent covered by length elements starting at first,
// including the spacing between them.
func (r *Result) RangeSize(first, length int) int {
	if length < 1 || first < 0 || first+length > r.Len() {
		return 0
	}
	last := first + length - 1
	return r.locations[last] + r.sizes[last] - r.locations[first]
}

// Total returns the extent of the whole axis.
func (r *Result) Total() int {
	if r.Len() == 0 {
		return 0
	}
	return r.RangeSize(0, r.Len())
}

// Sizes returns a copy of the element sizes.
func (r *Result) Sizes() []int { return slices.Clone(r.sizes) }

// Locations returns a copy of the element locations.
func (r *Result) Locations() []int { return slices.Clone(r.locations) }

func (r *Result) resize(n int) {
	if cap(r.sizes) < n {
		r.sizes = make([]int, n)
		r.locations = make([]int, n)
		return
	}
	r.sizes = r.sizes[:n]
	r.locations = r.locations[:n]
	clear(r.sizes)
	clear(r.locations)
}

// place stores sizes and derives locations with spacing between elements.
func (r *Result) place(sizes []int, spacing int) {
	r.resize(len(sizes))
	loc := 0
	for i, s := range sizes {
		r.locations[i] = loc
		r.sizes[i] = s
		loc += s + spacing
	}
}
