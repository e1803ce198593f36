package axis

// Span is an inclusive range of element indices.
type Span struct {
	First, Last int
}

// Len returns the number of elements in s.
func (s Span) Len() int { return s.Last - s.First + 1 }

// cell holds the bounds known for one range of the store.
type cell struct {
	min, max int

	// declared bounds come from a constraint rather than propagation.
	declaredMin, declaredMax bool

	// redundant bounds are implied by shorter declared ranges.
	redundantMin, redundantMax bool
}

// rangeStore is a triangular table of bounds for every contiguous range of
// an n-element axis, indexed by (first, last).
type rangeStore struct {
	n     int
	cells []cell
}

func newRangeStore(n int) *rangeStore {
	s := &rangeStore{n: n, cells: make([]cell, n*(n+1)/2)}
	for i := range s.cells {
		s.cells[i].max = SizeUnlimited
	}
	return s
}

func (s *rangeStore) at(first, last int) *cell {
	return &s.cells[first*(2*s.n-first+1)/2+last-first]
}

// add merges a declared constraint on [first, last]. Either bound may be
// SizeUnset.
func (s *rangeStore) add(first, last, lo, hi int) {
	c := s.at(first, last)
	if lo != SizeUnset {
		c.declaredMin = true
		c.min = max(c.min, lo)
	}
	if hi != SizeUnset && hi < SizeUnlimited {
		c.declaredMax = true
		c.max = min(c.max, hi)
	}
}

// bounds returns the current bounds of [first, last].
func (s *rangeStore) bounds(first, last int) (int, int) {
	c := s.at(first, last)
	return c.min, c.max
}

// propagate tightens every cell from its neighbours until nothing changes.
//
// The forward pass walks ranges by increasing length: a range is at least
// the sum of the minima of any split into two adjacent parts and at most the
// sum of their maxima. The first forward pass also marks declared bounds
// that the split already implies as redundant. The backward pass walks ranges
// by decreasing length and bounds each part by subtracting the other part
// from the whole. Conflicting tables can tighten forever, so the number of
// passes is capped.
func (s *rangeStore) propagate() {
	for pass := range s.n + 2 {
		changed := s.forward(pass == 0)
		if s.backward() {
			changed = true
		}
		if !changed {
			return
		}
	}
}

func (s *rangeStore) forward(markRedundant bool) bool {
	changed := false
	for length := 2; length <= s.n; length++ {
		for first := 0; first+length <= s.n; first++ {
			last := first + length - 1
			c := s.at(first, last)

			lo, hi := 0, SizeUnlimited
			for j := first + 1; j <= last; j++ {
				left, right := s.at(first, j-1), s.at(j, last)
				lo = max(lo, left.min+right.min)
				hi = min(hi, satAdd(left.max, right.max))
			}

			if markRedundant {
				c.redundantMin = c.declaredMin && lo >= c.min
				c.redundantMax = c.declaredMax && hi <= c.max
			}
			if lo > c.min {
				c.min = lo
				changed = true
			}
			if hi < c.max {
				c.max = hi
				changed = true
			}
		}
	}
	return changed
}

func (s *rangeStore) backward() bool {
	changed := false
	tighten := func(c *cell, lo, hi int) {
		if lo > c.min {
			c.min = lo
			changed = true
		}
		if hi < c.max {
			c.max = hi
			changed = true
		}
	}

	for length := s.n; length >= 2; length-- {
		for first := 0; first+length <= s.n; first++ {
			last := first + length - 1
			whole := s.at(first, last)
			for j := first + 1; j <= last; j++ {
				left, right := s.at(first, j-1), s.at(j, last)
				leftLo, rightLo := 0, 0
				if right.max < SizeUnlimited {
					leftLo = whole.min - right.max
				}
				if left.max < SizeUnlimited {
					rightLo = whole.min - left.max
				}
				leftHi, rightHi := SizeUnlimited, SizeUnlimited
				if whole.max < SizeUnlimited {
					leftHi = whole.max - right.min
					rightHi = whole.max - left.min
				}
				tighten(left, leftLo, leftHi)
				tighten(right, rightLo, rightHi)
			}
		}
	}
	return changed
}

// conflicts returns the ranges whose propagated minimum exceeds their
// maximum.
func (s *rangeStore) conflicts() []Span {
	var out []Span
	for first := range s.n {
		for last := first; last < s.n; last++ {
			if c := s.at(first, last); c.min > c.max {
				out = append(out, Span{first, last})
			}
		}
	}
	return out
}
