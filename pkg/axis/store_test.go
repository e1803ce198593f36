package axis

import (
	"slices"
	"testing"
)

func TestRangeStorePropagate(t *testing.T) {
	s := newRangeStore(3)
	for i := range 3 {
		s.add(i, i, 5, 10)
	}
	s.add(0, 1, 8, SizeUnset)
	s.add(1, 2, 12, SizeUnset)
	s.add(0, 2, SizeUnset, 40)
	s.propagate()

	if c := s.at(0, 1); !c.redundantMin {
		t.Error("[0,1] min 8 is implied by element minimums and should be redundant")
	}
	if c := s.at(1, 2); c.redundantMin {
		t.Error("[1,2] min 12 exceeds element minimums and must be kept")
	}
	if c := s.at(0, 2); !c.redundantMax {
		t.Error("[0,2] max 40 is implied by element maximums and should be redundant")
	}

	tests := []struct {
		first, last int
		min, max    int
	}{
		{0, 0, 5, 10},
		{1, 2, 12, 20},
		{0, 1, 10, 20},
		{0, 2, 17, 30},
	}
	for _, tt := range tests {
		lo, hi := s.bounds(tt.first, tt.last)
		if lo != tt.min || hi != tt.max {
			t.Errorf("bounds(%d, %d) = [%d, %d], want [%d, %d]", tt.first, tt.last, lo, hi, tt.min, tt.max)
		}
	}
	if cs := s.conflicts(); len(cs) != 0 {
		t.Errorf("conflicts() = %v, want none", cs)
	}
}

func TestRangeStoreBackward(t *testing.T) {
	s := newRangeStore(2)
	s.add(0, 0, SizeUnset, 4)
	s.add(0, 1, 10, 12)
	s.propagate()

	// Element 1 must make up for element 0's maximum.
	if lo, hi := s.bounds(1, 1); lo != 6 || hi != 12 {
		t.Errorf("bounds(1, 1) = [%d, %d], want [6, 12]", lo, hi)
	}
}

func TestRangeStoreConflicts(t *testing.T) {
	s := newRangeStore(2)
	s.add(0, 0, 0, 5)
	s.add(1, 1, 0, 5)
	s.add(0, 1, 20, SizeUnset)
	s.propagate()

	if cs := s.conflicts(); !slices.Contains(cs, Span{0, 1}) {
		t.Errorf("conflicts() = %v, want [0,1] included", cs)
	}
}
