package axis

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResult(t *testing.T) {
	var r Result
	r.place([]int{10, 0, 5}, 2)

	if got := r.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if diff := cmp.Diff([]int{0, 12, 14}, r.Locations()); diff != "" {
		t.Errorf("Locations() mismatch (-want +got):\n%s", diff)
	}
	if got := r.RangeSize(1, 2); got != 7 {
		t.Errorf("RangeSize(1, 2) = %d, want 7", got)
	}
	if got := r.Total(); got != 19 {
		t.Errorf("Total() = %d, want 19", got)
	}
	if got := r.Size(7); got != 0 {
		t.Errorf("Size(7) = %d, want 0", got)
	}
	if got := r.RangeSize(2, 5); got != 0 {
		t.Errorf("RangeSize(2, 5) = %d, want 0", got)
	}

	r.place([]int{4}, 2)
	if diff := cmp.Diff([]int{4}, r.Sizes()); diff != "" {
		t.Errorf("Sizes() after re-place mismatch (-want +got):\n%s", diff)
	}
}

func TestTrivial(t *testing.T) {
	l := NewTrivial()
	l.AddConstraints(0, 1, 10, 30, 15)
	l.AddConstraints(3, 2, 12, SizeUnset, 50)

	if got, want := l.MinSize(), 12; got != want {
		t.Errorf("MinSize() = %d, want %d", got, want)
	}
	if got, want := l.MaxSize(), 30; got != want {
		t.Errorf("MaxSize() = %d, want %d", got, want)
	}
	if got, want := l.PreferredSize(), 30; got != want {
		t.Errorf("PreferredSize() = %d, want %d", got, want)
	}

	info := l.CreateLayoutInfo()
	for _, tt := range []struct{ size, want int }{{0, 12}, {20, 20}, {100, 30}} {
		if err := l.Layout(info, tt.size); err != nil {
			t.Fatalf("Layout(%d): %v", tt.size, err)
		}
		if got := info.Size(0); got != tt.want {
			t.Errorf("Layout(%d) size = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestUniformAggregates(t *testing.T) {
	l := NewUniform(2)
	l.AddConstraints(0, 1, 10, 20, 15)
	l.AddConstraints(1, 1, 5, SizeUnset, 30)

	if got, want := l.MinSize(), 17; got != want {
		t.Errorf("MinSize() = %d, want %d", got, want)
	}
	if got, want := l.MaxSize(), SizeUnlimited; got != want {
		t.Errorf("MaxSize() = %d, want %d", got, want)
	}
	if got, want := l.PreferredSize(), 47; got != want {
		t.Errorf("PreferredSize() = %d, want %d", got, want)
	}
}

func TestUniformMergesConstraints(t *testing.T) {
	l := NewUniform(0)
	l.AddConstraints(0, 1, 10, 50, SizeUnset)
	l.AddConstraints(0, 1, 20, 40, SizeUnset)
	l.AddConstraints(0, 1, 5, 15, SizeUnset) // max below merged min

	if got := l.MinSize(); got != 20 {
		t.Errorf("MinSize() = %d, want 20", got)
	}
	if got := l.MaxSize(); got != 20 {
		t.Errorf("MaxSize() = %d, want 20", got)
	}
}

func TestUniformLayout(t *testing.T) {
	tests := []struct {
		name    string
		spacing int
		setup   func(l *Uniform)
		size    int
		want    []int
	}{
		{
			name: "pinned element gives slack to the other",
			setup: func(l *Uniform) {
				l.AddConstraints(0, 1, 0, 5, SizeUnset)
				l.AddConstraints(1, 1, 0, SizeUnset, SizeUnset)
			},
			size: 20,
			want: []int{5, 15},
		},
		{
			name:    "spacing is taken before distribution",
			spacing: 3,
			setup: func(l *Uniform) {
				for i := range 3 {
					l.AddConstraints(i, 1, 10, 50, SizeUnset)
				}
			},
			size: 100,
			want: []int{31, 32, 31},
		},
		{
			name:    "clamped to minimum",
			spacing: 3,
			setup: func(l *Uniform) {
				for i := range 3 {
					l.AddConstraints(i, 1, 10, 50, SizeUnset)
				}
			},
			size: 0,
			want: []int{10, 10, 10},
		},
		{
			name:    "clamped to maximum",
			spacing: 3,
			setup: func(l *Uniform) {
				for i := range 3 {
					l.AddConstraints(i, 1, 10, 50, SizeUnset)
				}
			},
			size: 1000,
			want: []int{50, 50, 50},
		},
		{
			name: "weights",
			setup: func(l *Uniform) {
				l.AddConstraints(0, 1, 0, SizeUnset, SizeUnset)
				l.AddConstraints(1, 1, 0, SizeUnset, SizeUnset)
				l.SetWeight(1, 2)
			},
			size: 90,
			want: []int{30, 60},
		},
		{
			name: "negative weight clamps to zero",
			setup: func(l *Uniform) {
				l.AddConstraints(0, 1, 4, SizeUnset, SizeUnset)
				l.AddConstraints(1, 1, 0, SizeUnset, SizeUnset)
				l.SetWeight(0, -3)
			},
			size: 30,
			want: []int{4, 26},
		},
		{
			name: "range constraints are ignored",
			setup: func(l *Uniform) {
				l.AddConstraints(0, 2, 100, SizeUnset, SizeUnset)
			},
			size: 10,
			want: []int{5, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewUniform(tt.spacing)
			tt.setup(l)
			info := l.CreateLayoutInfo()
			if err := l.Layout(info, tt.size); err != nil {
				t.Fatalf("Layout: %v", err)
			}
			if diff := cmp.Diff(tt.want, info.Sizes()); diff != "" {
				t.Errorf("sizes mismatch (-want +got):\n%s", diff)
			}
			want := clamp(tt.size, l.MinSize(), l.MaxSize())
			if got := info.Total(); got != want {
				t.Errorf("Total() = %d, want %d", got, want)
			}
		})
	}
}

func TestUniformIdempotent(t *testing.T) {
	l := NewUniform(1)
	l.AddConstraints(0, 1, 3, 17, SizeUnset)
	l.AddConstraints(1, 1, 0, SizeUnset, SizeUnset)
	l.AddConstraints(2, 1, 8, 9, SizeUnset)
	l.SetWeight(1, 0.25)

	a, b := l.CreateLayoutInfo(), l.CreateLayoutInfo()
	if err := l.Layout(a, 77); err != nil {
		t.Fatal(err)
	}
	if err := l.Layout(b, 77); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Sizes(), b.Sizes()); diff != "" {
		t.Errorf("second layout differs (-first +second):\n%s", diff)
	}
}

func TestUniformClone(t *testing.T) {
	l := NewUniform(0)
	l.AddConstraints(0, 1, 10, SizeUnset, SizeUnset)

	c := l.CloneLayouter()
	c.AddConstraints(1, 1, 10, SizeUnset, SizeUnset)

	if got := l.MinSize(); got != 10 {
		t.Errorf("original MinSize() = %d, want 10", got)
	}
	if got := c.MinSize(); got != 20 {
		t.Errorf("clone MinSize() = %d, want 20", got)
	}
}

func TestLayoutNilResult(t *testing.T) {
	for _, l := range []Layouter{NewTrivial(), NewUniform(0), NewComplex(0), NewCollapsing(0)} {
		if err := l.Layout(nil, 10); !errors.Is(err, ErrNilResult) {
			t.Errorf("%T.Layout(nil) error = %v, want ErrNilResult", l, err)
		}
	}
}
