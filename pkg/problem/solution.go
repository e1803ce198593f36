package problem

import "github.com/matzehuels/gridaxis/pkg/axis"

// Bounds summarizes the sizes an axis accepts.
type Bounds struct {
	Strategy  string `json:"strategy" toml:"strategy"`
	Elements  int    `json:"elements" toml:"elements"`
	Min       int    `json:"min" toml:"min"`
	Max       int    `json:"max" toml:"max"`
	Unbounded bool   `json:"unbounded,omitempty" toml:"unbounded,omitempty"`
	Preferred int    `json:"preferred" toml:"preferred"`
}

// Placement is one element of a solved axis.
type Placement struct {
	Index    int `json:"index" toml:"index"`
	Location int `json:"location" toml:"location"`
	Size     int `json:"size" toml:"size"`
}

// Relaxation reports a range maximum that was widened to stay feasible.
// Both values include the spacing inside the range.
type Relaxation struct {
	First    int `json:"first" toml:"first"`
	Last     int `json:"last" toml:"last"`
	Declared int `json:"declared" toml:"declared"`
	Relaxed  int `json:"relaxed" toml:"relaxed"`
}

// Solution is the layout of one axis at one size.
type Solution struct {
	Requested int          `json:"requested" toml:"requested"`
	Size      int          `json:"size" toml:"size"`
	Clamped   bool         `json:"clamped,omitempty" toml:"clamped,omitempty"`
	Elements  []Placement  `json:"elements" toml:"elements"`
	Relaxed   []Relaxation `json:"relaxed,omitempty" toml:"relaxed,omitempty"`
}

// StrategyName reports the strategy a layouter actually uses.
func StrategyName(l axis.Layouter) string {
	switch l := l.(type) {
	case *axis.Collapsing:
		return string(l.Strategy())
	case *axis.Complex:
		return string(axis.StrategyComplex)
	case *axis.Uniform:
		return string(axis.StrategyUniform)
	case *axis.Trivial:
		return string(axis.StrategyTrivial)
	default:
		return "unknown"
	}
}

// BoundsOf reads the aggregate sizes of l.
func BoundsOf(l axis.Layouter) Bounds {
	b := Bounds{
		Strategy:  StrategyName(l),
		Elements:  l.ElementCount(),
		Min:       l.MinSize(),
		Max:       l.MaxSize(),
		Preferred: l.PreferredSize(),
	}
	b.Unbounded = b.Max >= axis.SizeUnlimited
	return b
}

// Solve lays l out at size and converts the result.
func Solve(l axis.Layouter, size int) (*Solution, error) {
	info := l.CreateLayoutInfo()
	if err := l.Layout(info, size); err != nil {
		return nil, err
	}

	sol := &Solution{
		Requested: size,
		Size:      info.Total(),
		Elements:  make([]Placement, info.Len()),
	}
	sol.Clamped = sol.Size != size
	for i := range sol.Elements {
		sol.Elements[i] = Placement{Index: i, Location: info.Location(i), Size: info.Size(i)}
	}
	if r, ok := l.(interface{ Relaxations() []axis.Relaxation }); ok {
		for _, rx := range r.Relaxations() {
			sol.Relaxed = append(sol.Relaxed, Relaxation{
				First:    rx.First,
				Last:     rx.Last,
				Declared: rx.Declared,
				Relaxed:  rx.Relaxed,
			})
		}
	}
	return sol, nil
}
