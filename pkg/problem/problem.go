package problem

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/gridaxis/pkg/axis"
	"github.com/matzehuels/gridaxis/pkg/errors"
)

// Strategy selects the layouter built for a problem.
type Strategy string

const (
	StrategyAuto    Strategy = "auto"
	StrategyTrivial Strategy = "trivial"
	StrategyUniform Strategy = "uniform"
	StrategyComplex Strategy = "complex"
)

// Strategies lists the accepted strategy names.
var Strategies = []Strategy{StrategyAuto, StrategyTrivial, StrategyUniform, StrategyComplex}

// Problem is one axis to lay out.
type Problem struct {
	Name     string    `json:"name,omitempty" toml:"name"`
	Spacing  int       `json:"spacing,omitempty" toml:"spacing"`
	Strategy Strategy  `json:"strategy,omitempty" toml:"strategy"`
	Elements []Element `json:"elements" toml:"elements"`
	Ranges   []Range   `json:"ranges,omitempty" toml:"ranges"`

	// Sizes are the totals to lay out. Empty means the preferred size.
	Sizes []int `json:"sizes,omitempty" toml:"sizes"`
}

// Element bounds a single element. Nil fields are unset.
type Element struct {
	Index     int      `json:"index" toml:"index"`
	Min       *int     `json:"min,omitempty" toml:"min"`
	Max       *int     `json:"max,omitempty" toml:"max"`
	Preferred *int     `json:"preferred,omitempty" toml:"preferred"`
	Weight    *float64 `json:"weight,omitempty" toml:"weight"`
}

// Range bounds the combined size of elements First..Last, including the
// spacing between them.
type Range struct {
	First     int  `json:"first" toml:"first"`
	Last      int  `json:"last" toml:"last"`
	Min       *int `json:"min,omitempty" toml:"min"`
	Max       *int `json:"max,omitempty" toml:"max"`
	Preferred *int `json:"preferred,omitempty" toml:"preferred"`
}

// Len returns the number of elements covered by r.
func (r Range) Len() int { return r.Last - r.First + 1 }

// Count returns the number of elements on the axis: one past the highest
// listed index. Indices that are not listed exist but are unconstrained.
func (p *Problem) Count() int {
	n := 0
	for _, e := range p.Elements {
		n = max(n, e.Index+1)
	}
	return n
}

func (p *Problem) strategy() Strategy {
	if p.Strategy == "" {
		return StrategyAuto
	}
	return p.Strategy
}

// Validate checks the problem for malformed values. All returned errors
// carry an errors.Code.
func (p *Problem) Validate() error {
	if err := errors.ValidateName(p.Name); err != nil {
		return err
	}
	if err := errors.ValidateSpacing(p.Spacing); err != nil {
		return err
	}
	if !slices.Contains(Strategies, p.strategy()) {
		return errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q", p.Strategy)
	}

	seen := make(map[int]bool, len(p.Elements))
	for _, e := range p.Elements {
		if err := errors.ValidateElementIndex(e.Index, errors.MaxElements); err != nil {
			return err
		}
		if seen[e.Index] {
			return errors.New(errors.ErrCodeInvalidProblem, "element %d listed twice", e.Index)
		}
		seen[e.Index] = true
		if err := validateBounds(e.Min, e.Max, e.Preferred); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProblem, err, "element %d", e.Index)
		}
		if e.Weight != nil {
			if err := errors.ValidateWeight(*e.Weight); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidProblem, err, "element %d", e.Index)
			}
		}
	}

	n := p.Count()
	for i, r := range p.Ranges {
		if err := errors.ValidateSpan(r.First, r.Last, n); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProblem, err, "ranges[%d]", i)
		}
		if err := validateBounds(r.Min, r.Max, r.Preferred); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProblem, err, "ranges[%d]", i)
		}
	}

	if err := errors.ValidateSizeCount(len(p.Sizes)); err != nil {
		return err
	}
	for _, s := range p.Sizes {
		if err := errors.ValidateSize(s); err != nil {
			return err
		}
	}
	return p.validateStrategy()
}

func validateBounds(lo, hi, preferred *int) error {
	if err := errors.ValidateBounds(lo, hi); err != nil {
		return err
	}
	return errors.ValidatePreferred(preferred)
}

// validateStrategy rejects explicit strategies that would silently drop
// constraints.
func (p *Problem) validateStrategy() error {
	switch p.strategy() {
	case StrategyTrivial:
		if p.Count() > 1 {
			return errors.New(errors.ErrCodeInvalidStrategy, "trivial strategy needs at most one element, got %d", p.Count())
		}
	case StrategyUniform:
		for _, r := range p.Ranges {
			if r.Len() > 1 && (r.Min != nil || r.Max != nil) {
				return errors.New(errors.ErrCodeInvalidStrategy,
					"uniform strategy cannot honor range [%d,%d]", r.First, r.Last)
			}
		}
	}
	return nil
}

// Build validates p and returns a layouter loaded with its constraints.
func (p *Problem) Build() (axis.Layouter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var l axis.Layouter
	switch p.strategy() {
	case StrategyTrivial:
		l = axis.NewTrivial()
	case StrategyUniform:
		l = axis.NewUniform(p.Spacing)
	case StrategyComplex:
		l = axis.NewComplex(p.Spacing)
	default:
		l = axis.NewCollapsing(p.Spacing)
	}

	for _, e := range p.Elements {
		l.AddConstraints(e.Index, 1, value(e.Min), value(e.Max), value(e.Preferred))
		if e.Weight != nil {
			l.SetWeight(e.Index, *e.Weight)
		}
	}
	for _, r := range p.Ranges {
		l.AddConstraints(r.First, r.Len(), value(r.Min), value(r.Max), value(r.Preferred))
	}
	return l, nil
}

func value(v *int) int {
	if v == nil {
		return axis.SizeUnset
	}
	return *v
}

// Canonical returns the JSON encoding of everything that affects a layout.
// The name and the requested sizes are left out, so two problems with the
// same constraints share cache entries.
func (p *Problem) Canonical() ([]byte, error) {
	c := *p
	c.Name = ""
	c.Sizes = nil
	c.Strategy = p.strategy()
	return json.Marshal(c)
}
