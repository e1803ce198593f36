package optimizer

import (
	"fmt"
	"math"
)

// Origin is the pseudo-variable index for the fixed prefix sum s[-1] = 0.
const Origin = -1

// Constraint bounds the difference of two prefix sums:
//
//	s[Right] - s[Left] >= Value   (or == Value when Equality is set)
//
// Either index may be [Origin]. Upper bounds are expressed by swapping the
// indices and negating the value.
type Constraint struct {
	Left     int
	Right    int
	Value    float64
	Equality bool
}

// MinConstraint returns the constraint "elements first..last sum to at least min".
func MinConstraint(first, last int, min float64) Constraint {
	return Constraint{Left: first - 1, Right: last, Value: min}
}

// MaxConstraint returns the constraint "elements first..last sum to at most max".
func MaxConstraint(first, last int, max float64) Constraint {
	return Constraint{Left: last, Right: first - 1, Value: -max}
}

// ExactConstraint returns the constraint "elements first..last sum to exactly size".
func ExactConstraint(first, last int, size float64) Constraint {
	return Constraint{Left: first - 1, Right: last, Value: size, Equality: true}
}

// String implements fmt.Stringer.
func (c Constraint) String() string {
	op := ">="
	if c.Equality {
		op = "=="
	}
	return fmt.Sprintf("s[%d] - s[%d] %s %g", c.Right, c.Left, op, c.Value)
}

// valid reports whether both indices address a variable of an n-variable
// problem (or the origin) and the constraint is not degenerate.
func (c Constraint) valid(n int) bool {
	if c.Left < Origin || c.Left >= n || c.Right < Origin || c.Right >= n {
		return false
	}
	return c.Left != c.Right && !math.IsNaN(c.Value) && !math.IsInf(c.Value, 0)
}

// eval returns s[Right] - s[Left] for x.
func (c Constraint) eval(x []float64) float64 {
	return at(x, c.Right) - at(x, c.Left)
}

// slack returns how far x is inside the constraint; negative means violated.
func (c Constraint) slack(x []float64) float64 {
	return c.eval(x) - c.Value
}

// evalInt is eval for integer prefix sums.
func (c Constraint) evalInt(x []int) int {
	var l, r int
	if c.Left >= 0 {
		l = x[c.Left]
	}
	if c.Right >= 0 {
		r = x[c.Right]
	}
	return r - l
}

// row returns the dense coefficient row of the constraint.
func (c Constraint) row(n int) []float64 {
	a := make([]float64, n)
	if c.Right >= 0 {
		a[c.Right] = 1
	}
	if c.Left >= 0 {
		a[c.Left] = -1
	}
	return a
}

// dot returns the product of the coefficient row with p.
func (c Constraint) dot(p []float64) float64 {
	return at(p, c.Right) - at(p, c.Left)
}

func at(x []float64, i int) float64 {
	if i < 0 {
		return 0
	}
	return x[i]
}
