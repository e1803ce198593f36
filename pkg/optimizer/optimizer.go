package optimizer

import (
	"errors"
	"math"
	"slices"
)

// Sentinel errors returned by the optimizer.
var (
	// ErrInfeasible is returned when no point satisfies the registered
	// constraints together with the requested total.
	ErrInfeasible = errors.New("optimizer: constraints are infeasible")

	// ErrUnbounded is returned when a variable has no upper bound reachable
	// from the origin, so no finite starting point can be derived.
	ErrUnbounded = errors.New("optimizer: variable is unbounded")

	// ErrNoProgress is returned when the active-set iteration exceeds its
	// iteration budget without reaching an optimal point.
	ErrNoProgress = errors.New("optimizer: active-set iteration did not converge")

	// ErrNoIntegerSolution is returned when rounding backtracking is exhausted.
	ErrNoIntegerSolution = errors.New("optimizer: no integer solution near the optimum")

	// ErrDimension is returned when an input vector does not match the
	// variable count.
	ErrDimension = errors.New("optimizer: dimension mismatch")
)

// Optimizer accumulates difference constraints over n prefix-sum variables
// and solves least-squares placement problems subject to them.
//
// An Optimizer is not safe for concurrent use.
type Optimizer struct {
	n           int
	constraints []Constraint
}

// New creates an optimizer for n variables (one per axis element).
func New(n int) *Optimizer {
	return &Optimizer{n: max(n, 0)}
}

// VariableCount returns the number of variables.
func (o *Optimizer) VariableCount() int { return o.n }

// Constraints returns a copy of the accepted constraints in registration order.
func (o *Optimizer) Constraints() []Constraint {
	return slices.Clone(o.constraints)
}

// CanAdd reports whether c could be added without making the system
// infeasible. It does not modify the optimizer.
func (o *Optimizer) CanAdd(c Constraint) bool {
	if !c.valid(o.n) {
		return false
	}
	candidate := append(slices.Clone(o.constraints), c)
	return Feasible(o.n, candidate)
}

// AddConstraint registers c if the accumulated system stays feasible and
// reports whether it was accepted. Rejected constraints leave the optimizer
// unchanged.
func (o *Optimizer) AddConstraint(c Constraint) bool {
	if !o.CanAdd(c) {
		return false
	}
	o.constraints = append(o.constraints, c)
	return true
}

// Clone returns an independent copy of the optimizer.
func (o *Optimizer) Clone() *Optimizer {
	return &Optimizer{n: o.n, constraints: slices.Clone(o.constraints)}
}

// Bounds returns the tightest bounds the accepted constraints imply for
// s[right] - s[left]. The upper bound is +Inf when unconstrained.
func (o *Optimizer) Bounds(left, right int) (lo, hi float64) {
	edges := buildEdges(o.constraints)
	nodes := o.n + 1

	hi = math.Inf(1)
	if dist, ok := shortestPaths(nodes, edges, node(left)); ok {
		hi = dist[node(right)]
	}
	lo = math.Inf(-1)
	if dist, ok := shortestPaths(nodes, edges, node(right)); ok {
		lo = -dist[node(left)]
	}
	return lo, hi
}

// totalConstraint fixes the last prefix sum to total.
func (o *Optimizer) totalConstraint(total float64) Constraint {
	return ExactConstraint(0, o.n-1, total)
}

// FeasibleSolution returns integral prefix sums satisfying every accepted
// constraint with s[n-1] == total. The point is the componentwise largest
// feasible one, which is what shortest paths from the origin produce.
func (o *Optimizer) FeasibleSolution(total float64) ([]float64, error) {
	if o.n == 0 {
		return nil, nil
	}
	cs := append(o.Constraints(), o.totalConstraint(total))
	dist, ok := shortestPaths(o.n+1, buildEdges(cs), 0)
	if !ok {
		return nil, ErrInfeasible
	}
	x := make([]float64, o.n)
	for i := range x {
		d := dist[node(i)]
		if math.IsInf(d, 1) {
			return nil, ErrUnbounded
		}
		x[i] = d
	}
	return x, nil
}

// SizesFromPrefix converts integer prefix sums to element sizes.
func SizesFromPrefix(prefix []int) []int {
	sizes := make([]int, len(prefix))
	prev := 0
	for i, s := range prefix {
		sizes[i] = s - prev
		prev = s
	}
	return sizes
}
