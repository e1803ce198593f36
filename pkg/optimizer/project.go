package optimizer

import (
	"fmt"
	"math"
)

// snapEps is how close a real prefix sum must be to the next integer to be
// rounded up instead of down.
const snapEps = 1e-6

// Project rounds real prefix sums to integers such that every accepted
// constraint and s[n-1] == total still hold.
//
// Each prefix sum is floored, snapping up when it lies within snapEps of the
// next integer. Flooring preserves every difference constraint with an
// integral bound that the real solution satisfied, so the repair step below
// only fires on numerical noise: it picks the violated constraint with the
// largest deficit and moves one of its two variables by one unit toward the
// bound, recursing and undoing the move if the branch fails. A variable can
// be raised to its ceiling or lowered back to its unsnapped floor, and moves
// at most once, which bounds the depth by n. The number of moves tried is
// capped as well.
func (o *Optimizer) Project(solution []float64, total int) ([]int, error) {
	if len(solution) != o.n {
		return nil, fmt.Errorf("%w: solution %d, variables %d", ErrDimension, len(solution), o.n)
	}
	p := &projector{
		floor:       make([]int, o.n),
		low:         make([]int, o.n),
		ceil:        make([]int, o.n),
		moved:       make([]bool, o.n),
		steps:       maxRepairSteps(o.n),
		constraints: append(o.Constraints(), o.totalConstraint(float64(total))),
	}
	for i, v := range solution {
		p.floor[i] = int(math.Floor(v + snapEps))
		p.low[i] = min(p.floor[i], int(math.Floor(v)))
		p.ceil[i] = max(p.floor[i], int(math.Ceil(v-snapEps)))
	}
	if o.n > 0 {
		// The total is exact by construction.
		p.floor[o.n-1] = total
		p.low[o.n-1] = total
		p.ceil[o.n-1] = total
	}
	if !p.repair() {
		return nil, ErrNoIntegerSolution
	}
	return p.floor, nil
}

type projector struct {
	floor       []int // current integer assignment
	low         []int // per-variable lower limit for repairs
	ceil        []int // per-variable upper limit for repairs
	moved       []bool
	steps       int // remaining moves the search may try
	constraints []Constraint
}

// maxRepairSteps caps the backtracking search for n variables.
func maxRepairSteps(n int) int {
	return 8*n + 64
}

// move is a unit change of one variable.
type move struct {
	idx   int
	delta int
}

// mostViolated returns the index of the constraint with the largest integer
// deficit, or -1 when all hold. For equalities the deficit is the absolute
// distance to the bound.
func (p *projector) mostViolated() (int, int) {
	worst, deficit := -1, 0
	for i, c := range p.constraints {
		v := c.evalInt(p.floor)
		bound := int(math.Round(c.Value))
		d := bound - v
		if c.Equality && d < 0 {
			d = -d
		}
		if d > deficit {
			worst, deficit = i, d
		}
	}
	return worst, deficit
}

// repair runs the bounded backtracking search.
func (p *projector) repair() bool {
	worst, _ := p.mostViolated()
	if worst < 0 {
		return true
	}

	c := p.constraints[worst]
	v := c.evalInt(p.floor)
	bound := int(math.Round(c.Value))

	// Raising s[Right] or lowering s[Left] increases the constrained
	// difference. An equality above its bound needs the opposite.
	up, down := c.Right, c.Left
	if c.Equality && v > bound {
		up, down = c.Left, c.Right
	}

	var candidates []move
	if up >= 0 && !p.moved[up] && p.floor[up] < p.ceil[up] {
		candidates = append(candidates, move{up, 1})
	}
	if down >= 0 && !p.moved[down] && p.floor[down] > p.low[down] {
		candidates = append(candidates, move{down, -1})
	}

	for _, m := range candidates {
		if p.steps == 0 {
			return false
		}
		p.steps--
		p.floor[m.idx] += m.delta
		p.moved[m.idx] = true
		if p.repair() {
			return true
		}
		p.moved[m.idx] = false
		p.floor[m.idx] -= m.delta
	}
	return false
}
