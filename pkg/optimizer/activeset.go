package optimizer

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solve returns the real-valued prefix sums closest to desired (a vector of
// element sizes) in the least-squares sense:
//
//	minimize   sum_i (s[i] - s[i-1] - desired[i])^2
//	subject to every accepted constraint and s[n-1] == total
//
// start must be a feasible point for the same total, typically the result of
// [Optimizer.FeasibleSolution]. The method is a primal active-set iteration:
// the working set starts with every constraint that is tight at start, each
// iteration takes a null-space step restricted to the working set, blocks on
// the first inactive constraint it would cross, and drops the working
// constraint with the most negative Lagrange multiplier once the step
// vanishes.
func (o *Optimizer) Solve(start, desired []float64, total float64) ([]float64, error) {
	n := o.n
	if len(start) != n || len(desired) != n {
		return nil, fmt.Errorf("%w: start %d, desired %d, variables %d", ErrDimension, len(start), len(desired), n)
	}
	if n == 0 {
		return nil, nil
	}

	cs := append([]Constraint{o.totalConstraint(total)}, o.constraints...)
	scale := math.Max(1, math.Abs(total))
	tight := 1e-9 * scale

	x := slices.Clone(start)
	active := make([]bool, len(cs))
	for i, c := range cs {
		s := c.slack(x)
		if s < -tight || (c.Equality && math.Abs(s) > tight) {
			return nil, fmt.Errorf("%w: start violates %v by %g", ErrInfeasible, c, -s)
		}
		active[i] = c.Equality || s <= tight
	}

	hess := objectiveHessian(n)
	maxIter := 10*(n+len(cs)) + 100

	for range maxIter {
		working := workingIndices(cs, active)
		rows := make([][]float64, len(working))
		for j, ci := range working {
			rows[j] = cs[ci].row(n)
		}
		basis := independentRows(rows)
		basisRows := make([][]float64, len(basis))
		basisCons := make([]int, len(basis))
		for j, bi := range basis {
			basisRows[j] = rows[bi]
			basisCons[j] = working[bi]
		}

		ws := factorize(basisRows, n)
		grad := objectiveGradient(x, desired)

		p, err := ws.step(hess, grad)
		if err != nil {
			return nil, err
		}

		if p == nil || floats.Norm(p, 2) <= tight {
			lambda, err := ws.multipliers(grad)
			if err != nil {
				return nil, err
			}
			drop, most := -1, -1e-9*math.Max(1, floats.Norm(grad, math.Inf(1)))
			for j, ci := range basisCons {
				if cs[ci].Equality {
					continue
				}
				if lambda[j] < most {
					drop, most = ci, lambda[j]
				}
			}
			if drop < 0 {
				return x, nil
			}
			active[drop] = false
			continue
		}

		alpha, block := 1.0, -1
		for i, c := range cs {
			if active[i] || c.Equality {
				continue
			}
			ap := c.dot(p)
			if ap >= -tight {
				continue
			}
			if ratio := math.Max(0, c.slack(x)) / -ap; ratio < alpha {
				alpha, block = ratio, i
			}
		}

		floats.AddScaled(x, alpha, p)
		if block >= 0 {
			active[block] = true
		}
	}
	return nil, ErrNoProgress
}

// workingIndices returns the active constraint indices with equalities
// first, so that they survive the dependency filter.
func workingIndices(cs []Constraint, active []bool) []int {
	var eq, ineq []int
	for i, c := range cs {
		if !active[i] {
			continue
		}
		if c.Equality {
			eq = append(eq, i)
		} else {
			ineq = append(ineq, i)
		}
	}
	return append(eq, ineq...)
}

// objectiveHessian returns D^T D where D maps prefix sums to element sizes.
// The matrix is tridiagonal: 2 on the diagonal (1 in the last slot) and -1
// next to it.
func objectiveHessian(n int) *mat.SymDense {
	h := mat.NewSymDense(n, nil)
	for i := range n {
		d := 2.0
		if i == n-1 {
			d = 1
		}
		h.SetSym(i, i, d)
		if i+1 < n {
			h.SetSym(i, i+1, -1)
		}
	}
	return h
}

// objectiveGradient returns D^T (D x - desired).
func objectiveGradient(x, desired []float64) []float64 {
	n := len(x)
	r := make([]float64, n+1)
	prev := 0.0
	for i, s := range x {
		r[i] = s - prev - desired[i]
		prev = s
	}
	g := make([]float64, n)
	for i := range g {
		g[i] = r[i] - r[i+1]
	}
	return g
}
