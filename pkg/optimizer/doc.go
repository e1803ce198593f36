// Package optimizer finds integer element sizes along one layout axis.
//
// # Overview
//
// The optimizer works on prefix sums rather than on element sizes. For an axis
// with n elements, variable i holds the extent of elements 0..i, so element i
// has size s[i] - s[i-1] (with the implicit origin s[-1] = 0). A bound on the
// combined size of a contiguous element range [first, last] then only touches
// two variables:
//
//	s[last] - s[first-1] >= min
//	s[first-1] - s[last] >= -max
//
// This turns every layout constraint into a difference constraint, which keeps
// the problem small and makes feasibility a shortest-path question.
//
// # Pipeline
//
//  1. Constraints are registered with [Optimizer.AddConstraint]. A constraint
//     is only accepted if the accumulated system stays feasible, so callers can
//     detect conflicts at registration time and relax them.
//  2. [Optimizer.FeasibleSolution] produces an integer starting point for a
//     given total using Bellman-Ford shortest paths.
//  3. [Optimizer.Solve] runs a primal active-set method (null-space variant)
//     that moves the starting point to the feasible point closest to a desired
//     size vector in the least-squares sense.
//  4. [Optimizer.Project] rounds the real-valued prefix sums back to integers
//     without violating any integer constraint.
//
// # Numerical Kernels
//
// The null-space basis and Lagrange multipliers come from a QR factorization of
// the transposed working-set matrix, and the reduced Hessian is solved by
// Cholesky, both via gonum/mat. Matrices are dense and tiny (one row or column
// per element), so no sparse machinery is needed.
package optimizer
