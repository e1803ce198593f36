package optimizer

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// dependencyEps is the relative residual below which a row is treated as a
// linear combination of the rows kept before it.
const dependencyEps = 1e-10

// independentRows returns the indices of a maximal linearly independent
// subset of rows, preferring earlier rows. It runs modified Gram-Schmidt on
// copies of the rows.
func independentRows(rows [][]float64) []int {
	basis := make([][]float64, 0, len(rows))
	keep := make([]int, 0, len(rows))
	for i, row := range rows {
		scale := floats.Norm(row, 2)
		if scale == 0 {
			continue
		}
		v := slices.Clone(row)
		for _, b := range basis {
			floats.AddScaled(v, -floats.Dot(v, b), b)
		}
		norm := floats.Norm(v, 2)
		if norm <= dependencyEps*scale {
			continue
		}
		floats.Scale(1/norm, v)
		basis = append(basis, v)
		keep = append(keep, i)
	}
	return keep
}

// workingSet holds the QR factorization of the transposed working-set
// matrix A^T = [Y Z] [R; 0]. Z spans the null space of A.
type workingSet struct {
	n, k int
	qr   mat.QR
	z    *mat.Dense
}

// factorize builds the working-set factorization for k independent rows of
// length n (k <= n).
func factorize(rows [][]float64, n int) *workingSet {
	ws := &workingSet{n: n, k: len(rows)}
	if ws.k == 0 {
		ws.z = identity(n)
		return ws
	}

	at := mat.NewDense(n, ws.k, nil)
	for j, row := range rows {
		for i, v := range row {
			at.Set(i, j, v)
		}
	}
	ws.qr.Factorize(at)

	if ws.k < n {
		var q mat.Dense
		ws.qr.QTo(&q)
		ws.z = mat.DenseCopyOf(q.Slice(0, n, ws.k, n))
	}
	return ws
}

// step returns the null-space Newton step p = Z p_Z where
// (Z^T G Z) p_Z = -Z^T g. A nil step means the null space is trivial.
func (ws *workingSet) step(hess *mat.SymDense, grad []float64) ([]float64, error) {
	if ws.z == nil {
		return nil, nil
	}
	_, m := ws.z.Dims()

	var gz, reduced mat.Dense
	gz.Mul(hess, ws.z)
	reduced.Mul(ws.z.T(), &gz)

	sym := mat.NewSymDense(m, nil)
	for i := range m {
		for j := i; j < m; j++ {
			sym.SetSym(i, j, (reduced.At(i, j)+reduced.At(j, i))/2)
		}
	}

	var rhs mat.VecDense
	rhs.MulVec(ws.z.T(), mat.NewVecDense(len(grad), slices.Clone(grad)))
	rhs.ScaleVec(-1, &rhs)

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, errors.New("optimizer: reduced Hessian is not positive definite")
	}
	var pz mat.VecDense
	if err := chol.SolveVecTo(&pz, &rhs); err != nil && !isCondition(err) {
		return nil, err
	}

	var p mat.VecDense
	p.MulVec(ws.z, &pz)
	return vecData(&p), nil
}

// multipliers solves A^T lambda = g in the least-squares sense using the
// stored factorization.
func (ws *workingSet) multipliers(grad []float64) ([]float64, error) {
	if ws.k == 0 {
		return nil, nil
	}
	var lambda mat.VecDense
	g := mat.NewVecDense(len(grad), slices.Clone(grad))
	if err := ws.qr.SolveVecTo(&lambda, false, g); err != nil && !isCondition(err) {
		return nil, err
	}
	return vecData(&lambda), nil
}

// isCondition reports whether err only warns about conditioning; the result
// is still usable in that case.
func isCondition(err error) bool {
	var cond mat.Condition
	return errors.As(err, &cond)
}

func identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := range n {
		id.Set(i, i, 1)
	}
	return id
}

func vecData(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
