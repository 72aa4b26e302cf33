package utils

import (
	"fmt"
	"math"
)

/*
ConjugateGradient solves A*x = b for x, where A is symmetric positive definite
in CSR form, using Jacobi (diagonal) preconditioning.

Convergence is declared when ||r|| / ||b|| <= tol. The monitor callback, when
provided, is invoked once per iteration with the iteration count and the
current relative residual.
*/
func (m CSR) ConjugateGradient(b []float64, tol float64, maxIter int,
	monitor ...func(iter int, resid float64)) (x []float64, iter int, err error) {
	var (
		raw = m.RawMatrix()
		n   = raw.I
	)
	if raw.I != raw.J {
		err = fmt.Errorf("conjugate gradient requires a square matrix, have %dx%d", raw.I, raw.J)
		return
	}
	if len(b) != n {
		err = fmt.Errorf("dimension mismatch: matrix is %dx%d, len(b) = %d", raw.I, raw.J, len(b))
		return
	}
	var (
		x0    = make([]float64, n)
		r     = make([]float64, n)
		z     = make([]float64, n)
		p     = make([]float64, n)
		q     = make([]float64, n)
		diag  = m.Diagonal()
		bnorm = norm2(b)
	)
	x = x0
	if bnorm == 0 {
		// Zero RHS admits only the zero solution for SPD A
		return
	}
	for i := range diag {
		if diag[i] == 0 {
			err = fmt.Errorf("zero diagonal entry at row %d, matrix is not SPD", i)
			return
		}
	}
	copy(r, b)
	for i := range z {
		z[i] = r[i] / diag[i]
	}
	copy(p, z)
	rho := dot(r, z)
	for iter = 1; iter <= maxIter; iter++ {
		m.MulVec(p, q)
		alpha := rho / dot(p, q)
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * q[i]
		}
		resid := norm2(r) / bnorm
		for _, mon := range monitor {
			mon(iter, resid)
		}
		if resid <= tol {
			return
		}
		for i := range z {
			z[i] = r[i] / diag[i]
		}
		rhoNew := dot(r, z)
		beta := rhoNew / rho
		rho = rhoNew
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}
	err = fmt.Errorf("conjugate gradient failed to converge in %d iterations, resid = %v",
		maxIter, norm2(r)/bnorm)
	return
}

func dot(a, b []float64) (d float64) {
	for i, val := range a {
		d += val * b[i]
	}
	return
}

func norm2(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}
