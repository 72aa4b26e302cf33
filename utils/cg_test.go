package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConjugateGradient(t *testing.T) {
	{ // 1D Laplacian with unit RHS has a known quadratic solution
		var (
			n = 50
		)
		A := NewDOK(n, n)
		for i := 0; i < n; i++ {
			A.Add(i, i, 2)
			if i > 0 {
				A.Add(i, i-1, -1)
			}
			if i < n-1 {
				A.Add(i, i+1, -1)
			}
		}
		b := ConstArray(n, 1)
		x, iter, err := A.ToCSR().ConjugateGradient(b, 1.e-12, 10*n)
		assert.NoError(t, err)
		assert.True(t, iter <= 2*n)
		// Exact: x_i = (i+1)(n-i)/2 for the discrete operator
		for i := 0; i < n; i++ {
			exact := 0.5 * float64(i+1) * float64(n-i)
			assert.True(t, near(x[i], exact))
		}
	}
	{ // Agreement with a dense solve on a small SPD system
		var (
			n = 8
		)
		A := NewDOK(n, n)
		D := NewMatrix(n, n)
		for i := 0; i < n; i++ {
			A.Add(i, i, float64(4+i))
			D.Set(i, i, float64(4+i))
			if i < n-1 {
				A.Add(i, i+1, -1)
				A.Add(i+1, i, -1)
				D.Set(i, i+1, -1)
				D.Set(i+1, i, -1)
			}
		}
		b := make([]float64, n)
		for i := range b {
			b[i] = float64(i%3) - 1
		}
		x, _, err := A.ToCSR().ConjugateGradient(b, 1.e-14, 100)
		assert.NoError(t, err)
		xDense := NewVector(n)
		err = xDense.V.SolveVec(D.M, NewVector(n, b).V)
		assert.NoError(t, err)
		diff := NewVector(n, x).Subtract(xDense).Apply(math.Abs).Max()
		assert.Less(t, diff, 1.e-10)
	}
	{ // Residual monitor fires once per iteration and decreases overall
		var (
			n      = 20
			resids []float64
		)
		A := NewDOK(n, n)
		for i := 0; i < n; i++ {
			A.Add(i, i, 2)
			if i > 0 {
				A.Add(i, i-1, -1)
			}
			if i < n-1 {
				A.Add(i, i+1, -1)
			}
		}
		b := ConstArray(n, 1)
		_, iter, err := A.ToCSR().ConjugateGradient(b, 1.e-10, 10*n,
			func(it int, resid float64) {
				resids = append(resids, resid)
			})
		assert.NoError(t, err)
		assert.Equal(t, iter, len(resids))
		assert.Less(t, resids[len(resids)-1], resids[0])
	}
	{ // Zero RHS returns the zero vector without iterating
		A := NewDOK(2, 2)
		A.Add(0, 0, 1)
		A.Add(1, 1, 1)
		x, iter, err := A.ToCSR().ConjugateGradient([]float64{0, 0}, 1.e-12, 10)
		assert.NoError(t, err)
		assert.Equal(t, 0, iter)
		assert.Equal(t, []float64{0, 0}, x)
	}
}

func TestSparse(t *testing.T) {
	{ // Accumulating assembly and matvec
		A := NewDOK(3, 3)
		A.Add(0, 0, 1)
		A.Add(0, 0, 1)
		A.Add(1, 1, 3)
		A.Add(2, 0, -1)
		A.Add(2, 2, 5)
		csr := A.ToCSR()
		assert.Equal(t, 2., csr.At(0, 0))
		y := make([]float64, 3)
		csr.MulVec([]float64{1, 2, 3}, y)
		assert.Equal(t, []float64{2, 6, 14}, y)
		assert.Equal(t, []float64{2, 3, 5}, csr.Diagonal())
	}
}

func near(a, b float64) bool {
	bound := math.Max(1.e-08*math.Abs(a), 1.e-10)
	return math.Abs(a-b) <= bound
}
