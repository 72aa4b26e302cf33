package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		M: sparse.NewDOK(nr, nc),
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) {
	m.M.Set(i, j, val)
}

// Add accumulates val into entry (i,j), the access pattern of flux assembly
// where each face contributes to the rows of both adjacent cells.
func (m DOK) Add(i, j int, val float64) {
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M: m.M.ToCSR(),
	}
}

type CSR struct {
	M *sparse.CSR
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }

// MulVec computes y = A*x using the raw CSR storage.
func (m CSR) MulVec(x, y []float64) {
	var (
		raw = m.RawMatrix()
	)
	if len(x) != raw.J || len(y) != raw.I {
		err := fmt.Errorf("dimension mismatch in MulVec: matrix is %dx%d, len(x) = %d, len(y) = %d",
			raw.I, raw.J, len(x), len(y))
		panic(err)
	}
	for i := 0; i < raw.I; i++ {
		var sum float64
		for jj := raw.Indptr[i]; jj < raw.Indptr[i+1]; jj++ {
			sum += raw.Data[jj] * x[raw.Ind[jj]]
		}
		y[i] = sum
	}
}

// Diagonal extracts the matrix diagonal, used for Jacobi preconditioning.
func (m CSR) Diagonal() (d []float64) {
	var (
		raw = m.RawMatrix()
	)
	if raw.I != raw.J {
		err := fmt.Errorf("diagonal of non-square matrix: %dx%d", raw.I, raw.J)
		panic(err)
	}
	d = make([]float64, raw.I)
	for i := 0; i < raw.I; i++ {
		for jj := raw.Indptr[i]; jj < raw.Indptr[i+1]; jj++ {
			if raw.Ind[jj] == i {
				d[i] = raw.Data[jj]
				break
			}
		}
	}
	return
}

func (m CSR) NNZ() int {
	return m.M.NNZ()
}
