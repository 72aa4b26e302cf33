package FV2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/utils"
)

func TestLaplaceLinearExact(t *testing.T) {
	// A vertical gradient between fixed bottom and top values is linear,
	// and the two point flux on an orthogonal grid reproduces it exactly
	m := mesh.NewGrid2D(4, 4, 0.25, 0.25, 0, 0)
	l := NewLaplace(m, 1.0)
	assert.NoError(t, l.Dirichlet("bottom", 0))
	assert.NoError(t, l.Dirichlet("top", 1))

	phi, iter, err := l.Solve(1.e-12, 1000)
	assert.NoError(t, err)
	assert.True(t, iter > 0)

	for c, centroid := range m.Centroids {
		assert.InDelta(t, centroid[1], phi.Values.DataP[c], 1.e-9)
	}

	exact := func(x, y float64) float64 { return y }
	assert.Less(t, phi.MaxRelativeError(exact), 1.e-7)
	assert.Less(t, phi.GlobalRelativeError(exact), 1.e-7)
	assert.Less(t, phi.MaxAbsoluteError(exact), 1.e-9)
}

func TestLaplaceMatchesDenseSolve(t *testing.T) {
	var (
		m = mesh.NewGrid2D(3, 2, 1./3., 0.5, 0, 0)
		n = m.NumCells
		l = NewLaplace(m, 2.0)
	)
	assert.NoError(t, l.Dirichlet("left", 2))
	assert.NoError(t, l.Dirichlet("right", 5))

	// Mirror the assembled operator densely and solve directly
	var (
		D = utils.NewMatrix(n, n)
		b = utils.NewVector(n)
	)
	for i := 0; i < n; i++ {
		b.DataP[i] = l.rhs[i]
		for j := 0; j < n; j++ {
			D.Set(i, j, l.A.At(i, j))
		}
	}
	xDense := utils.NewVector(n)
	assert.NoError(t, xDense.V.SolveVec(D.M, b.V))

	phi, _, err := l.Solve(1.e-14, 10*n)
	assert.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.InDelta(t, xDense.DataP[i], phi.Values.DataP[i], 1.e-9)
	}
}

func TestLaplaceOnTriangles(t *testing.T) {
	// Solve across a graded triangle band and check the discrete maximum
	// principle: the solution stays inside the boundary values
	band, err := mesh.DelaunayMesher{}.Mesh(mesh.BandSpec{
		X0: 0, X1: 1, Y0: 1, Y1: 3, H0: 0.1, H1: 1,
	})
	assert.NoError(t, err)
	band.TagOuterBox(1.e-9)

	l := NewLaplace(band, 1.0)
	assert.NoError(t, l.Dirichlet("bottom", 1))
	assert.NoError(t, l.Dirichlet("top", 3))

	phi, _, err := l.Solve(1.e-10, 10*band.NumCells)
	assert.NoError(t, err)
	assert.True(t, phi.Values.Min() > 1-1.e-8)
	assert.True(t, phi.Values.Max() < 3+1.e-8)
}

func TestDirichletUnknownTag(t *testing.T) {
	m := mesh.NewGrid2D(2, 2, 0.5, 0.5, 0, 0)
	l := NewLaplace(m, 1.0)
	assert.Error(t, l.Dirichlet("inlet", 1))
	assert.Panics(t, func() { NewLaplace(m, 0) })
}

func TestFieldMetrics(t *testing.T) {
	m := mesh.NewGrid2D(2, 1, 0.5, 1, 0, 0)
	f := NewField(m, utils.NewVector(2, []float64{1, 2}))
	exact := func(x, y float64) float64 { return 2 }

	loc := f.LocalSquaredRelativeErrors(exact)
	assert.InDelta(t, 0.25, loc.DataP[0], 1.e-12)
	assert.InDelta(t, 0.0, loc.DataP[1], 1.e-12)
	assert.InDelta(t, 0.5, f.MaxRelativeError(exact), 1.e-12)
	assert.InDelta(t, math.Sqrt(0.125), f.GlobalRelativeError(exact), 1.e-12)
	assert.InDelta(t, 1.0, f.MaxAbsoluteError(exact), 1.e-12)

	assert.Panics(t, func() { NewField(m, utils.NewVector(3)) })
}

func TestLaplaceSourceTerm(t *testing.T) {
	// With a unit source and zero boundaries everywhere the solution is
	// positive inside and symmetric across the domain center
	m := mesh.NewGrid2D(5, 5, 0.2, 0.2, 0, 0)
	l := NewLaplace(m, 1.0)
	for _, tag := range []string{"bottom", "top", "left", "right"} {
		assert.NoError(t, l.Dirichlet(tag, 0))
	}
	l.AddSource(1.0)

	phi, _, err := l.Solve(1.e-12, 1000)
	assert.NoError(t, err)
	assert.True(t, phi.Values.Min() > 0)

	// Center cell dominates
	center := phi.Values.DataP[12]
	assert.InDelta(t, center, phi.Values.Max(), 1.e-12)
	// Corner symmetry
	assert.InDelta(t, phi.Values.DataP[0], phi.Values.DataP[24], 1.e-9)
	assert.InDelta(t, phi.Values.DataP[4], phi.Values.DataP[20], 1.e-9)
}
