package FV1D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofvm/utils"
)

type Side uint8

const (
	Left Side = iota
	Right
)

/*
System assembles the implicit terms of a steady transport equation over a
Grid1D into a tridiagonal matrix plus right hand side. Terms accumulate, so
the usual flow is SetDirichlet for the constrained boundaries, then the
terms, then Solve.

Boundary semantics follow the cell centered convention: a Dirichlet boundary
folds its face flux into the diagonal and the right hand side, while an
unconstrained boundary face contributes no flux at all. An outflow boundary
is closed by feeding Grid1D.RightFaceDivergence to AddImplicitSourceField
instead of constraining the face.
*/
type System struct {
	g     *Grid1D
	lower []float64 // coefficient of phi[i-1] in row i
	diag  []float64
	upper []float64 // coefficient of phi[i+1] in row i
	rhs   []float64

	bcKind  [2]utils.BCType
	bcValue [2]float64
}

func NewSystem(g *Grid1D) (sys *System) {
	sys = &System{
		g:     g,
		lower: make([]float64, g.K),
		diag:  make([]float64, g.K),
		upper: make([]float64, g.K),
		rhs:   make([]float64, g.K),
	}
	return
}

// SetDirichlet constrains the boundary face on the given side. Terms added
// afterwards fold the constraint into their boundary flux.
func (sys *System) SetDirichlet(side Side, value float64) *System {
	sys.bcKind[side] = utils.BC_Dirichlet
	sys.bcValue[side] = value
	return sys
}

// AddDiffusion adds the two point flux of a constant diffusivity gamma.
// Dirichlet faces sit half a cell from the center, hence their doubled
// conductance.
func (sys *System) AddDiffusion(gamma float64) *System {
	if gamma < 0 {
		panic(fmt.Errorf("negative diffusivity %v", gamma))
	}
	if gamma == 0 {
		return sys
	}
	var (
		K = sys.g.K
		D = gamma / sys.g.Dx
	)
	for i := 0; i < K-1; i++ {
		sys.diag[i] += D
		sys.upper[i] -= D
		sys.diag[i+1] += D
		sys.lower[i+1] -= D
	}
	Db := 2 * gamma / sys.g.Dx
	if sys.bcKind[Left] == utils.BC_Dirichlet {
		sys.diag[0] += Db
		sys.rhs[0] += Db * sys.bcValue[Left]
	}
	if sys.bcKind[Right] == utils.BC_Dirichlet {
		sys.diag[K-1] += Db
		sys.rhs[K-1] += Db * sys.bcValue[Right]
	}
	return sys
}

/*
AddConvection adds the face fluxes of a constant velocity u using the given
scheme. The scheme weight needs the face Peclet number, so gamma must be the
same diffusivity passed to AddDiffusion; with gamma zero every scheme except
the central one degenerates to pure upwinding.
*/
func (sys *System) AddConvection(u, gamma float64, scheme SchemeType) *System {
	var (
		K = sys.g.K
		F = u // unit face area
		D float64
	)
	if gamma > 0 {
		D = gamma / sys.g.Dx
	}

	cP, cN := faceCoefficients(F, D, scheme)
	for i := 0; i < K-1; i++ {
		sys.diag[i] += cP
		sys.upper[i] -= cN
		sys.diag[i+1] += cN
		sys.lower[i+1] -= cP
	}

	// Dirichlet boundary faces sit half a cell out
	var Db float64
	if gamma > 0 {
		Db = 2 * gamma / sys.g.Dx
	}
	if sys.bcKind[Left] == utils.BC_Dirichlet {
		cPb, cNb := faceCoefficients(F, Db, scheme)
		sys.diag[0] += cNb
		sys.rhs[0] += cPb * sys.bcValue[Left]
	}
	if sys.bcKind[Right] == utils.BC_Dirichlet {
		cPb, cNb := faceCoefficients(F, Db, scheme)
		sys.diag[K-1] += cPb
		sys.rhs[K-1] += cNb * sys.bcValue[Right]
	}
	return sys
}

/*
faceCoefficients is the flux stencil of a face in the flux form

	flux = cP phi_P - cN phi_N

with P the upstream side for positive F. The conductance D A(|Pe|) handles
the D = 0 limit explicitly: every upwinding scheme loses its diffusive part,
the central scheme keeps its signed half flux.
*/
func faceCoefficients(F, D float64, scheme SchemeType) (cP, cN float64) {
	var cond float64
	switch {
	case D > 0:
		cond = D * scheme.Weight(F/D)
	case scheme == Central:
		cond = -0.5 * math.Abs(F)
	}
	cP = cond + math.Max(F, 0)
	cN = cond + math.Max(-F, 0)
	return
}

// AddImplicitSource adds b phi, integrated over each cell, to the left hand
// side.
func (sys *System) AddImplicitSource(b float64) *System {
	for i := range sys.diag {
		sys.diag[i] += b * sys.g.Dx
	}
	return sys
}

// AddImplicitSourceField is AddImplicitSource with a per cell coefficient.
func (sys *System) AddImplicitSourceField(b utils.Vector) *System {
	if b.Len() != sys.g.K {
		panic(fmt.Errorf("source field has %d entries for %d cells", b.Len(), sys.g.K))
	}
	for i := range sys.diag {
		sys.diag[i] += b.DataP[i] * sys.g.Dx
	}
	return sys
}

// AddSource adds a constant source s, integrated over each cell, to the
// right hand side.
func (sys *System) AddSource(s float64) *System {
	for i := range sys.rhs {
		sys.rhs[i] += s * sys.g.Dx
	}
	return sys
}

// Solve factors the assembled tridiagonal system and returns the cell
// values.
func (sys *System) Solve() (phi utils.Vector, err error) {
	K := sys.g.K
	t := mat.NewTridiag(K, sys.lower[1:], sys.diag, sys.upper[:K-1])
	dst := mat.NewVecDense(K, nil)
	if err = t.SolveVecTo(dst, false, mat.NewVecDense(K, sys.rhs)); err != nil {
		err = fmt.Errorf("tridiagonal solve failed: %w", err)
		return
	}
	phi = utils.NewVector(K, dst.RawVector().Data)
	return
}
