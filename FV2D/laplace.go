package FV2D

import (
	"fmt"
	"math"

	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/utils"
)

/*
Laplace assembles the two point flux approximation of a steady diffusion
operator over a cell centered mesh: each interior face contributes the
conductance gamma A / d between its two cells, with d the distance between
their centroids. Dirichlet boundaries fold into the diagonal and right hand
side over the centroid to face midpoint distance; unconstrained boundary
faces carry no flux.

At least one Dirichlet boundary is needed to make the system definite.
*/
type Laplace struct {
	Msh   *mesh.Mesh
	Gamma float64

	A   utils.DOK
	rhs []float64
}

func NewLaplace(msh *mesh.Mesh, gamma float64) (l *Laplace) {
	if gamma <= 0 {
		panic(fmt.Errorf("diffusivity must be positive, have %v", gamma))
	}
	l = &Laplace{
		Msh:   msh,
		Gamma: gamma,
		A:     utils.NewDOK(msh.NumCells, msh.NumCells),
		rhs:   make([]float64, msh.NumCells),
	}
	l.assembleInterior()
	return
}

func (l *Laplace) assembleInterior() {
	for fid := range l.Msh.Faces {
		face := &l.Msh.Faces[fid]
		if face.Neighbour < 0 {
			continue
		}
		var (
			o, n = face.Owner, face.Neighbour
			d    = distance(l.Msh.Centroids[o], l.Msh.Centroids[n])
		)
		if d == 0 {
			panic(fmt.Errorf("cells %d and %d share a centroid", o, n))
		}
		c := l.Gamma * face.Area / d
		l.A.Add(o, o, c)
		l.A.Add(o, n, -c)
		l.A.Add(n, n, c)
		l.A.Add(n, o, -c)
	}
}

// Dirichlet constrains every face of the named boundary to the given value.
func (l *Laplace) Dirichlet(tag string, value float64) error {
	faces, ok := l.Msh.BoundaryFaces[tag]
	if !ok {
		return fmt.Errorf("mesh has no boundary named %q", tag)
	}
	for _, fid := range faces {
		face := l.Msh.Faces[fid]
		var (
			o = face.Owner
			d = distance(l.Msh.Centroids[o], face.Midpoint)
			c = l.Gamma * face.Area / d
		)
		l.A.Add(o, o, c)
		l.rhs[o] += c * value
	}
	return nil
}

// AddSource adds s integrated over each cell to the right hand side.
func (l *Laplace) AddSource(s float64) {
	for i := range l.rhs {
		l.rhs[i] += s * l.Msh.Volumes[i]
	}
}

/*
Solve finalizes the assembly into compressed sparse rows and runs the
preconditioned conjugate gradient down to the relative residual tol. The
optional monitor receives every iteration.
*/
func (l *Laplace) Solve(tol float64, maxIter int, monitor ...func(iter int, resid float64)) (phi Field, iter int, err error) {
	var x []float64
	csr := l.A.ToCSR()
	if x, iter, err = csr.ConjugateGradient(l.rhs, tol, maxIter, monitor...); err != nil {
		return
	}
	phi = NewField(l.Msh, utils.NewVector(len(x), x))
	return
}

func distance(p, q [2]float64) float64 {
	return math.Hypot(p[0]-q[0], p[1]-q[1])
}
