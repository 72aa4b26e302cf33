package mesh

import (
	"fmt"

	"github.com/notargets/gofvm/geometry2D"
)

// DelaunayMesher is the in-process TransitionMesher. It seeds graded
// point rows across the band and triangulates them with a constrained
// Delaunay pass, so no external generator binary is involved.
type DelaunayMesher struct{}

func (DelaunayMesher) Mesh(band BandSpec) (m *Mesh, err error) {
	if band.X1 <= band.X0 || band.Y1 <= band.Y0 {
		err = fmt.Errorf("degenerate band [%g,%g] x [%g,%g]",
			band.X0, band.X1, band.Y0, band.Y1)
		return
	}
	if band.H0 <= 0 || band.H1 < band.H0 {
		err = fmt.Errorf("band spacing must grade from fine to coarse, have h0 %g, h1 %g",
			band.H0, band.H1)
		return
	}
	b := geometry2D.Band{
		X0: band.X0, X1: band.X1,
		Y0: band.Y0, Y1: band.Y1,
		H0: band.H0, H1: band.H1,
	}
	pts, tris := b.Triangulate()
	m = NewTriMesh(pts, tris)
	return
}
