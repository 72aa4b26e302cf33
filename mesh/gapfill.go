package mesh

import (
	"fmt"
)

/*
GapFillMesh glues three meshes together to form a composite mesh for
tall, thin gap fill domains. The first is a fine Grid2D covering the
area around the trench or via. The second is an unstructured transition
band that grades the mesh spacing from fine to coarse. The third is a
single column of very large cells forming the boundary layer above the
transition, used only for the diffusion there.
*/

// GapFillParams are the physical sizing inputs. Desired dimensions are
// rounded down to whole cells, the realized dimensions come out of
// Sizes.
type GapFillParams struct {
	CellSize                float64 // cell size in the fine grid
	DesiredDomainWidth      float64
	DesiredDomainHeight     float64
	DesiredFineRegionHeight float64
	TransitionRegionHeight  float64
}

// GapFillSizes holds the discrete dimensions derived from GapFillParams.
type GapFillSizes struct {
	Nx, Ny                     int     // fine region cell counts
	DomainWidth                float64 // Nx * CellSize
	FineRegionHeight           float64 // Ny * CellSize
	BoundaryLayerHeight        float64
	NumberOfBoundaryLayerCells int
}

// Sizes derives the cell counts and realized dimensions. Counts truncate
// toward zero, so the realized width and fine region height never exceed
// the desired ones. The boundary layer takes whatever height remains
// above the transition region, cut into cells as tall as the domain is
// wide.
func (gp GapFillParams) Sizes() (s GapFillSizes, err error) {
	if gp.CellSize <= 0 {
		err = fmt.Errorf("cell size must be positive, have %g", gp.CellSize)
		return
	}
	s.Nx = int(gp.DesiredDomainWidth / gp.CellSize)
	s.Ny = int(gp.DesiredFineRegionHeight / gp.CellSize)
	if s.Nx < 1 || s.Ny < 1 {
		err = fmt.Errorf("cell size %g does not fit the %g x %g fine region",
			gp.CellSize, gp.DesiredDomainWidth, gp.DesiredFineRegionHeight)
		return
	}
	s.FineRegionHeight = float64(s.Ny) * gp.CellSize
	s.DomainWidth = float64(s.Nx) * gp.CellSize
	s.BoundaryLayerHeight = gp.DesiredDomainHeight - s.FineRegionHeight - gp.TransitionRegionHeight
	if s.BoundaryLayerHeight <= 0 {
		err = fmt.Errorf("fine region %g plus transition region %g leave no boundary layer below the domain height %g",
			s.FineRegionHeight, gp.TransitionRegionHeight, gp.DesiredDomainHeight)
		return
	}
	s.NumberOfBoundaryLayerCells = int(s.BoundaryLayerHeight / s.DomainWidth)
	if s.NumberOfBoundaryLayerCells < 1 {
		err = fmt.Errorf("boundary layer height %g is thinner than one cell of width %g",
			s.BoundaryLayerHeight, s.DomainWidth)
		return
	}
	return
}

// BandSpec describes a transition band for a TransitionMesher: the
// rectangle [X0,X1] x [Y0,Y1], meshed with spacing grading from H0 along
// the bottom edge to H1 along the top edge.
type BandSpec struct {
	X0, X1 float64
	Y0, Y1 float64
	H0, H1 float64
}

// TransitionMesher produces the unstructured transition band. The bottom
// edge of the returned mesh must carry a vertex at every multiple of H0
// and the top edge at every multiple of H1, so the band welds onto the
// structured regions above and below it.
type TransitionMesher interface {
	Mesh(band BandSpec) (*Mesh, error)
}

// GapFillMesh is the welded composite. FineMesh keeps the structured
// fine region as a standalone mesh, callers interpolate trench fields
// onto it.
type GapFillMesh struct {
	*Mesh
	FineMesh *Mesh
	Sizes    GapFillSizes
}

// NewGapFillMesh builds the fine grid, the transition band and the
// boundary layer, welds them into one mesh and tags the outer boundary
// faces bottom, top, left and right. A nil mesher selects the in-process
// Delaunay mesher.
func NewGapFillMesh(gp GapFillParams, tm TransitionMesher) (gfm *GapFillMesh, err error) {
	var (
		s               GapFillSizes
		band, composite *Mesh
	)
	if s, err = gp.Sizes(); err != nil {
		return
	}
	if tm == nil {
		tm = DelaunayMesher{}
	}
	fine := NewGrid2D(s.Nx, s.Ny, gp.CellSize, gp.CellSize, 0, 0)
	if band, err = tm.Mesh(BandSpec{
		X0: 0, X1: s.DomainWidth,
		Y0: s.FineRegionHeight, Y1: s.FineRegionHeight + gp.TransitionRegionHeight,
		H0: gp.CellSize, H1: s.DomainWidth,
	}); err != nil {
		err = fmt.Errorf("unable to mesh the transition band: %w", err)
		return
	}
	bl := NewExtrudedLayer(s.FineRegionHeight+gp.TransitionRegionHeight,
		s.DomainWidth, s.BoundaryLayerHeight, s.NumberOfBoundaryLayerCells)

	// Grid vertices land on i*CellSize one way and Width*i/Nx the other,
	// apart by an ulp. The tolerance only has to cover that.
	weldTol := gp.CellSize * 1.e-6
	if composite, err = Weld(weldTol, fine, band, bl); err != nil {
		err = fmt.Errorf("unable to weld the composite mesh: %w", err)
		return
	}
	composite.TagOuterBox(weldTol)
	if orphans := composite.UntaggedBoundaryFaces(); len(orphans) != 0 {
		err = fmt.Errorf("%d boundary faces lie off the outer box, region seams did not weld", len(orphans))
		return
	}
	gfm = &GapFillMesh{Mesh: composite, FineMesh: fine, Sizes: s}
	return
}

// NewExtrudedLayer returns a single column of n quad cells of the given
// width spanning [y0, y0+height], the shape an Extrude/Layers/Recombine
// region produces.
func NewExtrudedLayer(y0, width, height float64, n int) (m *Mesh) {
	if n < 1 {
		panic(fmt.Errorf("extruded layer needs at least one cell, have %d", n))
	}
	return NewGrid2D(1, n, width, height/float64(n), 0, y0)
}
