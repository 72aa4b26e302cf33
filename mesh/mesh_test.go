package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid2D(t *testing.T) {
	{ // Counts and connectivity of a 2 x 3 grid
		m := NewGrid2D(2, 3, 0.5, 1./3., 0, 0)
		assert.Equal(t, 6, m.NumCells)
		assert.Equal(t, 12, m.NumVertices)
		assert.Equal(t, 17, m.NumFaces)

		s := m.Statistics()
		assert.Equal(t, 10, s.NumBoundaryFaces)
		assert.Equal(t, 7, s.NumInteriorFaces)
		assert.Equal(t, 6, s.NumQuads)
		assert.Equal(t, 0, s.NumTris)
		assert.InDelta(t, 1.0, s.TotalVolume, 1.e-12)
		assert.InDelta(t, 0.5/3., s.MinVolume, 1.e-12)
		assert.InDelta(t, 0.5/3., s.MaxVolume, 1.e-12)

		// Cell 0 sits in the lower left corner: boundary below and left,
		// cell 1 to the right, cell 2 above
		assert.Equal(t, []int{-1, 1, 2, -1}, m.EToE[0])
	}
	{ // Boundary tags
		m := NewGrid2D(4, 2, 0.25, 0.5, 1.0, 2.0)
		assert.Equal(t, 4, len(m.BoundaryFaces["bottom"]))
		assert.Equal(t, 4, len(m.BoundaryFaces["top"]))
		assert.Equal(t, 2, len(m.BoundaryFaces["left"]))
		assert.Equal(t, 2, len(m.BoundaryFaces["right"]))
		assert.Equal(t, 0, len(m.UntaggedBoundaryFaces()))

		xmin, xmax, ymin, ymax := m.BoundingBox()
		assert.InDelta(t, 1.0, xmin, 1.e-12)
		assert.InDelta(t, 2.0, xmax, 1.e-12)
		assert.InDelta(t, 2.0, ymin, 1.e-12)
		assert.InDelta(t, 3.0, ymax, 1.e-12)
	}
	{ // Boundary normals point outward
		m := NewGrid2D(3, 3, 1, 1, 0, 0)
		for _, fid := range m.BoundaryFaces["bottom"] {
			assert.InDelta(t, -1.0, m.Faces[fid].Normal[1], 1.e-12)
		}
		for _, fid := range m.BoundaryFaces["right"] {
			assert.InDelta(t, 1.0, m.Faces[fid].Normal[0], 1.e-12)
		}
	}
	{ // Interior face normals point from owner to neighbour
		m := NewGrid2D(2, 1, 1, 1, 0, 0)
		for _, face := range m.Faces {
			if face.Neighbour < 0 {
				continue
			}
			d := [2]float64{
				m.Centroids[face.Neighbour][0] - m.Centroids[face.Owner][0],
				m.Centroids[face.Neighbour][1] - m.Centroids[face.Owner][1],
			}
			dot := d[0]*face.Normal[0] + d[1]*face.Normal[1]
			assert.True(t, dot > 0)
		}
	}
	{ // Degenerate arguments panic
		assert.Panics(t, func() { NewGrid2D(0, 1, 1, 1, 0, 0) })
		assert.Panics(t, func() { NewGrid2D(1, 1, 0, 1, 0, 0) })
	}
}

func TestWeld(t *testing.T) {
	{ // Two 2 x 2 grids sharing a column weld into a 4 x 2 grid
		left := NewGrid2D(2, 2, 0.5, 0.5, 0, 0)
		right := NewGrid2D(2, 2, 0.5, 0.5, 1.0, 0)
		m, err := Weld(1.e-6, left, right)
		assert.NoError(t, err)
		assert.Equal(t, 8, m.NumCells)
		assert.Equal(t, 15, m.NumVertices)
		assert.Equal(t, 22, m.NumFaces)

		s := m.Statistics()
		assert.Equal(t, 12, s.NumBoundaryFaces)
		assert.Equal(t, 10, s.NumInteriorFaces)
		assert.InDelta(t, 2.0, s.TotalVolume, 1.e-12)

		// Euler identity for a subdivision of a disk
		assert.Equal(t, 1, m.NumVertices-m.NumFaces+m.NumCells)
	}
	{ // Seam vertices merge within the tolerance
		bottom := NewGrid2D(2, 1, 0.5, 0.5, 0, 0)
		top := NewGrid2D(2, 1, 0.5, 0.5, 1.e-9, 0.5)
		m, err := Weld(1.e-6, bottom, top)
		assert.NoError(t, err)
		assert.Equal(t, 4, m.NumCells)
		assert.Equal(t, 9, m.NumVertices)
	}
	{ // Vertices apart by more than the tolerance stay distinct
		bottom := NewGrid2D(1, 1, 1, 1, 0, 0)
		top := NewGrid2D(1, 1, 1, 1, 0.1, 1.0)
		m, err := Weld(1.e-6, bottom, top)
		assert.NoError(t, err)
		assert.Equal(t, 8, m.NumVertices)
	}
	{ // Argument validation
		var err error
		_, err = Weld(1.e-6)
		assert.Error(t, err)
		_, err = Weld(0, NewGrid2D(1, 1, 1, 1, 0, 0))
		assert.Error(t, err)
		_, err = Weld(1.e-6, NewMesh())
		assert.Error(t, err)
	}
	{ // Welding keeps cell winding intact
		left := NewGrid2D(1, 1, 1, 1, 0, 0)
		right := NewGrid2D(1, 1, 1, 1, 1, 0)
		m, err := Weld(1.e-6, left, right)
		assert.NoError(t, err)
		for c := range m.Cells {
			assert.True(t, m.Volumes[c] > 0)
		}
	}
}

func TestTriMeshStatistics(t *testing.T) {
	pts := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tris := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	m := NewTriMesh(pts, tris)
	assert.Equal(t, 2, m.NumCells)
	assert.Equal(t, 5, m.NumFaces)

	s := m.Statistics()
	assert.Equal(t, 2, s.NumTris)
	assert.Equal(t, 0, s.NumQuads)
	assert.Equal(t, 4, s.NumBoundaryFaces)
	assert.Equal(t, 1, s.NumInteriorFaces)
	assert.InDelta(t, 1.0, s.TotalVolume, 1.e-12)
	assert.InDelta(t, math.Sqrt2, s.MaxFaceArea, 1.e-12)

	gm, tri2cell := m.ToGraphics()
	assert.Equal(t, 2, len(gm.Triangles))
	assert.Equal(t, 4, len(gm.Geometry))
	assert.Equal(t, 2, len(tri2cell))
}
