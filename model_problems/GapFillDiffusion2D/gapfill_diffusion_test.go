package GapFillDiffusion2D

import (
	"path/filepath"
	"testing"

	"github.com/notargets/gofvm/FV2D"
	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/mesh/readers"
	"github.com/stretchr/testify/assert"
)

var refParams = mesh.GapFillParams{
	CellSize:                0.1,
	DesiredDomainWidth:      1.0,
	DesiredDomainHeight:     5.0,
	DesiredFineRegionHeight: 1.0,
	TransitionRegionHeight:  2.0,
}

func TestGapFillDiffusion(t *testing.T) {
	d, err := NewDiffusion(refParams, 1, nil)
	assert.NoError(t, err)
	{ // Composite cell count window
		assert.True(t, 136 < d.GFM.NumCells)
		assert.True(t, d.GFM.NumCells < 300)
	}
	iterations, err := d.Solve()
	assert.NoError(t, err)
	assert.True(t, iterations > 0)
	{ // Agreement with the linear profile across the region seams
		assert.True(t, d.MaxError() < 0.1)
		assert.True(t, d.RMSError() < 0.05)
		assert.True(t, d.RMSError() <= d.MaxError())
	}
	{ // Boundary values bound the interior
		assert.True(t, d.Phi.Values.Min() > 0)
		assert.True(t, d.Phi.Values.Max() < refParams.DesiredDomainHeight)
	}
	{ // Vertex interpolation used by the surface plot
		vv := d.Phi.VertexValues()
		assert.Equal(t, d.GFM.NumVertices, len(vv))
		for _, v := range vv {
			assert.True(t, v >= 0)
			assert.True(t, v <= float32(refParams.DesiredDomainHeight))
		}
	}
}

func TestGapFillDiffusionMeshFile(t *testing.T) {
	d, err := NewDiffusion(refParams, 1, nil)
	assert.NoError(t, err)
	fileName := filepath.Join(t.TempDir(), "gapfill.msh")
	d.SaveMesh(fileName)

	m, err := readers.ReadMeshFile(fileName)
	assert.NoError(t, err)
	assert.Equal(t, d.GFM.NumCells, m.NumCells)
	assert.Equal(t, d.GFM.NumVertices, m.NumVertices)

	// The reloaded mesh carries the boundary names and solves to the same
	// profile
	l := FV2D.NewLaplace(m, 1)
	assert.NoError(t, l.Dirichlet("bottom", 0))
	assert.NoError(t, l.Dirichlet("top", refParams.DesiredDomainHeight))
	phi, _, err := l.Solve(1.e-12, 4*m.NumCells)
	assert.NoError(t, err)
	maxRel := phi.MaxRelativeError(func(x, y float64) float64 { return y })
	assert.True(t, maxRel < 0.1)
}
