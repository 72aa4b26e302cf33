package FV2D

import (
	"fmt"
	"math"

	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/utils"
)

// Field holds one value per cell of a mesh.
type Field struct {
	Msh    *mesh.Mesh
	Values utils.Vector
}

func NewField(msh *mesh.Mesh, values utils.Vector) Field {
	if values.Len() != msh.NumCells {
		panic(fmt.Errorf("field has %d values for %d cells", values.Len(), msh.NumCells))
	}
	return Field{Msh: msh, Values: values}
}

/*
LocalSquaredRelativeErrors evaluates (exact - value)^2 / exact^2 per cell
against the analytic solution at the cell centroids. The exact solution must
not vanish on any centroid.
*/
func (f Field) LocalSquaredRelativeErrors(exact func(x, y float64) float64) (loc utils.Vector) {
	loc = utils.NewVector(f.Msh.NumCells)
	for c, centroid := range f.Msh.Centroids {
		e := exact(centroid[0], centroid[1])
		diff := e - f.Values.DataP[c]
		loc.DataP[c] = diff * diff / (e * e)
	}
	return
}

// MaxRelativeError is the square root of the worst local squared relative
// error.
func (f Field) MaxRelativeError(exact func(x, y float64) float64) float64 {
	return math.Sqrt(f.LocalSquaredRelativeErrors(exact).Max())
}

// GlobalRelativeError is the root mean square of the local relative errors.
func (f Field) GlobalRelativeError(exact func(x, y float64) float64) float64 {
	loc := f.LocalSquaredRelativeErrors(exact)
	return math.Sqrt(loc.Sum() / float64(loc.Len()))
}

// MaxAbsoluteError is the worst pointwise difference against the analytic
// solution at the centroids.
func (f Field) MaxAbsoluteError(exact func(x, y float64) float64) (m float64) {
	for c, centroid := range f.Msh.Centroids {
		m = math.Max(m, math.Abs(exact(centroid[0], centroid[1])-f.Values.DataP[c]))
	}
	return
}

/*
VertexValues interpolates the cell centered field to the mesh vertices by
volume weighted averaging over the cells sharing each vertex, in the float32
form the graphics layer consumes.
*/
func (f Field) VertexValues() (vv []float32) {
	var (
		sums    = make([]float64, f.Msh.NumVertices)
		weights = make([]float64, f.Msh.NumVertices)
	)
	for c, cell := range f.Msh.Cells {
		w := f.Msh.Volumes[c]
		for _, v := range cell {
			sums[v] += w * f.Values.DataP[c]
			weights[v] += w
		}
	}
	vv = make([]float32, f.Msh.NumVertices)
	for v := range vv {
		if weights[v] > 0 {
			vv[v] = float32(sums[v] / weights[v])
		}
	}
	return
}
