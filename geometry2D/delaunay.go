package geometry2D

import (
	"github.com/pradeep-pyro/triangle"
)

// ConstrainedDelaunay triangulates the convex region bounded by segs,
// including every input point in the output mesh. Triangles are oriented
// counterclockwise.
func ConstrainedDelaunay(pts [][2]float64, segs [][2]int32) (tris [][3]int32) {
	tris = triangle.ConstrainedDelaunay(pts, segs, nil)
	return
}

// Delaunay triangulates the convex hull of the input points.
func Delaunay(pts [][2]float64) (tris [][3]int32) {
	tris = triangle.Delaunay(pts)
	return
}

// TriArea returns the signed area of a triangle, positive for
// counterclockwise vertex order.
func TriArea(a, b, c [2]float64) float64 {
	return 0.5 * ((b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1]))
}
