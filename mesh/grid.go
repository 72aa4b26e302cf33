package mesh

import (
	"fmt"
)

/*
NewGrid2D builds a structured quadrilateral mesh of nx by ny cells with cell
sizes dx and dy, anchored at (x0, y0). The outer boundary faces are tagged
left, right, bottom and top.
*/
func NewGrid2D(nx, ny int, dx, dy float64, x0, y0 float64) (m *Mesh) {
	if nx < 1 || ny < 1 {
		panic(fmt.Errorf("grid dimensions must be positive, have nx = %d, ny = %d", nx, ny))
	}
	if dx <= 0 || dy <= 0 {
		panic(fmt.Errorf("cell sizes must be positive, have dx = %v, dy = %v", dx, dy))
	}
	m = NewMesh()
	vid := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.Vertices = append(m.Vertices, [2]float64{x0 + float64(i)*dx, y0 + float64(j)*dy})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			m.Cells = append(m.Cells, []int{vid(i, j), vid(i + 1, j), vid(i + 1, j + 1), vid(i, j + 1)})
		}
	}
	m.BuildConnectivity()

	var (
		xmin, xmax = x0, x0 + float64(nx)*dx
		ymin, ymax = y0, y0 + float64(ny)*dy
		tol        = 1.e-8 * (dx + dy)
	)
	m.TagBoundary("bottom", func(mid [2]float64) bool { return mid[1] < ymin+tol })
	m.TagBoundary("top", func(mid [2]float64) bool { return mid[1] > ymax-tol })
	m.TagBoundary("left", func(mid [2]float64) bool { return mid[0] < xmin+tol })
	m.TagBoundary("right", func(mid [2]float64) bool { return mid[0] > xmax-tol })
	return
}

/*
NewTriMesh builds a mesh from a triangulation, as produced by the transition
band generator. Triangles must be counterclockwise.
*/
func NewTriMesh(pts [][2]float64, tris [][3]int32) (m *Mesh) {
	m = NewMesh()
	m.Vertices = append(m.Vertices, pts...)
	for _, tri := range tris {
		m.Cells = append(m.Cells, []int{int(tri[0]), int(tri[1]), int(tri[2])})
	}
	m.BuildConnectivity()
	return
}
