package geometry2D

import (
	"fmt"
	"math"
)

/*
Band describes a rectangular transition region whose mesh spacing grades from
H0 along the bottom edge to H1 along the top edge. It is meshed with rows of
points placed at geometrically growing heights, each row spaced horizontally
to match the local target size, then triangulated.

The bottom edge is subdivided at exactly the H0 spacing so that the resulting
triangulation is conformal with a structured grid of that cell size below it.
The top edge is subdivided at the H1 spacing for the same reason.
*/
type Band struct {
	X0, X1 float64
	Y0, Y1 float64
	H0, H1 float64
}

// growthRatio bounds the height increase between successive point rows.
const growthRatio = 1.5

type row struct {
	y float64
	x []float64
}

// rowHeights returns the vertical gaps between successive point rows. The
// gaps grow geometrically from H0 and are rescaled to fill the band height
// exactly.
func (b Band) rowHeights() (h []float64) {
	var (
		H   = b.Y1 - b.Y0
		sum float64
		hk  = b.H0
	)
	if H <= 0 || b.H0 <= 0 || b.H1 <= 0 {
		panic(fmt.Errorf("degenerate band: height = %v, H0 = %v, H1 = %v", H, b.H0, b.H1))
	}
	if H <= b.H0 {
		return []float64{H}
	}
	for sum < H {
		hk *= growthRatio
		h = append(h, hk)
		sum += hk
	}
	scale := H / sum
	for i := range h {
		h[i] *= scale
	}
	return
}

func (b Band) uniformRow(y float64, n int) (r row) {
	var (
		W = b.X1 - b.X0
	)
	r.y = y
	r.x = make([]float64, n+1)
	for j := 0; j <= n; j++ {
		r.x[j] = b.X0 + W*float64(j)/float64(n)
	}
	// Pin the endpoints exactly
	r.x[0], r.x[n] = b.X0, b.X1
	return
}

// rows places the point rows of the band, boundary rows included. Horizontal
// spacing within each row interpolates linearly between H0 and H1 with
// height.
func (b Band) rows() (rs []row) {
	var (
		W       = b.X1 - b.X0
		heights = b.rowHeights()
		y       = b.Y0
	)
	rs = append(rs, b.uniformRow(b.Y0, intervalCount(W, b.H0)))
	for k, h := range heights {
		y += h
		if k == len(heights)-1 {
			y = b.Y1
		}
		t := (y - b.Y0) / (b.Y1 - b.Y0)
		s := b.H0 + (b.H1-b.H0)*t
		rs = append(rs, b.uniformRow(y, intervalCount(W, s)))
	}
	return
}

func intervalCount(width, spacing float64) (n int) {
	n = int(math.Round(width / spacing))
	if n < 1 {
		n = 1
	}
	return
}

/*
PointSet lays out the band's points and the segments of its outline. Points
are ordered row by row from the bottom, so the first points are the bottom
boundary subdivision. Segments index into the returned points and trace the
bottom, right, top and left edges of the band.
*/
func (b Band) PointSet() (pts [][2]float64, segs [][2]int32) {
	var (
		rs       = b.rows()
		rowStart = make([]int, len(rs))
	)
	for i, r := range rs {
		rowStart[i] = len(pts)
		for _, x := range r.x {
			pts = append(pts, [2]float64{x, r.y})
		}
	}
	addChain := func(ids []int32) {
		for i := 0; i+1 < len(ids); i++ {
			segs = append(segs, [2]int32{ids[i], ids[i+1]})
		}
	}
	// Bottom edge
	bottom := make([]int32, len(rs[0].x))
	for j := range bottom {
		bottom[j] = int32(rowStart[0] + j)
	}
	addChain(bottom)
	// Right edge, bottom row to top row
	right := make([]int32, len(rs))
	for i, r := range rs {
		right[i] = int32(rowStart[i] + len(r.x) - 1)
	}
	addChain(right)
	// Top edge
	last := len(rs) - 1
	top := make([]int32, len(rs[last].x))
	for j := range top {
		top[j] = int32(rowStart[last] + j)
	}
	addChain(top)
	// Left edge
	left := make([]int32, len(rs))
	for i := range rs {
		left[i] = int32(rowStart[i])
	}
	addChain(left)
	return
}

// Triangulate meshes the band with the external Delaunay generator.
func (b Band) Triangulate() (pts [][2]float64, tris [][3]int32) {
	pts, segs := b.PointSet()
	tris = ConstrainedDelaunay(pts, segs)
	return
}
