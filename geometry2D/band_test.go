package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandRows(t *testing.T) {
	b := Band{X0: 0, X1: 1, Y0: 1, Y1: 3, H0: 0.1, H1: 1}
	rs := b.rows()
	{ // Boundary rows match the adjacent structured regions
		assert.Equal(t, 11, len(rs[0].x))
		assert.Equal(t, 2, len(rs[len(rs)-1].x))
		assert.Equal(t, 1., rs[0].y)
		assert.Equal(t, 3., rs[len(rs)-1].y)
		for j, x := range rs[0].x {
			assert.InDelta(t, 0.1*float64(j), x, 1.e-12)
		}
	}
	{ // Rows are strictly increasing in height with bounded growth
		for i := 1; i < len(rs); i++ {
			assert.Greater(t, rs[i].y, rs[i-1].y)
		}
		gaps := make([]float64, len(rs)-1)
		for i := 1; i < len(rs); i++ {
			gaps[i-1] = rs[i].y - rs[i-1].y
		}
		for i := 1; i < len(gaps); i++ {
			assert.Less(t, gaps[i]/gaps[i-1], 2.)
			assert.Greater(t, gaps[i], gaps[i-1])
		}
		// First gap stays near the fine spacing for a smooth transition
		assert.InDelta(t, b.H0, gaps[0], 0.25*b.H0)
	}
	{ // Row point counts decrease toward the coarse side
		for i := 1; i < len(rs); i++ {
			assert.LessOrEqual(t, len(rs[i].x), len(rs[i-1].x))
		}
	}
}

func TestBandTriangulate(t *testing.T) {
	b := Band{X0: 0, X1: 1, Y0: 1, Y1: 3, H0: 0.1, H1: 1}
	pts, tris := b.Triangulate()
	{ // Triangle count follows from the point layout by Euler's formula
		assert.Greater(t, len(tris), 35)
		assert.Less(t, len(tris), 80)
	}
	{ // Triangles are CCW and tile the band exactly
		var area float64
		for _, tri := range tris {
			a := TriArea(pts[tri[0]], pts[tri[1]], pts[tri[2]])
			assert.Greater(t, a, 0.)
			area += a
		}
		assert.InDelta(t, 2.0, area, 1.e-10)
	}
	{ // All points lie inside the band box
		for _, p := range pts {
			assert.True(t, p[0] >= 0 && p[0] <= 1)
			assert.True(t, p[1] >= 1 && p[1] <= 3)
		}
	}
	{ // The bottom edge subdivision survives triangulation: every bottom
		// segment appears as an edge of some triangle
		onBottom := func(i int32) bool { return pts[i][1] == 1. }
		bottomEdges := make(map[[2]int32]bool)
		for _, tri := range tris {
			for k := 0; k < 3; k++ {
				v1, v2 := tri[k], tri[(k+1)%3]
				if onBottom(v1) && onBottom(v2) {
					if v1 > v2 {
						v1, v2 = v2, v1
					}
					bottomEdges[[2]int32{v1, v2}] = true
				}
			}
		}
		assert.Equal(t, 10, len(bottomEdges))
	}
}

func TestBandDegenerate(t *testing.T) {
	{ // A band thinner than the fine spacing still produces one row gap
		b := Band{X0: 0, X1: 1, Y0: 0, Y1: 0.05, H0: 0.1, H1: 1}
		h := b.rowHeights()
		assert.Equal(t, 1, len(h))
		assert.InDelta(t, 0.05, h[0], 1.e-14)
	}
	{ // Zero height panics
		b := Band{X0: 0, X1: 1, Y0: 1, Y1: 1, H0: 0.1, H1: 1}
		assert.Panics(t, func() { b.rowHeights() })
	}
}

func TestTriArea(t *testing.T) {
	a := TriArea([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{0, 1})
	assert.Equal(t, 0.5, a)
	assert.Equal(t, -0.5, TriArea([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 0}))
	assert.True(t, math.Abs(TriArea([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{2, 2})) < 1.e-14)
}
