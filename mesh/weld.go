package mesh

import (
	"fmt"
	"math"
)

/*
Weld merges meshes into a single mesh, deduplicating vertices that coincide
within tol. Faces along the seams, where a boundary face of one part matches
a boundary face of another point for point, become interior faces of the
result. Boundary tags are not carried over; retag the welded mesh.
*/
func Weld(tol float64, parts ...*Mesh) (m *Mesh, err error) {
	if len(parts) == 0 {
		err = fmt.Errorf("nothing to weld")
		return
	}
	if tol <= 0 {
		err = fmt.Errorf("weld tolerance must be positive, have %v", tol)
		return
	}
	for i, part := range parts {
		if len(part.Cells) == 0 {
			err = fmt.Errorf("part %d has no cells", i)
			return
		}
	}
	m = NewMesh()
	var (
		buckets = make(map[[2]int64]int)
	)
	// find locates an existing vertex within tol by checking the quantized
	// bucket of the query point and its eight neighbours, so coincident
	// points straddling a bucket boundary still merge.
	find := func(p [2]float64) (id int, ok bool) {
		var (
			qx = int64(math.Round(p[0] / tol))
			qy = int64(math.Round(p[1] / tol))
		)
		for di := int64(-1); di <= 1; di++ {
			for dj := int64(-1); dj <= 1; dj++ {
				if cand, exists := buckets[[2]int64{qx + di, qy + dj}]; exists {
					v := m.Vertices[cand]
					if math.Hypot(v[0]-p[0], v[1]-p[1]) <= tol {
						return cand, true
					}
				}
			}
		}
		return 0, false
	}
	for _, part := range parts {
		remap := make([]int, len(part.Vertices))
		for vi, p := range part.Vertices {
			if id, ok := find(p); ok {
				remap[vi] = id
				continue
			}
			id := len(m.Vertices)
			m.Vertices = append(m.Vertices, p)
			buckets[[2]int64{int64(math.Round(p[0] / tol)), int64(math.Round(p[1] / tol))}] = id
			remap[vi] = id
		}
		for _, cell := range part.Cells {
			newCell := make([]int, len(cell))
			for k, v := range cell {
				newCell[k] = remap[v]
			}
			m.Cells = append(m.Cells, newCell)
		}
	}
	m.BuildConnectivity()
	return
}
