package mesh

import (
	"fmt"
	"math"
	"sort"

	graphics2D "github.com/notargets/avs/geometry"
	"github.com/notargets/gofvm/types"
	"github.com/notargets/gofvm/utils"
)

/*
Face is a cell boundary segment. Interior faces join exactly two cells and
carry a unit normal pointing from Owner to Neighbour. Boundary faces have
Neighbour = -1, an outward pointing normal, and (once tagged) the name of
the boundary they lie on.
*/
type Face struct {
	V         [2]int
	Owner     int
	Neighbour int
	Area      float64
	Normal    [2]float64
	Midpoint  [2]float64
	Tag       string
}

/*
Mesh is a two dimensional cell centered unstructured mesh of triangles and
quadrilaterals. Cells list their vertices in counterclockwise order.
Connectivity, face pairing and the geometric quantities used by finite
volume discretizations are derived by BuildConnectivity.
*/
type Mesh struct {
	Vertices [][2]float64
	Cells    [][]int

	Centroids [][2]float64
	Volumes   []float64

	Faces   []Face
	FaceMap map[types.EdgeKey]int
	EToE    [][]int
	EToF    [][]int

	BoundaryFaces map[string]utils.Index

	NumCells    int
	NumVertices int
	NumFaces    int
}

func NewMesh() *Mesh {
	return &Mesh{
		FaceMap:       make(map[types.EdgeKey]int),
		BoundaryFaces: make(map[string]utils.Index),
	}
}

/*
BuildConnectivity computes cell centroids and volumes, pairs the faces shared
between cells and derives the element adjacency. Cells must be counterclockwise;
a non positive cell area is a construction error and panics.
*/
func (m *Mesh) BuildConnectivity() {
	m.NumVertices = len(m.Vertices)
	m.NumCells = len(m.Cells)
	m.Centroids = make([][2]float64, m.NumCells)
	m.Volumes = make([]float64, m.NumCells)
	m.Faces = m.Faces[:0]
	m.FaceMap = make(map[types.EdgeKey]int)
	m.EToE = make([][]int, m.NumCells)
	m.EToF = make([][]int, m.NumCells)
	m.BoundaryFaces = make(map[string]utils.Index)

	for c, cell := range m.Cells {
		area, centroid := polygonAreaCentroid(m.Vertices, cell)
		if area <= 0 {
			panic(fmt.Errorf("cell %d has non positive area %v, vertices must be counterclockwise", c, area))
		}
		m.Volumes[c] = area
		m.Centroids[c] = centroid

		nf := len(cell)
		m.EToE[c] = make([]int, nf)
		m.EToF[c] = make([]int, nf)
		for k := 0; k < nf; k++ {
			v1, v2 := cell[k], cell[(k+1)%nf]
			key := types.NewEdgeKey(v1, v2)
			if fid, exists := m.FaceMap[key]; exists {
				face := &m.Faces[fid]
				if face.Neighbour >= 0 {
					panic(fmt.Errorf("face %v shared by more than two cells", face.V))
				}
				face.Neighbour = c
				m.EToE[c][k] = face.Owner
				m.EToE[face.Owner][localFace(m.Cells[face.Owner], face.V)] = c
				m.EToF[c][k] = fid
			} else {
				p1, p2 := m.Vertices[v1], m.Vertices[v2]
				dx, dy := p2[0]-p1[0], p2[1]-p1[1]
				length := math.Hypot(dx, dy)
				if length == 0 {
					panic(fmt.Errorf("cell %d has a zero length face at vertex %d", c, v1))
				}
				face := Face{
					V:         [2]int{v1, v2},
					Owner:     c,
					Neighbour: -1,
					Area:      length,
					// CCW cell traversal puts the outward normal to the right
					// of the edge direction
					Normal:   [2]float64{dy / length, -dx / length},
					Midpoint: [2]float64{0.5 * (p1[0] + p2[0]), 0.5 * (p1[1] + p2[1])},
				}
				fid := len(m.Faces)
				m.Faces = append(m.Faces, face)
				m.FaceMap[key] = fid
				m.EToE[c][k] = -1
				m.EToF[c][k] = fid
			}
		}
	}
	m.NumFaces = len(m.Faces)
}

func localFace(cell []int, v [2]int) int {
	nf := len(cell)
	for k := 0; k < nf; k++ {
		v1, v2 := cell[k], cell[(k+1)%nf]
		if (v1 == v[0] && v2 == v[1]) || (v1 == v[1] && v2 == v[0]) {
			return k
		}
	}
	panic(fmt.Errorf("face %v not found in cell %v", v, cell))
}

func polygonAreaCentroid(verts [][2]float64, cell []int) (area float64, centroid [2]float64) {
	var (
		n      = len(cell)
		cx, cy float64
	)
	for k := 0; k < n; k++ {
		p1 := verts[cell[k]]
		p2 := verts[cell[(k+1)%n]]
		cross := p1[0]*p2[1] - p2[0]*p1[1]
		area += cross
		cx += (p1[0] + p2[0]) * cross
		cy += (p1[1] + p2[1]) * cross
	}
	area *= 0.5
	if area != 0 {
		centroid = [2]float64{cx / (6 * area), cy / (6 * area)}
	}
	return
}

/*
TagBoundary names every untagged boundary face whose midpoint satisfies the
predicate, and returns the number of faces tagged. Interior faces are never
tagged.
*/
func (m *Mesh) TagBoundary(name string, pred func(mid [2]float64) bool) (count int) {
	for fid := range m.Faces {
		face := &m.Faces[fid]
		if face.Neighbour >= 0 || face.Tag != "" {
			continue
		}
		if pred(face.Midpoint) {
			face.Tag = name
			m.BoundaryFaces[name] = append(m.BoundaryFaces[name], fid)
			count++
		}
	}
	return
}

/*
TagOuterBox names the boundary faces whose midpoints lie on the bounding box
of the mesh bottom, top, left and right. Faces already tagged keep their
names.
*/
func (m *Mesh) TagOuterBox(tol float64) {
	xmin, xmax, ymin, ymax := m.BoundingBox()
	m.TagBoundary("bottom", func(mid [2]float64) bool { return math.Abs(mid[1]-ymin) <= tol })
	m.TagBoundary("top", func(mid [2]float64) bool { return math.Abs(mid[1]-ymax) <= tol })
	m.TagBoundary("left", func(mid [2]float64) bool { return math.Abs(mid[0]-xmin) <= tol })
	m.TagBoundary("right", func(mid [2]float64) bool { return math.Abs(mid[0]-xmax) <= tol })
}

// UntaggedBoundaryFaces returns the boundary faces not yet assigned to a
// named boundary.
func (m *Mesh) UntaggedBoundaryFaces() (I utils.Index) {
	for fid, face := range m.Faces {
		if face.Neighbour < 0 && face.Tag == "" {
			I = append(I, fid)
		}
	}
	return
}

// BoundingBox returns the extreme vertex coordinates.
func (m *Mesh) BoundingBox() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, v := range m.Vertices {
		xmin = math.Min(xmin, v[0])
		xmax = math.Max(xmax, v[0])
		ymin = math.Min(ymin, v[1])
		ymax = math.Max(ymax, v[1])
	}
	return
}

type Statistics struct {
	NumTris, NumQuads  int
	MinVolume          float64
	MaxVolume          float64
	TotalVolume        float64
	MinFaceArea        float64
	MaxFaceArea        float64
	NumBoundaryFaces   int
	NumInteriorFaces   int
}

func (m *Mesh) Statistics() (s Statistics) {
	s.MinVolume, s.MinFaceArea = math.Inf(1), math.Inf(1)
	for _, cell := range m.Cells {
		if len(cell) == 3 {
			s.NumTris++
		} else {
			s.NumQuads++
		}
	}
	for _, vol := range m.Volumes {
		s.MinVolume = math.Min(s.MinVolume, vol)
		s.MaxVolume = math.Max(s.MaxVolume, vol)
		s.TotalVolume += vol
	}
	for _, face := range m.Faces {
		s.MinFaceArea = math.Min(s.MinFaceArea, face.Area)
		s.MaxFaceArea = math.Max(s.MaxFaceArea, face.Area)
		if face.Neighbour < 0 {
			s.NumBoundaryFaces++
		} else {
			s.NumInteriorFaces++
		}
	}
	return
}

func (m *Mesh) PrintStatistics() {
	s := m.Statistics()
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Vertices: %d\n", m.NumVertices)
	fmt.Printf("  Cells: %d (%d tris, %d quads)\n", m.NumCells, s.NumTris, s.NumQuads)
	fmt.Printf("  Faces: %d (%d interior, %d boundary)\n", m.NumFaces, s.NumInteriorFaces, s.NumBoundaryFaces)
	fmt.Printf("  Cell volume: min %8.6g, max %8.6g, total %8.6g\n", s.MinVolume, s.MaxVolume, s.TotalVolume)
	fmt.Printf("  Face area: min %8.6g, max %8.6g\n", s.MinFaceArea, s.MaxFaceArea)
	if len(m.BoundaryFaces) > 0 {
		fmt.Printf("  Boundaries:\n")
		for _, name := range sortedTags(m.BoundaryFaces) {
			fmt.Printf("    %s: %d faces\n", name, len(m.BoundaryFaces[name]))
		}
	}
}

func sortedTags(bf map[string]utils.Index) (names []string) {
	for name := range bf {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

/*
ToGraphics converts the mesh to the graphics TriMesh form, splitting quads
into two triangles. The returned index maps each graphics triangle back to
its source cell.
*/
func (m *Mesh) ToGraphics() (gm graphics2D.TriMesh, tri2cell utils.Index) {
	var (
		x = make([]float64, m.NumVertices)
		y = make([]float64, m.NumVertices)
	)
	for i, v := range m.Vertices {
		x[i], y[i] = v[0], v[1]
	}
	addTri := func(c, v1, v2, v3 int) {
		var tri graphics2D.Triangle
		tri.Nodes[0] = int32(v1)
		tri.Nodes[1] = int32(v2)
		tri.Nodes[2] = int32(v3)
		gm.Triangles = append(gm.Triangles, tri)
		gm.Attributes = append(gm.Attributes, []float32{0, 0, 0})
		tri2cell = append(tri2cell, c)
	}
	for c, cell := range m.Cells {
		switch len(cell) {
		case 3:
			addTri(c, cell[0], cell[1], cell[2])
		case 4:
			addTri(c, cell[0], cell[1], cell[2])
			addTri(c, cell[0], cell[2], cell[3])
		default:
			panic(fmt.Errorf("cell %d has %d vertices, only tris and quads are supported", c, len(cell)))
		}
	}
	gm.Geometry = utils.ArraysToPoints(x, y)
	return
}
