package readers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/types"
)

// Gambit neutral file element type numbers
const (
	neuQuad = 2
	neuTri  = 3
)

// neuBC is one face of a boundary condition set, stored as a vertex pair in
// file node order until the face map exists.
type neuBC struct {
	name   string
	v1, v2 int
}

type neuReader struct {
	scanner *bufio.Scanner
	msh     *mesh.Mesh
	// cell nodes in file order; winding fixes on msh.Cells must not disturb
	// the face numbering of the boundary condition sets
	fileCells [][]int
	bcs       []neuBC
}

/*
ReadNeu reads a Gambit neutral (.neu) file. Triangles and quadrilaterals
become cells and each boundary condition set becomes a named boundary.
Only 2-D meshes are accepted.

The section order is fixed: control info, nodal coordinates, elements,
element groups, boundary conditions. Groups carry material data the solver
has no use for, so they are parsed only to keep the line accounting right.
*/
func ReadNeu(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	nr := &neuReader{
		scanner: bufio.NewScanner(file),
		msh:     mesh.NewMesh(),
	}
	if err := nr.read(); err != nil {
		return nil, err
	}

	nr.msh.BuildConnectivity()
	if err := nr.tagBoundaries(); err != nil {
		return nil, err
	}
	return nr.msh, nil
}

func (nr *neuReader) read() error {
	// Six lines of banner and column labels precede the control counts
	if err := nr.skipLines(6, "control info"); err != nil {
		return err
	}
	line, err := nr.nextLine("control info")
	if err != nil {
		return err
	}

	var nv, k, nmats, nbcs, nsd int
	if n, _ := fmt.Sscanf(line, "%d %d %d %d %d", &nv, &k, &nmats, &nbcs, &nsd); n < 5 {
		return fmt.Errorf("%w: invalid control counts: %s", ErrMalformed, strings.TrimSpace(line))
	}
	if nsd != 2 {
		return fmt.Errorf("%d-D neutral file, only 2-D meshes are supported", nsd)
	}
	if nv < 3 || k < 1 {
		return fmt.Errorf("%w: %d vertices, %d elements", ErrMalformed, nv, k)
	}

	if err := nr.readVertices(nv); err != nil {
		return err
	}
	if err := nr.readCells(k); err != nil {
		return err
	}
	if err := nr.readMaterialGroups(nmats); err != nil {
		return err
	}
	return nr.readBCs(nbcs)
}

func (nr *neuReader) readVertices(nv int) error {
	if err := nr.skipLines(2, "nodal coordinates"); err != nil {
		return err
	}

	verts := make([][2]float64, nv)
	for i := 0; i < nv; i++ {
		line, err := nr.nextLine("nodal coordinates")
		if err != nil {
			return err
		}

		var ind int
		var x, y float64
		if n, _ := fmt.Sscanf(line, "%d %f %f", &ind, &x, &y); n < 3 {
			return fmt.Errorf("%w: invalid vertex line: %s", ErrMalformed, strings.TrimSpace(line))
		}
		if ind < 1 || ind > nv {
			return fmt.Errorf("%w: vertex index %d out of range 1..%d", ErrMalformed, ind, nv)
		}
		verts[ind-1] = [2]float64{x, y}
	}
	nr.msh.Vertices = verts
	return nil
}

func (nr *neuReader) readCells(k int) error {
	if err := nr.skipLines(2, "elements"); err != nil {
		return err
	}

	for i := 0; i < k; i++ {
		line, err := nr.nextLine("elements")
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("%w: invalid element line: %s", ErrMalformed, strings.TrimSpace(line))
		}
		ind, _ := strconv.Atoi(fields[0])
		typ, _ := strconv.Atoi(fields[1])
		numNodes, _ := strconv.Atoi(fields[2])

		var want int
		switch typ {
		case neuTri:
			want = 3
		case neuQuad:
			want = 4
		default:
			return fmt.Errorf("%w: element %d has type %d, only triangles and quadrilaterals are supported",
				ErrMalformed, ind, typ)
		}
		if numNodes != want || len(fields) < 3+want {
			return fmt.Errorf("%w: element %d: expected %d nodes, got %d",
				ErrMalformed, ind, want, len(fields)-3)
		}

		nodes := make([]int, want)
		for j := 0; j < want; j++ {
			v, _ := strconv.Atoi(fields[3+j])
			if v < 1 || v > len(nr.msh.Vertices) {
				return fmt.Errorf("%w: element %d references unknown vertex %d", ErrMalformed, ind, v)
			}
			nodes[j] = v - 1
		}
		nr.fileCells = append(nr.fileCells, nodes)

		// Cells must wind counterclockwise, Gambit is free to emit either
		cell := append([]int(nil), nodes...)
		if signedArea(nr.msh.Vertices, cell) < 0 {
			reverse(cell)
		}
		nr.msh.Cells = append(nr.msh.Cells, cell)
	}
	return nil
}

/*
readMaterialGroups walks the element group sections. Each group holds a
header, a title line, one flags line and its member elements packed ten to a
line, framed by the trailing ENDOFSECTION of the previous section and a
section banner.
*/
func (nr *neuReader) readMaterialGroups(nmats int) error {
	for i := 0; i < nmats; i++ {
		if err := nr.skipLines(2, "element group"); err != nil {
			return err
		}
		line, err := nr.nextLine("element group")
		if err != nil {
			return err
		}

		var group, elnum int
		var material float64
		if n, _ := fmt.Sscanf(line, "GROUP: %d ELEMENTS: %d MATERIAL: %f",
			&group, &elnum, &material); n < 2 {
			return fmt.Errorf("%w: invalid group header: %s", ErrMalformed, strings.TrimSpace(line))
		}
		// Title, flags, then the member list
		if err := nr.skipLines(2+(elnum+9)/10, "element group"); err != nil {
			return err
		}
	}
	return nil
}

func (nr *neuReader) readBCs(nbcs int) error {
	for i := 0; i < nbcs; i++ {
		if err := nr.skipLines(2, "boundary conditions"); err != nil {
			return err
		}
		line, err := nr.nextLine("boundary conditions")
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("%w: invalid boundary condition header: %s",
				ErrMalformed, strings.TrimSpace(line))
		}
		name := fields[0]
		itype, _ := strconv.Atoi(fields[1])
		numFaces, _ := strconv.Atoi(fields[2])
		if itype != 1 {
			return fmt.Errorf("%w: boundary condition %s is node based, only face sets are supported",
				ErrMalformed, name)
		}

		for j := 0; j < numFaces; j++ {
			line, err := nr.nextLine("boundary conditions")
			if err != nil {
				return err
			}

			var elem, etyp, faceNum int
			if n, _ := fmt.Sscanf(line, "%d %d %d", &elem, &etyp, &faceNum); n < 3 {
				return fmt.Errorf("%w: invalid boundary face line: %s", ErrMalformed, strings.TrimSpace(line))
			}
			if elem < 1 || elem > len(nr.fileCells) {
				return fmt.Errorf("%w: boundary condition %s references unknown element %d",
					ErrMalformed, name, elem)
			}

			// Face f of a 2-D element joins local node f-1 to local node
			// f modulo the cell size, in file node order
			cell := nr.fileCells[elem-1]
			if faceNum < 1 || faceNum > len(cell) {
				return fmt.Errorf("%w: element %d has no face %d", ErrMalformed, elem, faceNum)
			}
			nr.bcs = append(nr.bcs, neuBC{
				name: name,
				v1:   cell[faceNum-1],
				v2:   cell[faceNum%len(cell)],
			})
		}
	}
	return nil
}

// tagBoundaries resolves the stored vertex pairs against the face map.
// Faces listed in a set but paired between two cells are interior interfaces
// and keep no tag.
func (nr *neuReader) tagBoundaries() error {
	for _, bc := range nr.bcs {
		fid, ok := nr.msh.FaceMap[types.NewEdgeKey(bc.v1, bc.v2)]
		if !ok {
			return fmt.Errorf("%w: boundary condition %s lists edge %d-%d not present in the mesh",
				ErrMalformed, bc.name, bc.v1+1, bc.v2+1)
		}
		face := &nr.msh.Faces[fid]
		if face.Neighbour >= 0 || face.Tag != "" {
			continue
		}
		face.Tag = bc.name
		nr.msh.BoundaryFaces[bc.name] = append(nr.msh.BoundaryFaces[bc.name], fid)
	}
	return nil
}

func (nr *neuReader) nextLine(section string) (string, error) {
	if !nr.scanner.Scan() {
		if err := nr.scanner.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return "", fmt.Errorf("%w: unexpected EOF in %s", ErrMalformed, section)
	}
	return nr.scanner.Text(), nil
}

func (nr *neuReader) skipLines(n int, section string) error {
	for i := 0; i < n; i++ {
		if _, err := nr.nextLine(section); err != nil {
			return err
		}
	}
	return nil
}
