package readers

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/types"
)

var (
	// ErrUnsupportedVersion marks MSH files in a format other than 2.x ASCII.
	ErrUnsupportedVersion = errors.New("unsupported MSH format version")
	// ErrMalformed marks structurally broken mesh files.
	ErrMalformed = errors.New("malformed mesh file")
)

// Gmsh MSH 2.2 element type numbers
const (
	elmLine  = 1
	elmTri   = 2
	elmQuad  = 3
	elmPoint = 15
)

// boundaryLine is a 1-D element carrying a physical tag, matched to a mesh
// face once the cells are connected.
type boundaryLine struct {
	v1, v2  int
	physTag int
}

type msh2State struct {
	msh     *mesh.Mesh
	nodeIDs map[int]int    // file node ID to vertex index
	names   map[int]string // physical tag to name
	lines   []boundaryLine
}

// ReadMeshFile reads a mesh file based on extension.
func ReadMeshFile(filename string) (*mesh.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".msh":
		return ReadMsh2(filename)
	case ".neu":
		return ReadNeu(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

/*
ReadMsh2 reads a Gmsh MSH file, format version 2.2 ASCII. Line elements with
a physical tag become named boundary faces, triangles and quadrilaterals
become cells. Files in the 4.x format are rejected with ErrUnsupportedVersion.
*/
func ReadMsh2(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	st := &msh2State{
		msh:     mesh.NewMesh(),
		nodeIDs: make(map[int]int),
		names:   make(map[int]string),
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := st.readMeshFormat(scanner); err != nil {
				return nil, err
			}

		case "$PhysicalNames":
			if err := st.readPhysicalNames(scanner); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := st.readNodes(scanner); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := st.readElements(scanner); err != nil {
				return nil, err
			}

		default:
			// Skip sections we do not use ($Periodic, data sections, ...)
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				endMarker := "$End" + line[1:]
				for scanner.Scan() {
					if strings.TrimSpace(scanner.Text()) == endMarker {
						break
					}
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if len(st.msh.Cells) == 0 {
		return nil, fmt.Errorf("%w: no 2-D elements in %s", ErrMalformed, filename)
	}

	st.msh.BuildConnectivity()
	st.tagBoundaries()
	return st.msh, nil
}

func (st *msh2State) readMeshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("%w: unexpected EOF in MeshFormat", ErrMalformed)
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("%w: invalid MeshFormat line", ErrMalformed)
	}

	version := parts[0]
	if !strings.HasPrefix(version, "2.") {
		return fmt.Errorf("%w: %s, only 2.x is supported", ErrUnsupportedVersion, version)
	}
	if fileType, _ := strconv.Atoi(parts[1]); fileType == 1 {
		return fmt.Errorf("%w: binary, only ASCII is supported", ErrUnsupportedVersion)
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndMeshFormat" {
			break
		}
	}
	return nil
}

func (st *msh2State) readPhysicalNames(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("%w: unexpected EOF in PhysicalNames", ErrMalformed)
	}

	numNames, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	for i := 0; i < numNames; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("%w: unexpected EOF reading physical names", ErrMalformed)
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) >= 3 {
			tag, _ := strconv.Atoi(parts[1])
			name := strings.Trim(parts[2], "\"")
			for j := 3; j < len(parts); j++ {
				name += " " + strings.Trim(parts[j], "\"")
			}
			st.names[tag] = name
		}
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndPhysicalNames" {
			break
		}
	}
	return nil
}

func (st *msh2State) readNodes(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("%w: unexpected EOF in Nodes", ErrMalformed)
	}

	numNodes, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("%w: unexpected EOF reading nodes", ErrMalformed)
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("%w: invalid node line: %s", ErrMalformed, scanner.Text())
		}

		nodeID, _ := strconv.Atoi(parts[0])
		x, _ := strconv.ParseFloat(parts[1], 64)
		y, _ := strconv.ParseFloat(parts[2], 64)

		st.nodeIDs[nodeID] = len(st.msh.Vertices)
		st.msh.Vertices = append(st.msh.Vertices, [2]float64{x, y})
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndNodes" {
			break
		}
	}
	return nil
}

func (st *msh2State) readElements(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("%w: unexpected EOF in Elements", ErrMalformed)
	}

	numElements, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("%w: unexpected EOF reading elements", ErrMalformed)
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 5 {
			return fmt.Errorf("%w: invalid element line: %s", ErrMalformed, scanner.Text())
		}

		elemID, _ := strconv.Atoi(parts[0])
		elemType, _ := strconv.Atoi(parts[1])
		numTags, _ := strconv.Atoi(parts[2])
		if len(parts) < 3+numTags {
			return fmt.Errorf("%w: element %d has truncated tags", ErrMalformed, elemID)
		}

		var numNodes int
		switch elemType {
		case elmLine:
			numNodes = 2
		case elmTri:
			numNodes = 3
		case elmQuad:
			numNodes = 4
		case elmPoint:
			continue
		default:
			// Skip element types outside the 2-D surface mesh
			continue
		}

		nodeStart := 3 + numTags
		if len(parts) < nodeStart+numNodes {
			return fmt.Errorf("%w: element %d: expected %d nodes, got %d",
				ErrMalformed, elemID, numNodes, len(parts)-nodeStart)
		}

		nodes := make([]int, numNodes)
		for j := 0; j < numNodes; j++ {
			nodeID, _ := strconv.Atoi(parts[nodeStart+j])
			idx, ok := st.nodeIDs[nodeID]
			if !ok {
				return fmt.Errorf("%w: element %d references unknown node %d",
					ErrMalformed, elemID, nodeID)
			}
			nodes[j] = idx
		}

		if elemType == elmLine {
			var physTag int
			if numTags > 0 {
				physTag, _ = strconv.Atoi(parts[3])
			}
			st.lines = append(st.lines, boundaryLine{v1: nodes[0], v2: nodes[1], physTag: physTag})
			continue
		}

		// Cells must wind counterclockwise, generators are free to emit either
		if signedArea(st.msh.Vertices, nodes) < 0 {
			reverse(nodes)
		}
		st.msh.Cells = append(st.msh.Cells, nodes)
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndElements" {
			break
		}
	}
	return nil
}

/*
tagBoundaries matches the stored line elements against the connected face
map. Lines on interior faces and lines with a zero physical tag (bare
geometry edges, written when no physical groups are defined) are ignored.
*/
func (st *msh2State) tagBoundaries() {
	for _, bl := range st.lines {
		if bl.physTag == 0 {
			continue
		}
		fid, ok := st.msh.FaceMap[types.NewEdgeKey(bl.v1, bl.v2)]
		if !ok {
			continue
		}
		face := &st.msh.Faces[fid]
		if face.Neighbour >= 0 || face.Tag != "" {
			continue
		}

		name, ok := st.names[bl.physTag]
		if !ok {
			name = fmt.Sprintf("boundary_%d", bl.physTag)
		}
		face.Tag = name
		st.msh.BoundaryFaces[name] = append(st.msh.BoundaryFaces[name], fid)
	}
}

func signedArea(verts [][2]float64, cell []int) (area float64) {
	n := len(cell)
	for k := 0; k < n; k++ {
		p1 := verts[cell[k]]
		p2 := verts[cell[(k+1)%n]]
		area += p1[0]*p2[1] - p2[0]*p1[1]
	}
	return 0.5 * area
}

func reverse(nodes []int) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}
