package readers

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/notargets/gofvm/mesh"
)

/*
WriteMsh2 writes the mesh as a Gmsh MSH 2.2 ASCII file. Named boundaries are
written as line elements in per-name physical groups and the cells as
triangles and quadrilaterals, so ReadMsh2 reproduces the mesh including its
boundary names.
*/
func WriteMsh2(m *mesh.Mesh, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(file)

	fmt.Fprintf(w, "$MeshFormat\n")
	fmt.Fprintf(w, "2.2 0 8\n")
	fmt.Fprintf(w, "$EndMeshFormat\n")

	// Boundary names take physical tags 1..n in sorted order, the surface
	// takes the tag after them
	var names []string
	for name := range m.BoundaryFaces {
		names = append(names, name)
	}
	sort.Strings(names)
	tags := make(map[string]int, len(names))
	for i, name := range names {
		tags[name] = i + 1
	}
	surfaceTag := len(names) + 1

	fmt.Fprintf(w, "$PhysicalNames\n")
	fmt.Fprintf(w, "%d\n", len(names)+1)
	for _, name := range names {
		fmt.Fprintf(w, "1 %d \"%s\"\n", tags[name], name)
	}
	fmt.Fprintf(w, "2 %d \"domain\"\n", surfaceTag)
	fmt.Fprintf(w, "$EndPhysicalNames\n")

	fmt.Fprintf(w, "$Nodes\n")
	fmt.Fprintf(w, "%d\n", len(m.Vertices))
	for i, v := range m.Vertices {
		fmt.Fprintf(w, "%d %.16g %.16g 0\n", i+1, v[0], v[1])
	}
	fmt.Fprintf(w, "$EndNodes\n")

	var numLines int
	for _, name := range names {
		numLines += len(m.BoundaryFaces[name])
	}

	fmt.Fprintf(w, "$Elements\n")
	fmt.Fprintf(w, "%d\n", numLines+len(m.Cells))
	elemID := 1
	for _, name := range names {
		for _, fid := range m.BoundaryFaces[name] {
			face := m.Faces[fid]
			fmt.Fprintf(w, "%d %d 2 %d %d %d %d\n",
				elemID, elmLine, tags[name], tags[name], face.V[0]+1, face.V[1]+1)
			elemID++
		}
	}
	for _, cell := range m.Cells {
		etype := elmTri
		if len(cell) == 4 {
			etype = elmQuad
		}
		fmt.Fprintf(w, "%d %d 2 %d %d", elemID, etype, surfaceTag, surfaceTag)
		for _, v := range cell {
			fmt.Fprintf(w, " %d", v+1)
		}
		fmt.Fprintf(w, "\n")
		elemID++
	}
	fmt.Fprintf(w, "$EndElements\n")

	return w.Flush()
}
