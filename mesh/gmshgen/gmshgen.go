package gmshgen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/mesh/readers"
)

/*
Script emits the geometry script for the composite gap fill mesh: the fine
region as a recombined extrusion of the bottom line, the transition band as
a plane surface with characteristic lengths grading from cellSize to the
domain width, and the boundary layer as a recombined extrusion of the band's
top line. Generator versions before 2.7 need the characteristic length
offset by a small epsilon to produce the structured fine region, so legacy
selects cellSize/(10 nx) as that offset.
*/
func Script(gp mesh.GapFillParams, legacy bool) (script string, err error) {
	s, err := gp.Sizes()
	if err != nil {
		return
	}

	var eps float64
	if legacy {
		eps = gp.CellSize / float64(s.Nx*10)
	}

	script = fmt.Sprintf(`ny       = %d;
cellSize = %g - %g;
height   = %g;
width    = %g;
boundaryLayerHeight = %g;
transitionRegionHeight = %g;
numberOfBoundaryLayerCells = %d;

Point(1) = {0, 0, 0, cellSize};
Point(2) = {width, 0, 0, cellSize};
Line(3) = {1, 2};

Point(10) = {0, height, 0, cellSize};
Point(11) = {width, height, 0, cellSize};
Point(12) = {0, height + transitionRegionHeight, 0, width};
Point(13) = {width, height + transitionRegionHeight, 0, width};
Line(14) = {10,11};
Line(15) = {11,13};
Line(16) = {13,12};
Line(17) = {12,10};
Line Loop(18) = {14, 15, 16, 17};
Plane Surface(19) = {18};

Extrude{0, height, 0} {
    Line{3}; Layers{ ny }; Recombine;}

Line(100) = {12, 13};
Extrude{0, boundaryLayerHeight, 0} {
    Line{100}; Layers{ numberOfBoundaryLayerCells }; Recombine;}
`,
		s.Ny, gp.CellSize, eps, s.FineRegionHeight, s.DomainWidth,
		s.BoundaryLayerHeight, gp.TransitionRegionHeight,
		s.NumberOfBoundaryLayerCells)
	return
}

// Version reports the version string of the gmsh binary on the PATH.
func Version(ctx context.Context) (version string, err error) {
	out, err := exec.CommandContext(ctx, "gmsh", "-version").CombinedOutput()
	if err != nil {
		err = fmt.Errorf("unable to run gmsh: %w", err)
		return
	}
	version = strings.TrimSpace(string(out))
	return
}

func parseVersion(version string) (major, minor int) {
	parts := strings.SplitN(version, ".", 3)
	major, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return
}

// legacyVersion reports whether the generator predates 2.7, the first
// version meshing the fine region correctly without the epsilon offset.
func legacyVersion(version string) bool {
	major, minor := parseVersion(version)
	return major < 2 || (major == 2 && minor < 7)
}

/*
Generate builds the composite gap fill mesh with the external generator: it
writes the geometry script to workdir, invokes gmsh on it, parses the MSH 2.2
output and tags the outer boundary faces. The fine region grid is also built
in-process and kept on the result, callers interpolate trench fields onto it.
*/
func Generate(ctx context.Context, gp mesh.GapFillParams, workdir string) (gfm *mesh.GapFillMesh, err error) {
	s, err := gp.Sizes()
	if err != nil {
		return
	}

	version, err := Version(ctx)
	if err != nil {
		return
	}
	script, err := Script(gp, legacyVersion(version))
	if err != nil {
		return
	}

	geoFile := filepath.Join(workdir, "gapfill.geo")
	mshFile := filepath.Join(workdir, "gapfill.msh")
	if err = os.WriteFile(geoFile, []byte(script), 0644); err != nil {
		err = fmt.Errorf("unable to write the geometry script: %w", err)
		return
	}

	log.WithFields(log.Fields{
		"version": version,
		"geo":     geoFile,
	}).Debug("running the mesh generator")

	// The msh2 format flag only exists from version 4 on, before that 2.2
	// is the native output format
	args := []string{"-2"}
	if major, _ := parseVersion(version); major >= 4 {
		args = append(args, "-format", "msh2")
	}
	args = append(args, "-o", mshFile, geoFile)

	cmd := exec.CommandContext(ctx, "gmsh", args...)
	if out, cerr := cmd.CombinedOutput(); cerr != nil {
		err = fmt.Errorf("gmsh failed: %w\n%s", cerr, out)
		return
	}

	m, err := readers.ReadMsh2(mshFile)
	if err != nil {
		return
	}

	m.TagOuterBox(gp.CellSize * 1.e-6)
	if orphans := m.UntaggedBoundaryFaces(); len(orphans) != 0 {
		err = fmt.Errorf("%d boundary faces lie off the outer box in the generated mesh", len(orphans))
		return
	}

	fine := mesh.NewGrid2D(s.Nx, s.Ny, gp.CellSize, gp.CellSize, 0, 0)
	gfm = &mesh.GapFillMesh{Mesh: m, FineMesh: fine, Sizes: s}
	return
}
