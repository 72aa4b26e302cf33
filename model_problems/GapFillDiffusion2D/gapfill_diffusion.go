package GapFillDiffusion2D

import (
	"fmt"
	"time"

	"github.com/notargets/gofvm/FV2D"
	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/mesh/readers"
	"github.com/notargets/gofvm/utils"
)

/*
Steady diffusion across a composite gap fill mesh,

	div(Gamma*grad(phi)) = 0

with phi fixed to 0 on the bottom boundary and to the domain height on the
top boundary. The solution is phi = y independent of the mesh grading, which
makes the case a direct check on the flux balance across the fine, transition
and boundary layer region seams. Relative errors are measured against the
cell centroid heights.
*/
type Diffusion struct {
	// Input parameters
	Params        mesh.GapFillParams
	Gamma         float64
	Tolerance     float64
	MaxIterations int
	GFM           *mesh.GapFillMesh
	Phi           FV2D.Field
	chart         *utils.SurfacePlot
}

// NewDiffusion builds the case on gfm, or on the in process composite mesher
// when gfm is nil.
func NewDiffusion(gp mesh.GapFillParams, gamma float64, gfm *mesh.GapFillMesh) (d *Diffusion, err error) {
	if gfm == nil {
		if gfm, err = mesh.NewGapFillMesh(gp, nil); err != nil {
			return
		}
	}
	d = &Diffusion{
		Params:        gp,
		Gamma:         gamma,
		Tolerance:     1.e-12,
		MaxIterations: 4 * gfm.NumCells,
		GFM:           gfm,
	}
	fmt.Printf("Domain = %gx%g, Cell Size = %g, Num Cells K = %d (%d fine)\nDiffusivity Gamma = %8.4f\n\n",
		gfm.Sizes.DomainWidth, gp.DesiredDomainHeight, gp.CellSize,
		gfm.NumCells, gfm.FineMesh.NumCells, gamma)
	return
}

func (d *Diffusion) Solve(monitor ...func(iteration int, residual float64)) (iterations int, err error) {
	l := FV2D.NewLaplace(d.GFM.Mesh, d.Gamma)
	if err = l.Dirichlet("bottom", 0); err != nil {
		return
	}
	if err = l.Dirichlet("top", d.Params.DesiredDomainHeight); err != nil {
		return
	}
	d.Phi, iterations, err = l.Solve(d.Tolerance, d.MaxIterations, monitor...)
	return
}

func (d *Diffusion) Exact(x, y float64) float64 {
	_ = x
	return y
}

func (d *Diffusion) MaxError() float64 {
	return d.Phi.MaxRelativeError(d.Exact)
}

func (d *Diffusion) RMSError() float64 {
	return d.Phi.GlobalRelativeError(d.Exact)
}

func (d *Diffusion) Run(showGraph bool, graphDelay ...time.Duration) {
	start := time.Now()
	iterations, err := d.Solve()
	if err != nil {
		panic(err)
	}
	fmt.Printf("Solved K = %d cells in %d iterations (%v)\n",
		d.GFM.NumCells, iterations, time.Since(start))
	fmt.Printf("max_rel_err = %10.6e, rms_rel_err = %10.6e, phi_min = %8.6f, phi_max = %8.6f\n",
		d.MaxError(), d.RMSError(), d.Phi.Values.Min(), d.Phi.Values.Max())
	if showGraph {
		delay := 5000 * time.Millisecond
		if len(graphDelay) != 0 {
			delay = graphDelay[0]
		}
		d.PlotPhi()
		utils.SleepFor(int(delay.Milliseconds()))
	}
	return
}

// PlotPhi renders the solution as a colored surface with the cell edges
// overlaid.
func (d *Diffusion) PlotPhi() {
	if d.chart == nil {
		gm, _ := d.GFM.ToGraphics()
		xmin, xmax, ymin, ymax := d.GFM.BoundingBox()
		d.chart = utils.NewSurfacePlot(1080, 1920, xmin, xmax, ymin, ymax, &gm)
	}
	d.chart.AddColorMap(0, d.Params.DesiredDomainHeight)
	d.chart.AddFunctionSurface(d.Phi.VertexValues())
	d.chart.AddMeshLines()
}

// SaveMesh writes the composite mesh for use by external solvers and the
// meshinfo command.
func (d *Diffusion) SaveMesh(fileName string) {
	if err := readers.WriteMsh2(d.GFM.Mesh, fileName); err != nil {
		panic(err)
	}
	fmt.Printf("Saved mesh: %s (%d cells, %d vertices)\n",
		fileName, d.GFM.NumCells, d.GFM.NumVertices)
}
