package utils

import (
	"image/color"
	"time"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/functions"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"
)

type ColorName uint8

const (
	White ColorName = iota
	Blue
	Red
	Green
	Black
)

var palette = map[ColorName]color.RGBA{
	White: {R: 255, G: 255, B: 255},
	Blue:  {R: 50, B: 255},
	Red:   {R: 255, B: 50},
	Green: {R: 25, G: 255, B: 25},
	Black: {},
}

func GetColor(name ColorName) (c color.RGBA) {
	return palette[name]
}

func SleepFor(milliseconds int) {
	time.Sleep(time.Duration(milliseconds) * time.Millisecond)
}

// ArraysToPoints zips separate x and y slices into the point slice the
// graphics layer consumes.
func ArraysToPoints(x, y []float64) (points []graphics2D.Point) {
	points = make([]graphics2D.Point, len(x))
	for i := range x {
		points[i].X[0] = float32(x[i])
		points[i].X[1] = float32(y[i])
	}
	return
}

// LineChart plots 1-D profiles, one named series per call.
type LineChart struct {
	Chart    *chart2d.Chart2D
	ColorMap *utils2.ColorMap
}

func NewLineChart(width, height int, xmin, xmax, fmin, fmax float64) (lc *LineChart) {
	chart := chart2d.NewChart2D(width, height,
		float32(xmin), float32(xmax), float32(fmin), float32(fmax))
	go chart.Plot()
	lc = &LineChart{
		Chart: chart,
		// lineColor spans -1 (red) to 1 (blue) on this map
		ColorMap: utils2.NewColorMap(-1, 1, 1),
	}
	return
}

func (lc *LineChart) Plot(graphDelay time.Duration, x, f []float64, lineColor float64, lineName string) {
	if err := lc.Chart.AddSeries(lineName, x, f,
		chart2d.NoGlyph, chart2d.Solid, lc.ColorMap.GetRGB(float32(lineColor))); err != nil {
		panic("unable to add graph series")
	}
	time.Sleep(graphDelay)
}

// SurfacePlot renders a cell field on a triangulated mesh, optionally with
// the element edges overlaid.
type SurfacePlot struct {
	Chart        *chart2d.Chart2D
	ColorMap     *utils2.ColorMap
	GraphicsMesh *graphics2D.TriMesh
}

func NewSurfacePlot(width, height int, xmin, xmax, ymin, ymax float64,
	gm *graphics2D.TriMesh) (sp *SurfacePlot) {
	chart := chart2d.NewChart2D(width, height,
		float32(xmin), float32(xmax), float32(ymin), float32(ymax))
	go chart.Plot()
	sp = &SurfacePlot{
		Chart:        chart,
		GraphicsMesh: gm,
	}
	return
}

func (sp *SurfacePlot) AddColorMap(fmin, fmax float64) {
	sp.ColorMap = utils2.NewColorMap(float32(fmin), float32(fmax), 1.)
	sp.Chart.AddColorMap(sp.ColorMap)
}

// AddFunctionSurface colors the mesh by the vertex values of field.
func (sp *SurfacePlot) AddFunctionSurface(field []float32) {
	fs := functions.NewFSurface(sp.GraphicsMesh, [][]float32{field}, 0)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 1}
	if err := sp.Chart.AddFunctionSurface("FSurface", *fs, chart2d.NoLine, white); err != nil {
		panic("unable to add function surface series")
	}
}

// AddMeshLines draws the element edges of the plot's graphics mesh.
func (sp *SurfacePlot) AddMeshLines() {
	if err := sp.Chart.AddTriMesh("TriMesh", *sp.GraphicsMesh,
		chart2d.NoGlyph, chart2d.Solid, GetColor(White)); err != nil {
		panic("unable to add graph series")
	}
}
