package ConvectionSource1D

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/notargets/gofvm/FV1D"
	"github.com/notargets/gofvm/utils"
)

/*
Steady convection of a scalar with a linear implicit sink,

	d(u*phi)/dx + alpha*phi = 0, phi(0) = Phi0

on [0, XMax]. The exit is left open: no condition is imposed on the
right face, and the missing outflow flux is restored by feeding the
divergence of the convection coefficient at that face back in as an
implicit source. The analytic solution is Phi0*exp(-alpha*x/u).
*/
type Convection struct {
	// Input parameters
	U, Alpha, Phi0, XMax float64
	Scheme               FV1D.SchemeType
	Grid                 *FV1D.Grid1D
	Phi                  utils.Vector
}

func NewConvection(u, alpha, phi0, xmax float64, k int, scheme FV1D.SchemeType) (c *Convection) {
	c = &Convection{
		U:      u,
		Alpha:  alpha,
		Phi0:   phi0,
		XMax:   xmax,
		Scheme: scheme,
		Grid:   FV1D.NewGrid1D(k, 0, xmax),
	}
	fmt.Printf("U = %8.4f, Alpha = %8.4f, Num Cells K = %d\nConvection Scheme: %s\n\n",
		u, alpha, k, scheme)
	return
}

func (c *Convection) Solve() (err error) {
	sys := FV1D.NewSystem(c.Grid)
	sys.SetDirichlet(FV1D.Left, c.Phi0).
		AddConvection(c.U, 0, c.Scheme).
		AddImplicitSource(c.Alpha).
		AddImplicitSourceField(c.Grid.RightFaceDivergence(c.U))
	c.Phi, err = sys.Solve()
	return
}

func (c *Convection) Exact(x float64) float64 {
	return c.Phi0 * math.Exp(-c.Alpha*x/c.U)
}

// MaxError is the largest cell center deviation from the analytic solution.
func (c *Convection) MaxError() (maxErr float64) {
	for i, x := range c.Grid.X.DataP {
		if e := math.Abs(c.Phi.DataP[i] - c.Exact(x)); e > maxErr {
			maxErr = e
		}
	}
	return
}

// RMSError is the root mean square cell center deviation from the
// analytic solution.
func (c *Convection) RMSError() (rms float64) {
	for i, x := range c.Grid.X.DataP {
		e := c.Phi.DataP[i] - c.Exact(x)
		rms += e * e
	}
	rms = math.Sqrt(rms / float64(c.Grid.K))
	return
}

func (c *Convection) Run(showGraph bool, graphDelay ...time.Duration) {
	var (
		g     = c.Grid
		start = time.Now()
	)
	if err := c.Solve(); err != nil {
		panic(err)
	}
	fmt.Printf("Solved K = %d cells in %v\n", g.K, time.Since(start))
	fmt.Printf("max_err = %10.6e, rms_err = %10.6e, phi_min = %8.6f, phi_max = %8.6f\n",
		c.MaxError(), c.RMSError(), c.Phi.Min(), c.Phi.Max())
	if showGraph {
		delay := 500 * time.Millisecond
		if len(graphDelay) != 0 {
			delay = graphDelay[0]
		}
		exact := make([]float64, g.K)
		for i, x := range g.X.DataP {
			exact[i] = c.Exact(x)
		}
		lc := utils.NewLineChart(1920, 1080, g.Xmin, g.Xmax, -0.1, 1.1*c.Phi0)
		lc.Plot(0, g.X.DataP, exact, -0.7, "exact")
		lc.Plot(delay, g.X.DataP, c.Phi.DataP, 0.7, "phi")
	}
	return
}

// AppendToCSV adds one refinement entry to a convergence study file
// readable by the convOrder tool. The header row is written when the
// file is created.
func (c *Convection) AppendToCSV(filename string) (err error) {
	var (
		f      *os.File
		header bool
	)
	if _, err = os.Stat(filename); os.IsNotExist(err) {
		header = true
	}
	if f, err = os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	w := csv.NewWriter(f)
	if header {
		if err = w.Write([]string{"scheme", "cells", "max_err", "rms_err"}); err != nil {
			return
		}
	}
	rec := []string{
		c.Scheme.String(),
		strconv.Itoa(c.Grid.K),
		strconv.FormatFloat(c.MaxError(), 'e', 8, 64),
		strconv.FormatFloat(c.RMSError(), 'e', 8, 64),
	}
	if err = w.Write(rec); err != nil {
		return
	}
	w.Flush()
	err = w.Error()
	return
}
