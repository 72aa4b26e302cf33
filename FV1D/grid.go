package FV1D

import (
	"fmt"

	"github.com/notargets/gofvm/utils"
)

/*
Grid1D is a uniform cell centered 1-D grid of K cells spanning [Xmin, Xmax].
X holds the cell centers, Xf the K+1 face coordinates. Face areas are unit,
so cell volumes equal Dx.
*/
type Grid1D struct {
	K          int
	Xmin, Xmax float64
	Dx         float64
	X          utils.Vector
	Xf         utils.Vector
}

func NewGrid1D(K int, xmin, xmax float64) (g *Grid1D) {
	if K < 1 {
		panic(fmt.Errorf("need at least one cell, have K = %d", K))
	}
	if xmax <= xmin {
		panic(fmt.Errorf("empty interval [%v, %v]", xmin, xmax))
	}
	g = &Grid1D{
		K:    K,
		Xmin: xmin,
		Xmax: xmax,
		Dx:   (xmax - xmin) / float64(K),
		X:    utils.NewVector(K),
		Xf:   utils.NewVector(K + 1),
	}
	for i := 0; i < K; i++ {
		g.X.DataP[i] = xmin + (float64(i)+0.5)*g.Dx
	}
	for i := 0; i <= K; i++ {
		g.Xf.DataP[i] = xmin + float64(i)*g.Dx
	}
	return
}

/*
RightFaceDivergence is the divergence of the outlet face indicator scaled by
u: zero everywhere except the last cell, which receives u times face area
over cell volume. Feeding it to an implicit source term closes the outflow
boundary without referencing a downstream value.
*/
func (g *Grid1D) RightFaceDivergence(u float64) (div utils.Vector) {
	div = utils.NewVector(g.K)
	div.DataP[g.K-1] = u / g.Dx
	return
}
