package FV1D

import (
	"fmt"
	"math"
	"strings"
)

// SchemeType selects the convection face interpolation.
type SchemeType uint8

const (
	Central SchemeType = iota
	Upwind
	Hybrid
	PowerLaw
	Exponential
)

func (st SchemeType) String() string {
	switch st {
	case Central:
		return "central"
	case Upwind:
		return "upwind"
	case Hybrid:
		return "hybrid"
	case PowerLaw:
		return "powerLaw"
	case Exponential:
		return "exponential"
	}
	return "unknown"
}

func ParseScheme(name string) (st SchemeType, err error) {
	switch strings.ToLower(name) {
	case "central", "cds":
		st = Central
	case "upwind", "uds":
		st = Upwind
	case "hybrid":
		st = Hybrid
	case "powerlaw", "power":
		st = PowerLaw
	case "exponential":
		st = Exponential
	default:
		err = fmt.Errorf("unknown convection scheme %q", name)
	}
	return
}

/*
Weight is the diffusive conductance multiplier A(|Pe|) of the scheme at the
given face Peclet number. The face coefficients follow the standard flux
form

	cP = D A(|Pe|) + max(F, 0)
	cN = D A(|Pe|) + max(-F, 0)

so a zero weight leaves pure upwinding and a unit weight at Pe = 0 recovers
the central difference.
*/
func (st SchemeType) Weight(pe float64) float64 {
	ap := math.Abs(pe)
	switch st {
	case Central:
		return 1 - 0.5*ap
	case Upwind:
		return 1
	case Hybrid:
		return math.Max(0, 1-0.5*ap)
	case PowerLaw:
		return math.Max(0, math.Pow(1-0.1*ap, 5))
	case Exponential:
		if ap < 1.e-12 {
			return 1 - 0.5*ap
		}
		return ap / (math.Exp(ap) - 1)
	}
	panic(fmt.Errorf("unknown convection scheme %d", st))
}
