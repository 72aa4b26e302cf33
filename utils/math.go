package utils

import (
	"math"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// POW raises x to a small integer power by repeated squaring, falling back
// to math.Pow beyond |p| = 8.
func POW(x float64, p int) (y float64) {
	n := p
	if n < 0 {
		n = -n
	}
	if n > 8 {
		return math.Pow(x, float64(p))
	}
	y = 1.
	for b := x; n > 0; n >>= 1 {
		if n&1 == 1 {
			y *= b
		}
		b *= b
	}
	if p < 0 {
		y = 1. / y
	}
	return
}
