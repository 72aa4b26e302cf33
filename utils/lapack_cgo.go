//go:build cgo
// +build cgo

package utils

/*
#cgo CFLAGS: -march=native
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
#include <cblas.h>
#include <lapacke.h>
*/
import "C"

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Route the dense kernels through OpenBLAS when built with cgo. The sparse
// matrix vector products in the solvers stay in pure Go either way.
func init() {
	blas64.Use(netblas.Implementation{})
	fmt.Println("Using netlib BLAS bindings for dense linear algebra")
}
