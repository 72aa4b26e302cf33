package ConvectionSource1D

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/gofvm/FV1D"
	"github.com/stretchr/testify/assert"
)

func TestConvectionSource(t *testing.T) {
	{ // Reference case, power law scheme on 5000 cells
		c := NewConvection(1, 1, 1, 10, 5000, FV1D.PowerLaw)
		assert.NoError(t, c.Solve())
		assert.True(t, c.MaxError() <= 1.e-3)
		assert.True(t, c.RMSError() <= c.MaxError())
		// Solution decays monotonically from the inlet value
		phi := c.Phi.DataP
		assert.True(t, phi[0] < c.Phi0)
		for i := 1; i < len(phi); i++ {
			assert.True(t, phi[i] > 0)
			assert.True(t, phi[i] < phi[i-1])
		}
		assert.True(t, near(1, c.Exact(0), 1.e-12))
		assert.True(t, near(math.Exp(-10), c.Exact(10), 1.e-15))
	}
	{ // First order convergence under grid refinement
		var errs [2]float64
		for i, k := range []int{250, 500} {
			c := NewConvection(1, 1, 1, 10, k, FV1D.PowerLaw)
			assert.NoError(t, c.Solve())
			errs[i] = c.MaxError()
		}
		p := math.Log(errs[0]/errs[1]) / math.Log(2)
		assert.True(t, p > 0.7 && p < 1.3)
	}
}

func TestConvectionCSV(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "convection.csv")
	for _, k := range []int{100, 200} {
		c := NewConvection(1, 1, 1, 10, k, FV1D.Upwind)
		assert.NoError(t, c.Solve())
		assert.NoError(t, c.AppendToCSV(fileName))
	}
	f, err := os.Open(fileName)
	assert.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(records))
	assert.Equal(t, []string{"scheme", "cells", "max_err", "rms_err"}, records[0])
	assert.Equal(t, "upwind", records[1][0])
	assert.Equal(t, "100", records[1][1])
	assert.Equal(t, "200", records[2][1])
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
