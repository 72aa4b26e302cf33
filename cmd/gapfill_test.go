package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/notargets/gofvm/InputParameters"
)

func TestGapFillInput(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
Gamma: 2.
CellSize: 0.05
Mesher: gmsh # Can be delaunay
Tolerance: 1.e-10
`)
	input := InputParameters.NewCaseParameters()
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, input.Title, "Test Case")
	assert.Equal(t, input.Gamma, 2.)
	assert.Equal(t, input.CellSize, 0.05)
	assert.Equal(t, input.Mesher, "gmsh")
	assert.Equal(t, input.Tolerance, 1.e-10)
	// Fields the file does not set keep their defaults
	assert.Equal(t, input.DomainHeight, 5.)
	assert.Equal(t, input.K, 5000)
	assert.Equal(t, input.Scheme, "powerLaw")
	input.Print()
	gp := input.GapFillParams()
	assert.Equal(t, gp.CellSize, 0.05)
	assert.Equal(t, gp.DesiredDomainHeight, 5.)
}
