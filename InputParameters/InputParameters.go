package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofvm/mesh"
)

// Parameters obtained from the YAML input file
type CaseParameters struct {
	Title string  `yaml:"Title"`
	Gamma float64 `yaml:"Gamma"`
	// Convection case
	U      float64 `yaml:"U"`
	Alpha  float64 `yaml:"Alpha"`
	Phi0   float64 `yaml:"Phi0"`
	XMax   float64 `yaml:"XMax"`
	K      int     `yaml:"K"`
	Scheme string  `yaml:"Scheme"`
	// Gap fill case
	CellSize               float64 `yaml:"CellSize"`
	DomainWidth            float64 `yaml:"DomainWidth"`
	DomainHeight           float64 `yaml:"DomainHeight"`
	FineRegionHeight       float64 `yaml:"FineRegionHeight"`
	TransitionRegionHeight float64 `yaml:"TransitionRegionHeight"`
	Mesher                 string  `yaml:"Mesher"` // delaunay or gmsh
	// Solver controls
	Tolerance     float64 `yaml:"Tolerance"`
	MaxIterations int     `yaml:"MaxIterations"`
}

// NewCaseParameters carries the reference values of both model problems,
// overridden by whatever the input file sets.
func NewCaseParameters() *CaseParameters {
	return &CaseParameters{
		Title:                  "Default Case",
		Gamma:                  1,
		U:                      1,
		Alpha:                  1,
		Phi0:                   1,
		XMax:                   10,
		K:                      5000,
		Scheme:                 "powerLaw",
		CellSize:               0.1,
		DomainWidth:            1,
		DomainHeight:           5,
		FineRegionHeight:       1,
		TransitionRegionHeight: 2,
		Mesher:                 "delaunay",
		Tolerance:              1.e-12,
		MaxIterations:          1000,
	}
}

func (cp *CaseParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *CaseParameters) GapFillParams() mesh.GapFillParams {
	return mesh.GapFillParams{
		CellSize:                cp.CellSize,
		DesiredDomainWidth:      cp.DomainWidth,
		DesiredDomainHeight:     cp.DomainHeight,
		DesiredFineRegionHeight: cp.FineRegionHeight,
		TransitionRegionHeight:  cp.TransitionRegionHeight,
	}
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("%8.5f\t\t= Gamma\n", cp.Gamma)
	fmt.Printf("%8.5f\t\t= U\n", cp.U)
	fmt.Printf("%8.5f\t\t= Alpha\n", cp.Alpha)
	fmt.Printf("%8.5f\t\t= Phi0\n", cp.Phi0)
	fmt.Printf("%8.5f\t\t= XMax\n", cp.XMax)
	fmt.Printf("[%d]\t\t\t= K\n", cp.K)
	fmt.Printf("[%s]\t\t= Scheme\n", cp.Scheme)
	fmt.Printf("%8.5f\t\t= CellSize\n", cp.CellSize)
	fmt.Printf("%8.5f\t\t= DomainWidth\n", cp.DomainWidth)
	fmt.Printf("%8.5f\t\t= DomainHeight\n", cp.DomainHeight)
	fmt.Printf("%8.5f\t\t= FineRegionHeight\n", cp.FineRegionHeight)
	fmt.Printf("%8.5f\t\t= TransitionRegionHeight\n", cp.TransitionRegionHeight)
	fmt.Printf("[%s]\t\t= Mesher\n", cp.Mesher)
	fmt.Printf("%8.1e\t\t= Tolerance\n", cp.Tolerance)
	fmt.Printf("[%d]\t\t\t= MaxIterations\n", cp.MaxIterations)
}
