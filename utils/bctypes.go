package utils

type BCType uint8

const (
	BC_None BCType = iota
	BC_Dirichlet
	BC_Neumann
	BC_Outflow
)

var bcNames = []string{"None", "Dirichlet", "Neumann", "Outflow"}

func (bt BCType) String() string {
	if int(bt) >= len(bcNames) {
		return "Unknown"
	}
	return bcNames[bt]
}
