package types

import (
	"fmt"
	"math"
)

/*
EdgeKey stores an edge's two vertex indices packed into a single comparable
value. The vertices are stored in ascending index order, so the key for the
edge between vertices [4] and [0] is the same as for [0] and [4]. It is used
to pair the faces shared between mesh cells.
*/
type EdgeKey uint64

func NewEdgeKey(v1, v2 int) (packed EdgeKey) {
	var (
		limit = math.MaxUint32
	)
	if v1 < 0 || v1 > limit || v2 < 0 || v2 > limit {
		panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs", v1, v2))
	}
	if v1 > v2 {
		v1, v2 = v2, v1
	}
	packed = EdgeKey(v1 + v2<<32)
	return
}

func (ek EdgeKey) Vertices() (v1, v2 int) {
	v2 = int(ek >> 32)
	v1 = int(ek - EdgeKey(v2)<<32)
	return
}
