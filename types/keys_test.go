package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeKey(t *testing.T) {
	{ // Vertex order does not change the key
		assert.Equal(t, NewEdgeKey(0, 4), NewEdgeKey(4, 0))
		assert.NotEqual(t, NewEdgeKey(0, 4), NewEdgeKey(0, 5))
	}
	{ // Round trip recovers the vertices in ascending order
		for _, pair := range [][2]int{{0, 0}, {0, 1}, {7, 3}, {123456, 654321}} {
			ek := NewEdgeKey(pair[0], pair[1])
			v1, v2 := ek.Vertices()
			lo, hi := pair[0], pair[1]
			if lo > hi {
				lo, hi = hi, lo
			}
			assert.Equal(t, lo, v1)
			assert.Equal(t, hi, v2)
		}
	}
	{ // Negative vertex indices are a programming error
		assert.Panics(t, func() { NewEdgeKey(-1, 2) })
	}
}
