package utils

type Index []int

func NewIndex(N int) (I Index) {
	I = make(Index, N)
	return
}

// NewRange creates an index over the inclusive range [rmin, rmax].
func NewRange(rmin, rmax int) (I Index) {
	I = make(Index, rmax-rmin+1)
	for i := range I {
		I[i] = i + rmin
	}
	return
}

// NewRangeOffset creates an index over the 1-based inclusive range [rmin, rmax],
// shifted to 0-based indices.
func NewRangeOffset(rmin, rmax int) (I Index) {
	I = NewRange(rmin-1, rmax-1)
	return
}

func (I Index) Copy() (R Index) {
	R = make(Index, len(I))
	copy(R, I)
	return
}

func (I Index) Add(val int) Index {
	for i := range I {
		I[i] += val
	}
	return I
}

func (I Index) Min() (min int) {
	min = I[0]
	for _, val := range I {
		if val < min {
			min = val
		}
	}
	return
}

func (I Index) Max() (max int) {
	max = I[0]
	for _, val := range I {
		if val > max {
			max = val
		}
	}
	return
}

func (I Index) Contains(val int) bool {
	for _, iv := range I {
		if iv == val {
			return true
		}
	}
	return false
}
