package weights

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LinearUV initializes a single linear layer of weights, with every
// entry drawn independently from one univariate distribution.
type LinearUV struct {
	distuv.Rander
}

// NewLinearUV creates and returns a new LinearUV drawing weights from
// rand
func NewLinearUV(rand distuv.Rander) LinearUV {
	if rand == nil {
		panic("rand cannot be nil")
	}
	return LinearUV{rand}
}

// Initialize fills the weight matrix with values drawn from the
// distribution. A nil matrix is left untouched.
func (l LinearUV) Initialize(weights *mat.Dense) {
	if weights == nil {
		return
	}

	backing := weights.RawMatrix().Data
	for i := range backing {
		backing[i] = l.Rand()
	}
}
