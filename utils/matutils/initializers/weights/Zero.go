package weights

// ZeroUV implements the distuv.Rander interface so that zero
// initialization can be expressed through initializers that draw from
// a univariate distribution.
type ZeroUV struct{}

// NewZeroUV returns a new ZeroUV
func NewZeroUV() ZeroUV {
	return ZeroUV{}
}

// Rand always returns 0
func (z ZeroUV) Rand() float64 {
	return 0.0
}
