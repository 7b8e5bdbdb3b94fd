// Package weights initializes weight matrices for linear function
// approximators
package weights

import "gonum.org/v1/gonum/mat"

// Initializer fills a weight matrix in-place with starting values
type Initializer interface {
	Initialize(weights *mat.Dense)
}
