// Package physics implements deterministic 2-dimensional rigid-body
// dynamics against an implicit, immovable ground plane at y = 0.
package physics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Collider is a fixed contact point on a rigid body, held in body-local
// coordinates. During a simulation step a collider records whether it
// received an impulse in the predictive collision pass (collided), in
// the resting-contact pass (contacted), and the total impulse applied
// at it in the body frame. All three are reset at the start of every
// step.
//
// The strength matrix maps the accumulated body-frame impulse to a
// normalized stress vector. A stress norm above 1 means the structure
// at this point has been loaded beyond its rating.
type Collider struct {
	pos      r2.Vec
	strength mat.Matrix

	collided  bool
	contacted bool
	impulse   r2.Vec
}

// NewCollider creates a collider at body-local position pos with the
// given 2x2 strength matrix.
func NewCollider(pos r2.Vec, strength mat.Matrix) (*Collider, error) {
	r, c := strength.Dims()
	if r != 2 || c != 2 {
		return nil, fmt.Errorf("newCollider: strength matrix must be "+
			"2x2, got %vx%v", r, c)
	}
	return &Collider{pos: pos, strength: strength}, nil
}

// LocalPosition returns the collider's position in the body frame
func (c *Collider) LocalPosition() r2.Vec {
	return c.pos
}

// Collided returns whether the collider received an impulse during the
// predictive collision pass of the current step
func (c *Collider) Collided() bool {
	return c.collided
}

// Contacted returns whether the collider received an impulse during
// the resting-contact pass of the current step
func (c *Collider) Contacted() bool {
	return c.contacted
}

// Impulse returns the total impulse applied at the collider during the
// current step, in the body frame
func (c *Collider) Impulse() r2.Vec {
	return c.impulse
}

// Stress returns the norm of the normalized stress vector produced by
// the impulse accumulated at this collider during the current step
func (c *Collider) Stress() float64 {
	impulse := mat.NewVecDense(2, []float64{c.impulse.X, c.impulse.Y})
	stress := mat.NewVecDense(2, nil)
	stress.MulVec(c.strength, impulse)

	return mat.Norm(stress, 2)
}

// resetCollision clears the per-step collision state
func (c *Collider) resetCollision() {
	c.collided = false
	c.contacted = false
	c.impulse = r2.Vec{}
}
