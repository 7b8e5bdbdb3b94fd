package lander

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/moonsim/golander/physics"
)

// Physical constants of the vehicle. The collider coordinates below
// are taken from the vehicle drawing and are given in image units on
// [0, 1] x [0, 1], y up; bodyCoords maps them into metres relative to
// the centre of mass.
const (
	Gravity float64 = 1.622 // m/s^2

	Mass            float64 = 11036.4 // kg
	MomentOfInertia float64 = 28258.7 // kg m^2
	MuStatic        float64 = 1.0
	MuKinetic       float64 = 0.9
	Restitution     float64 = 0.2

	// Vehicle span in metres and centre of mass in image units.
	span          float64 = 9.4
	centreOfMassX float64 = 0.5
	centreOfMassY float64 = 0.45

	// Structural ratings of a leg strut, in N s. Shear failure happens
	// at a fraction of the compressive rating.
	legStrength float64 = 3.0e4
	legShear    float64 = 0.4 * legStrength
)

// bodyCoords converts image coordinates to body-frame metres
func bodyCoords(x, y float64) r2.Vec {
	return r2.Vec{
		X: (x - centreOfMassX) * span,
		Y: (y - centreOfMassY) * span,
	}
}

// legCollider returns a foot contact point whose strength matrix
// resolves impulses along the strut direction: the compressive rating
// applies along the strut, the shear rating across it.
func legCollider(x, y, strutDir float64) *physics.Collider {
	sin, cos := math.Sincos(strutDir)
	strength := mat.NewDense(2, 2, []float64{
		cos / legStrength, sin / legStrength,
		-sin / legShear, cos / legShear,
	})

	c, err := physics.NewCollider(bodyCoords(x, y), strength)
	if err != nil {
		panic(err)
	}
	return c
}

// bodyCollider returns a hull contact point. The identity strength
// matrix means any meaningful impulse on the hull drives breakage far
// past 1: hull contact is structural failure.
func bodyCollider(x, y float64) *physics.Collider {
	c, err := physics.NewCollider(bodyCoords(x, y),
		mat.NewDense(2, 2, []float64{1, 0, 0, 1}))
	if err != nil {
		panic(err)
	}
	return c
}

// makeColliders builds the vehicle's contact points. The two landing
// feet must stay at indices 0 and 1: the touchdown classification
// reads their contact flags.
func makeColliders() []*physics.Collider {
	return []*physics.Collider{
		legCollider(0.0541, 0.0456, math.Pi/6),
		legCollider(0.9459, 0.0456, 5*math.Pi/6),
		legCollider(0.0000, 0.0627, math.Pi/6),
		legCollider(1.0000, 0.0626, 5*math.Pi/6),
		bodyCollider(0.2251, 0.6980),
		bodyCollider(0.4729, 0.8348),
		bodyCollider(0.6211, 0.6809),
		bodyCollider(0.7493, 0.4929),
	}
}

// newVehicle constructs the rigid body of the lander
func newVehicle() *physics.RigidBody {
	body, err := physics.New(Mass, MomentOfInertia, MuStatic, MuKinetic,
		Restitution, makeColliders())
	if err != nil {
		panic(err)
	}
	return body
}
