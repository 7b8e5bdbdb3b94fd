// Package lander implements a 2-dimensional lunar landing environment.
// A single rigid vehicle falls toward flat ground under lunar gravity,
// controlled by a main engine and a reaction control thruster. Episodes
// end when the vehicle lands on both feet, crashes, or drifts out of
// bounds.
package lander

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/moonsim/golander/environment"
	"github.com/moonsim/golander/physics"
	ts "github.com/moonsim/golander/timestep"
	"github.com/moonsim/golander/utils/floatutils"
)

const (
	// MaxThrust is the peak acceleration of the main engine in m/s^2,
	// applied along the vehicle's body-frame up direction. Commanded
	// thrust is clipped to [0, MaxThrust].
	MaxThrust float64 = 3.6

	// MaxRCS is the peak angular acceleration of the reaction control
	// thruster in rad/s^2. Commanded values are clipped to
	// [-MaxRCS, MaxRCS].
	MaxRCS float64 = 0.4

	// ActionDims is the dimensionality of actions: main engine thrust
	// and reaction control.
	ActionDims int = 2

	// ObservationDims is the dimensionality of state observations:
	// x, y, vx, vy, angle, angular velocity, and the contact flags of
	// the two landing feet.
	ObservationDims int = 8

	// Ground-speed thresholds for classifying a two-footed touchdown.
	// Between the two, touchdown is left unclassified and the episode
	// continues.
	CrashSpeed float64 = 1.0
	LandSpeed  float64 = 0.5

	// State observation bounds
	MaxX            float64 = 150.0
	MinHeight       float64 = -10.0
	MaxHeight       float64 = 300.0
	MaxSpeed        float64 = 50.0
	MaxAngle        float64 = 2 * math.Pi
	MaxAngularSpeed float64 = 3.0

	// DefaultTimeStep is the physics integration step in seconds, and
	// DefaultSubSteps the number of physics steps per agent action.
	DefaultTimeStep float64 = 0.1
	DefaultSubSteps int     = 5
)

// status is the flight phase of the vehicle. Once a terminal phase is
// entered it is never left until the next Reset.
type status int

const (
	flying status = iota
	landed
	crashed
)

func (s status) String() string {
	switch s {
	case landed:
		return "Landed"
	case crashed:
		return "Crashed"
	default:
		return "Flying"
	}
}

// Lander implements the lunar landing environment. Actions are
// 2-dimensional continuous vectors of (main engine thrust, reaction
// control acceleration); out-of-range actions are clipped, not
// rejected. State observations are 8-dimensional continuous vectors of
// the vehicle pose, its velocities, and the two foot contact flags.
type Lander struct {
	environment.Task
	body *physics.RigidBody

	dt       float64
	subSteps int
	discount float64

	status   status
	lastStep ts.TimeStep
}

// New creates a new Lander environment with the given task. The dt
// argument is the physics integration step, and each call to Step
// advances the physics by subSteps such steps.
func New(task environment.Task, discount, dt float64,
	subSteps int) (*Lander, ts.TimeStep, error) {
	if dt <= 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("lander: dt must be positive, "+
			"got %v", dt)
	}
	if subSteps < 1 {
		return nil, ts.TimeStep{}, fmt.Errorf("lander: need at least one "+
			"physics step per action, got %v", subSteps)
	}

	lander := &Lander{
		Task:     task,
		body:     newVehicle(),
		dt:       dt,
		subSteps: subSteps,
		discount: discount,
	}

	if t, ok := task.(landerTask); ok {
		t.register(lander)
	}

	firstStep := lander.Reset()
	return lander, firstStep, nil
}

// Reset resets the environment to some starting state drawn from the
// Task's Starter and returns the first timestep of the new episode. The
// vehicle takes a single zero-duration physics step from the starting
// pose so that the foot contact flags of the first observation reflect
// the starting pose.
func (l *Lander) Reset() ts.TimeStep {
	state := l.Start()
	validateState(state)

	l.body.SetPosition(r2.Vec{X: state.AtVec(0), Y: state.AtVec(1)})
	l.body.SetVelocity(r2.Vec{X: state.AtVec(2), Y: state.AtVec(3)})
	l.body.SetAngle(state.AtVec(4))
	l.body.SetAngularVelocity(state.AtVec(5))
	l.body.ResetBreakage()
	l.status = flying

	l.advance(0, 0, 0)

	firstStep := ts.New(ts.First, 0, l.discount, l.observation(), 0)
	l.lastStep = firstStep
	return firstStep
}

// Step takes one environmental step given action a and returns the next
// timestep and whether it is the last timestep of the episode. The
// first action component is the main engine thrust and the second the
// reaction control acceleration; both are clipped into their legal
// ranges before use.
func (l *Lander) Step(a mat.Vector) (ts.TimeStep, bool) {
	thrust := floatutils.Clip(a.AtVec(0), 0, MaxThrust)
	rcs := floatutils.Clip(a.AtVec(1), -MaxRCS, MaxRCS)

	for i := 0; i < l.subSteps; i++ {
		l.advance(l.dt, thrust, rcs)
	}

	nextObs := l.observation()
	reward := l.GetReward(l.lastStep.Observation, a, nextObs)

	nextStep := ts.New(ts.Mid, reward, l.discount, nextObs,
		l.lastStep.Number+1)
	l.End(&nextStep)

	l.lastStep = nextStep
	return nextStep, nextStep.Last()
}

// advance runs a single physics step under the (already clipped)
// thrust and reaction control commands and, while the vehicle is still
// flying, classifies the resulting contact state. Terminal phases are
// sticky: once landed or crashed, later contacts change nothing.
func (l *Lander) advance(dt, thrust, rcs float64) {
	sin, cos := math.Sincos(l.body.Angle())
	accel := r2.Vec{X: -sin * thrust, Y: cos*thrust - Gravity}

	force := r2.Scale(l.body.Mass(), accel)
	torque := rcs * l.body.MomentOfInertia()

	l.body.Update(dt, force, torque)

	if l.status != flying {
		return
	}

	if l.body.Breakage() > 1 {
		l.status = crashed
		return
	}

	colliders := l.body.Colliders()
	if colliders[0].Contacted() && colliders[1].Contacted() {
		groundSpeed := math.Abs(l.body.Velocity().X)
		switch {
		case groundSpeed > CrashSpeed:
			l.status = crashed
		case groundSpeed < LandSpeed:
			l.status = landed
		}
	}
}

// observation returns the current 8-dimensional state observation
func (l *Lander) observation() *mat.VecDense {
	pos := l.body.Position()
	vel := l.body.Velocity()
	colliders := l.body.Colliders()

	return mat.NewVecDense(ObservationDims, []float64{
		pos.X,
		pos.Y,
		vel.X,
		vel.Y,
		l.body.Angle(),
		l.body.AngularVelocity(),
		contactFlag(colliders[0]),
		contactFlag(colliders[1]),
	})
}

// Landed returns whether the vehicle has come to rest on both feet
func (l *Lander) Landed() bool {
	return l.status == landed
}

// Crashed returns whether the vehicle has been destroyed, either by
// structural failure or by touching down too fast
func (l *Lander) Crashed() bool {
	return l.status == crashed
}

// Breakage returns the peak normalized structural stress the vehicle
// has seen this episode
func (l *Lander) Breakage() float64 {
	return l.body.Breakage()
}

// Body returns the underlying rigid body of the vehicle
func (l *Lander) Body() *physics.RigidBody {
	return l.body
}

// CurrentTimeStep returns the last timestep returned by Reset or Step
func (l *Lander) CurrentTimeStep() ts.TimeStep {
	return l.lastStep
}

// DiscountSpec returns the discounting specification of the environment
func (l *Lander) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	discount := mat.NewVecDense(1, []float64{l.discount})

	return environment.NewSpec(shape, environment.Discount, discount,
		discount, environment.Continuous)
}

// ObservationSpec returns the observation specification of the
// environment
func (l *Lander) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)
	lowerBound := mat.NewVecDense(ObservationDims, []float64{
		-MaxX, MinHeight, -MaxSpeed, -MaxSpeed, -MaxAngle,
		-MaxAngularSpeed, 0, 0,
	})
	upperBound := mat.NewVecDense(ObservationDims, []float64{
		MaxX, MaxHeight, MaxSpeed, MaxSpeed, MaxAngle,
		MaxAngularSpeed, 1, 1,
	})

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Continuous)
}

// ActionSpec returns the action specification of the environment
func (l *Lander) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{0, -MaxRCS})
	upperBound := mat.NewVecDense(ActionDims, []float64{MaxThrust, MaxRCS})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Continuous)
}

func (l *Lander) String() string {
	pos := l.body.Position()
	vel := l.body.Velocity()

	return fmt.Sprintf("Lander  |  Status: %v  |  Position: (%.3f, %.3f)"+
		"  |  Velocity: (%.3f, %.3f)  |  Angle: %.3f", l.status, pos.X,
		pos.Y, vel.X, vel.Y, l.body.Angle())
}

// validateState panics if a starting state drawn from a Starter is not
// a legal 6-dimensional vehicle state
func validateState(state mat.Vector) {
	if state.Len() != 6 {
		panic(fmt.Sprintf("starting states must have 6 features (x, y, "+
			"vx, vy, angle, angular velocity), got %v", state.Len()))
	}
	for i := 0; i < state.Len(); i++ {
		if math.IsNaN(state.AtVec(i)) || math.IsInf(state.AtVec(i), 0) {
			panic(fmt.Sprintf("starting state feature %v is not finite", i))
		}
	}
}

func contactFlag(c *physics.Collider) float64 {
	if c.Contacted() {
		return 1
	}
	return 0
}
