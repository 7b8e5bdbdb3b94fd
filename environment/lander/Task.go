package lander

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/moonsim/golander/environment"
	"github.com/moonsim/golander/timestep"
	"github.com/moonsim/golander/utils/floatutils"
)

// Reward constants of the Land task. Every step costs TimeCost plus a
// fuel charge proportional to the clipped action, and episodes end with
// LandReward on a safe touchdown or CrashPenalty on destruction.
const (
	TimeCost     float64 = 1.0
	ThrustCost   float64 = 0.1
	RCSCost      float64 = 0.05
	LandReward   float64 = 100.0
	CrashPenalty float64 = -100.0
)

// landerTask is a Task that needs access to the Lander it runs in.
// Touchdown classification depends on the vehicle's contact state,
// which is not visible through state observations alone.
type landerTask interface {
	environment.Task
	register(*Lander)
}

// Land implements the environment.Task of landing the vehicle on both
// feet at low ground speed. Episodes end when the vehicle lands or
// crashes, leaves the legal position bounds, or hits the step limit.
type Land struct {
	environment.Starter
	env *Lander

	stepLimit environment.Ender
	bounds    environment.Ender
}

// NewLand creates and returns a new Land task, where the starter
// determines how episodes begin and cutoff is the maximum number of
// timesteps per episode.
func NewLand(starter environment.Starter, cutoff int) environment.Task {
	bounds := environment.NewIntervalLimit(
		[]r1.Interval{
			{Min: -MaxX, Max: MaxX},
			{Min: MinHeight, Max: MaxHeight},
		},
		[]int{0, 1},
		timestep.Timeout,
	)

	return &Land{
		Starter:   starter,
		stepLimit: environment.NewStepLimit(cutoff),
		bounds:    bounds,
	}
}

func (l *Land) register(env *Lander) {
	l.env = env
}

// GetReward returns the reward for taking action a in state state,
// transitioning to state nextState
func (l *Land) GetReward(state, a, nextState mat.Vector) float64 {
	thrust := floatutils.Clip(a.AtVec(0), 0, MaxThrust)
	rcs := floatutils.Clip(a.AtVec(1), -MaxRCS, MaxRCS)

	reward := -TimeCost - ThrustCost*thrust - RCSCost*math.Abs(rcs)

	if l.env.Crashed() {
		reward += CrashPenalty
	} else if l.env.Landed() {
		reward += LandReward
	}
	return reward
}

// AtGoal returns whether state is a goal state
func (l *Land) AtGoal(state mat.Matrix) bool {
	return l.env.Landed()
}

// Min returns the minimum possible reward
func (l *Land) Min() float64 {
	return CrashPenalty - TimeCost - ThrustCost*MaxThrust - RCSCost*MaxRCS
}

// Max returns the maximum possible reward
func (l *Land) Max() float64 {
	return LandReward - TimeCost
}

// RewardSpec returns the reward specification of the task
func (l *Land) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{l.Min()})
	upperBound := mat.NewVecDense(1, []float64{l.Max()})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Continuous)
}

// End determines whether the argument timestep is the last in the
// episode, modifying it in-place if so
func (l *Land) End(t *timestep.TimeStep) bool {
	if l.env.Landed() || l.env.Crashed() {
		t.StepType = timestep.Last
		t.SetEnd(timestep.TerminalStateReached)
		return true
	}
	if l.bounds.End(t) {
		return true
	}
	return l.stepLimit.End(t)
}
