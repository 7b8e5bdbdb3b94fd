// Package actorcritic implements linear actor-critic algorithms for
// continuous action spaces
package actorcritic

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/moonsim/golander/agent"
	"github.com/moonsim/golander/agent/linear/continuous/policy"
	"github.com/moonsim/golander/environment"
	ts "github.com/moonsim/golander/timestep"
	"github.com/moonsim/golander/utils/matutils"
	"github.com/moonsim/golander/utils/matutils/initializers/weights"
)

// Config holds the hyperparameters of the LinearGaussian algorithm
type Config struct {
	ActorLearningRate  float64
	CriticLearningRate float64
	Decay              float64 // Eligibility trace decay λ
}

// Validate returns an error describing why the configuration is not
// legal, or nil if it is
func (c Config) Validate() error {
	if c.ActorLearningRate < 0 {
		return fmt.Errorf("actor learning rate cannot be negative")
	}
	if c.CriticLearningRate < 0 {
		return fmt.Errorf("critic learning rate cannot be negative")
	}
	if c.Decay < 0 || c.Decay > 1 {
		return fmt.Errorf("trace decay must be in [0, 1], got %v", c.Decay)
	}
	return nil
}

// LinearGaussian implements the Linear-Gaussian Actor-Critic algorithm:
//
// https://hal.inria.fr/hal-00764281/PDF/DegrisACC2012.pdf
//
// This algorithm uses linear function approximation to learn both a
// linear state value function critic and a Gaussian policy actor. The
// policy may select n-dimensional actions. The algorithm uses
// accumulating eligibility traces for both the actor and the critic
// gradients.
type LinearGaussian struct {
	*policy.Gaussian

	step     ts.TimeStep
	action   *mat.VecDense
	nextStep ts.TimeStep

	// Weights for linear function approximation
	meanWeights   *mat.Dense
	stdWeights    *mat.Dense
	criticWeights *mat.VecDense

	// Eligibility traces
	meanTrace   *mat.Dense
	stdTrace    *mat.Dense
	criticTrace *mat.VecDense

	actorLR    float64
	criticLR   float64
	decay      float64
	features   int
	actionDims int
}

// NewLinearGaussian returns a new LinearGaussian agent acting in env,
// with all weights initialized by init
func NewLinearGaussian(env environment.Environment, config Config,
	init weights.Initializer, seed uint64) (agent.Agent, error) {
	actionSpec := env.ActionSpec()
	if actionSpec.Cardinality != environment.Continuous {
		return nil, fmt.Errorf("newLinearGaussian: actions must be " +
			"continuous")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newLinearGaussian: %v", err)
	}

	features := env.ObservationSpec().Shape.Len()
	actionDims := actionSpec.Shape.Len()

	gaussianPolicy := policy.NewGaussian(seed, env)
	meanWeights := gaussianPolicy.Weights()[policy.MeanWeightsKey]
	stdWeights := gaussianPolicy.Weights()[policy.StdWeightsKey]
	criticWeightsMat := mat.NewDense(1, features, nil)

	init.Initialize(meanWeights)
	init.Initialize(stdWeights)
	init.Initialize(criticWeightsMat)

	criticWeights := mat.NewVecDense(features,
		criticWeightsMat.RawMatrix().Data)

	return &LinearGaussian{
		Gaussian: gaussianPolicy,

		meanWeights:   meanWeights,
		stdWeights:    stdWeights,
		criticWeights: criticWeights,

		meanTrace:   mat.NewDense(actionDims, features, nil),
		stdTrace:    mat.NewDense(actionDims, features, nil),
		criticTrace: mat.NewVecDense(features, nil),

		actorLR:    config.ActorLearningRate,
		criticLR:   config.CriticLearningRate,
		decay:      config.Decay,
		features:   features,
		actionDims: actionDims,
	}, nil
}

// Step updates the algorithm's weights
func (l *LinearGaussian) Step() {
	if l.IsEval() {
		return
	}

	state := l.step.Observation
	nextState := l.nextStep.Observation

	// TD error δ
	r := l.nextStep.Reward
	ℽ := l.nextStep.Discount
	stateValue := mat.Dot(l.criticWeights, state)
	nextStateValue := mat.Dot(l.criticWeights, nextState)
	δ := r + ℽ*nextStateValue - stateValue

	// Update the critic trace and weights
	l.criticTrace.AddScaledVec(state, ℽ*l.decay, l.criticTrace)
	l.criticWeights.AddScaledVec(l.criticWeights, l.criticLR*δ,
		l.criticTrace)

	mean := l.Gaussian.Mean(state)
	std := l.Gaussian.Std(state)
	action := l.action
	rows, cols := l.meanWeights.Dims()

	// Gradient of ln π with respect to the mean weights:
	// outer((a - μ) / σ², x)
	meanGradScale := mat.NewVecDense(l.actionDims, nil)
	meanGradScale.SubVec(action, mean)
	variance := mat.NewVecDense(l.actionDims, nil)
	variance.MulElemVec(std, std)
	meanGradScale.DivElemVec(meanGradScale, variance)
	meanGrad := mat.NewDense(rows, cols, nil)
	meanGrad.Outer(1.0, meanGradScale, state)

	// Gradient of ln π with respect to the log-standard-deviation
	// weights: outer((a - μ)² / σ² - 1, x)
	stdGradScale := mat.NewVecDense(l.actionDims, nil)
	stdGradScale.SubVec(action, mean)
	stdGradScale.MulElemVec(stdGradScale, stdGradScale)
	stdGradScale.DivElemVec(stdGradScale, variance)
	stdGradScale.SubVec(stdGradScale, matutils.VecOnes(l.actionDims))
	stdGrad := mat.NewDense(rows, cols, nil)
	stdGrad.Outer(1.0, stdGradScale, state)

	// Update the actor traces
	addMeanTrace := mat.NewDense(rows, cols, nil)
	addMeanTrace.Scale(ℽ*l.decay, l.meanTrace)
	l.meanTrace.Add(meanGrad, addMeanTrace)

	addStdTrace := mat.NewDense(rows, cols, nil)
	addStdTrace.Scale(ℽ*l.decay, l.stdTrace)
	l.stdTrace.Add(stdGrad, addStdTrace)

	// Update the actor weights
	addMean := mat.NewDense(rows, cols, nil)
	addMean.Scale(l.actorLR*δ, l.meanTrace)
	l.meanWeights.Add(l.meanWeights, addMean)

	addStd := mat.NewDense(rows, cols, nil)
	addStd.Scale(l.actorLR*δ, l.stdTrace)
	l.stdWeights.Add(l.stdWeights, addStd)
}

// Observe records the previously selected action and the timestep
// that it led to
func (l *LinearGaussian) Observe(a mat.Vector, nextStep ts.TimeStep) {
	l.step = l.nextStep
	l.action = a.(*mat.VecDense)
	l.nextStep = nextStep
}

// ObserveFirst observes the first timestep in an episode
func (l *LinearGaussian) ObserveFirst(t ts.TimeStep) {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "warning: ObserveFirst() called on %v "+
			"timestep", t.StepType)
	}
	l.step = t
	l.nextStep = t
}

// EndEpisode zeroes the eligibility traces for the next episode
func (l *LinearGaussian) EndEpisode() {
	l.criticTrace.Zero()
	l.stdTrace.Zero()
	l.meanTrace.Zero()
}
