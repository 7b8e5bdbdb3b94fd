// Package wrappers provides wrappers for environments
package wrappers

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/moonsim/golander/environment"
	ts "github.com/moonsim/golander/timestep"
	"github.com/moonsim/golander/utils/matutils"
	"github.com/moonsim/golander/utils/matutils/tilecoder"
)

// TileCoding wraps an environment and returns tile-coded
// representations of the environment's state observations. Tile coding
// converts a low-dimensional, bounded observation into a large, sparse
// binary vector with one nonzero feature per tiling; see
// tilecoder.TileCoder for details.
//
// TileCoding itself implements the environment.Environment interface
// and is therefore itself an environment. All tile-coded
// representations contain a bias unit as the first feature.
type TileCoding struct {
	environment.Environment
	coder *tilecoder.TileCoder
}

// NewTileCoding creates and returns a new TileCoding environment
// wrapping env. The wrapped environment is reset by calling its
// Reset() method, and the first timestep of the new episode is
// returned with its observation tile coded.
//
// The bins parameter specifies both how many tilings to use and the
// number of tiles per tiling: the length of the outer slice is the
// number of tilings, and the inner slices give the number of tiles
// along each observation dimension for that tiling.
func NewTileCoding(env environment.Environment, bins [][]int,
	seed uint64) (*TileCoding, ts.TimeStep) {
	envSpec := env.ObservationSpec()

	coder := tilecoder.New(envSpec.LowerBound, envSpec.UpperBound, bins,
		seed, true)

	step := env.Reset()
	step.Observation = coder.Encode(step.Observation)

	return &TileCoding{env, coder}, step
}

// Reset resets the environment to some starting state
func (t *TileCoding) Reset() ts.TimeStep {
	step := t.Environment.Reset()
	step.Observation = t.coder.Encode(step.Observation)

	return step
}

// Step takes one environmental step given action a and returns the
// next state as a timestep.TimeStep and a bool indicating whether or
// not the episode has ended
func (t *TileCoding) Step(a mat.Vector) (ts.TimeStep, bool) {
	step, last := t.Environment.Step(a)
	step.Observation = t.coder.Encode(step.Observation)

	return step, last
}

// ObservationSpec returns the observation specification of the
// environment
func (t *TileCoding) ObservationSpec() environment.Spec {
	length := t.coder.VecLength()
	shape := mat.NewVecDense(length, nil)

	lowerBound := mat.NewVecDense(length, nil)
	upperBound := matutils.VecOnes(length)

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Continuous)
}

// String returns a string representation of the TileCoding environment
func (t *TileCoding) String() string {
	return fmt.Sprintf("TileCoding: %v", t.Environment)
}
