package wrappers

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/moonsim/golander/environment"
	"github.com/moonsim/golander/environment/lander"
)

func newLander(t *testing.T) environment.Environment {
	t.Helper()

	intervals := []r1.Interval{
		{Min: 0, Max: 0},
		{Min: 100, Max: 100},
		{Min: 0, Max: 0},
		{Min: 0, Max: 0},
		{Min: 0, Max: 0},
		{Min: 0, Max: 0},
	}
	starter := environment.NewUniformStarter(intervals, 1)

	env, _, err := lander.New(lander.NewLand(starter, 500), 1.0,
		lander.DefaultTimeStep, lander.DefaultSubSteps)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func TestTileCodingObservations(t *testing.T) {
	bins := [][]int{
		{4, 4, 4, 4, 4, 4, 2, 2},
		{4, 4, 4, 4, 4, 4, 2, 2},
	}
	wantLength := 2*(4*4*4*4*4*4*2*2) + 1

	env, first := NewTileCoding(newLander(t), bins, 12)

	if env.ObservationSpec().Shape.Len() != wantLength {
		t.Errorf("observation spec length: got %v want %v",
			env.ObservationSpec().Shape.Len(), wantLength)
	}
	if first.Observation.Len() != wantLength {
		t.Fatalf("observation length: got %v want %v",
			first.Observation.Len(), wantLength)
	}

	step, _ := env.Step(mat.NewVecDense(lander.ActionDims, nil))

	nonZero := 0
	for i := 0; i < step.Observation.Len(); i++ {
		switch step.Observation.AtVec(i) {
		case 0.0:
		case 1.0:
			nonZero++
		default:
			t.Fatalf("tile-coded features must be binary, got %v",
				step.Observation.AtVec(i))
		}
	}
	// One active tile per tiling plus the bias unit
	if nonZero != len(bins)+1 {
		t.Errorf("nonzero features: got %v want %v", nonZero, len(bins)+1)
	}
}

func TestTileCodingDelegatesActionSpec(t *testing.T) {
	env, _ := NewTileCoding(newLander(t), [][]int{{2, 2, 2, 2, 2, 2, 2, 2}},
		12)

	spec := env.ActionSpec()
	if spec.Shape.Len() != lander.ActionDims {
		t.Errorf("action spec length: got %v want %v", spec.Shape.Len(),
			lander.ActionDims)
	}
	if spec.UpperBound.AtVec(0) != lander.MaxThrust {
		t.Errorf("thrust upper bound: got %v want %v",
			spec.UpperBound.AtVec(0), lander.MaxThrust)
	}
}
