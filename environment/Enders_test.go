package environment

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/moonsim/golander/timestep"
)

func TestStepLimitEndsAtCutoff(t *testing.T) {
	ender := NewStepLimit(3)

	obs := mat.NewVecDense(1, nil)
	step := timestep.New(timestep.Mid, 0, 1, obs, 2)
	if ender.End(&step) {
		t.Error("episode ended before the step limit")
	}

	step = timestep.New(timestep.Mid, 0, 1, obs, 3)
	if !ender.End(&step) {
		t.Fatal("episode did not end at the step limit")
	}
	if !step.Last() {
		t.Error("ended step should have StepType Last")
	}
	if step.End() != timestep.Timeout {
		t.Errorf("end type: got %v want %v", step.End(), timestep.Timeout)
	}
}

func TestIntervalLimitChecksIndexedFeatures(t *testing.T) {
	ender := NewIntervalLimit(
		[]r1.Interval{{Min: -1, Max: 1}},
		[]int{2},
		timestep.TerminalStateReached,
	)

	inside := timestep.New(timestep.Mid, 0, 1,
		mat.NewVecDense(3, []float64{100, 100, 0.5}), 1)
	if ender.End(&inside) {
		t.Error("features outside the watched index must be ignored")
	}

	outside := timestep.New(timestep.Mid, 0, 1,
		mat.NewVecDense(3, []float64{0, 0, 1.5}), 1)
	if !ender.End(&outside) {
		t.Fatal("watched feature left its interval but episode continued")
	}
	if outside.End() != timestep.TerminalStateReached {
		t.Errorf("end type: got %v want %v", outside.End(),
			timestep.TerminalStateReached)
	}
}

func TestUniformStarterRespectsBounds(t *testing.T) {
	starter := NewUniformStarter([]r1.Interval{
		{Min: -1, Max: 1},
		{Min: 5, Max: 5},
	}, 42)

	for i := 0; i < 100; i++ {
		state := starter.Start()
		if state.Len() != 2 {
			t.Fatalf("state length: got %v want 2", state.Len())
		}
		if state.AtVec(0) < -1 || state.AtVec(0) > 1 {
			t.Errorf("feature 0 out of bounds: %v", state.AtVec(0))
		}
		if state.AtVec(1) != 5 {
			t.Errorf("degenerate interval should pin feature to 5, got %v",
				state.AtVec(1))
		}
	}
}
