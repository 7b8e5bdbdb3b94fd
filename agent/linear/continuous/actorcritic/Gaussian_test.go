package actorcritic

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/moonsim/golander/environment"
	ts "github.com/moonsim/golander/timestep"
	"github.com/moonsim/golander/utils/matutils/initializers/weights"
)

// chainEnv is a one-state continuing environment paying a constant
// reward, used to check critic prediction in isolation.
type chainEnv struct {
	discount float64
	reward   float64
	step     int
}

func (c *chainEnv) obs() mat.Vector {
	return mat.NewVecDense(2, []float64{1, 0.5})
}

func (c *chainEnv) Start() mat.Vector { return c.obs() }

func (c *chainEnv) End(t *ts.TimeStep) bool { return false }

func (c *chainEnv) GetReward(state, action, next mat.Vector) float64 {
	return c.reward
}

func (c *chainEnv) AtGoal(state mat.Matrix) bool { return false }

func (c *chainEnv) Min() float64 { return c.reward }

func (c *chainEnv) Max() float64 { return c.reward }

func (c *chainEnv) RewardSpec() environment.Spec {
	bound := mat.NewVecDense(1, []float64{c.reward})
	return environment.NewSpec(mat.NewVecDense(1, nil), environment.Reward,
		bound, bound, environment.Continuous)
}

func (c *chainEnv) Reset() ts.TimeStep {
	c.step = 0
	return ts.New(ts.First, 0, c.discount, c.obs(), 0)
}

func (c *chainEnv) Step(action mat.Vector) (ts.TimeStep, bool) {
	c.step++
	return ts.New(ts.Mid, c.reward, c.discount, c.obs(), c.step), false
}

func (c *chainEnv) DiscountSpec() environment.Spec {
	bound := mat.NewVecDense(1, []float64{c.discount})
	return environment.NewSpec(mat.NewVecDense(1, nil),
		environment.Discount, bound, bound, environment.Continuous)
}

func (c *chainEnv) ObservationSpec() environment.Spec {
	lower := mat.NewVecDense(2, []float64{0, 0})
	upper := mat.NewVecDense(2, []float64{1, 1})
	return environment.NewSpec(mat.NewVecDense(2, nil),
		environment.Observation, lower, upper, environment.Continuous)
}

func (c *chainEnv) ActionSpec() environment.Spec {
	lower := mat.NewVecDense(1, []float64{-1})
	upper := mat.NewVecDense(1, []float64{1})
	return environment.NewSpec(mat.NewVecDense(1, nil), environment.Action,
		lower, upper, environment.Continuous)
}

func TestConfigValidate(t *testing.T) {
	legal := Config{ActorLearningRate: 0.1, CriticLearningRate: 0.1,
		Decay: 0.75}
	if err := legal.Validate(); err != nil {
		t.Errorf("legal config rejected: %v", err)
	}

	illegal := []Config{
		{ActorLearningRate: -0.1, CriticLearningRate: 0.1, Decay: 0.5},
		{ActorLearningRate: 0.1, CriticLearningRate: -0.1, Decay: 0.5},
		{ActorLearningRate: 0.1, CriticLearningRate: 0.1, Decay: 1.5},
	}
	for _, config := range illegal {
		if err := config.Validate(); err == nil {
			t.Errorf("config %+v should be rejected", config)
		}
	}
}

func TestCriticConvergesOnConstantReward(t *testing.T) {
	env := &chainEnv{discount: 0.9, reward: 1}

	// A zero actor learning rate isolates the critic
	config := Config{ActorLearningRate: 0, CriticLearningRate: 0.1,
		Decay: 0.75}
	a, err := NewLinearGaussian(env, config, weights.NewLinearUV(
		weights.NewZeroUV()), 42)
	if err != nil {
		t.Fatal(err)
	}
	learner := a.(*LinearGaussian)

	step := env.Reset()
	a.ObserveFirst(step)
	for i := 0; i < 5000; i++ {
		action := a.SelectAction(step)
		step, _ = env.Step(action)
		a.Observe(action, step)
		a.Step()
	}

	// The value of the single state is reward / (1 - discount)
	want := env.reward / (1 - env.discount)
	got := mat.Dot(learner.criticWeights, env.obs())
	if math.Abs(got-want) > 0.5 {
		t.Errorf("state value estimate: got %v want %v", got, want)
	}
}

func TestEvalModeFreezesWeights(t *testing.T) {
	env := &chainEnv{discount: 0.9, reward: 1}
	config := Config{ActorLearningRate: 0.1, CriticLearningRate: 0.1,
		Decay: 0.75}
	a, err := NewLinearGaussian(env, config, weights.NewLinearUV(
		weights.NewZeroUV()), 42)
	if err != nil {
		t.Fatal(err)
	}
	learner := a.(*LinearGaussian)

	a.Eval()
	if !a.IsEval() {
		t.Fatal("agent should report evaluation mode")
	}

	step := env.Reset()
	a.ObserveFirst(step)
	before := mat.DenseCopyOf(learner.meanWeights)
	criticBefore := mat.VecDenseCopyOf(learner.criticWeights)

	for i := 0; i < 10; i++ {
		action := a.SelectAction(step)
		step, _ = env.Step(action)
		a.Observe(action, step)
		a.Step()
	}

	if !mat.Equal(before, learner.meanWeights) {
		t.Error("evaluation mode must not update actor weights")
	}
	if !mat.Equal(criticBefore, learner.criticWeights) {
		t.Error("evaluation mode must not update critic weights")
	}

	// Evaluation-mode action selection is the deterministic mean
	first := a.SelectAction(step)
	second := a.SelectAction(step)
	if !mat.Equal(first, second) {
		t.Error("evaluation mode must select the mean action")
	}
}
