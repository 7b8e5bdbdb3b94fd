package main

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/moonsim/golander/agent/linear/continuous/actorcritic"
	"github.com/moonsim/golander/environment"
	"github.com/moonsim/golander/environment/lander"
	"github.com/moonsim/golander/environment/wrappers"
	"github.com/moonsim/golander/experiment"
	"github.com/moonsim/golander/experiment/trackers"
	"github.com/moonsim/golander/utils/matutils/initializers/weights"
)

func main() {
	var seed uint64 = 192382

	// Episodes start with the vehicle hovering somewhere above the
	// ground with small drift and a small attitude error
	starter := environment.NewUniformStarter([]r1.Interval{
		{Min: -20, Max: 20},   // x
		{Min: 60, Max: 100},   // y
		{Min: -1, Max: 1},     // vx
		{Min: -5, Max: 0},     // vy
		{Min: -0.1, Max: 0.1}, // angle
		{Min: 0, Max: 0},      // angular velocity
	}, seed)

	task := lander.NewLand(starter, 1000)
	env, _, err := lander.New(task, 1.0, lander.DefaultTimeStep,
		lander.DefaultSubSteps)
	if err != nil {
		log.Fatalf("could not create environment: %v", err)
	}

	// Tile-code the 8-dimensional observations
	numTilings := 5
	tilings := make([][]int, numTilings)
	for i := 0; i < len(tilings); i++ {
		tilings[i] = []int{4, 4, 4, 4, 4, 4, 2, 2}
	}
	tileCoded, _ := wrappers.NewTileCoding(env, tilings, seed)

	// Zero initialization for all weights
	init := weights.NewLinearUV(weights.NewZeroUV())

	config := actorcritic.Config{
		ActorLearningRate:  0.1,
		CriticLearningRate: 0.1,
		Decay:              0.75,
	}
	agent, err := actorcritic.NewLinearGaussian(tileCoded, config, init,
		seed)
	if err != nil {
		log.Fatalf("could not create agent: %v", err)
	}

	returns := trackers.NewReturn("returns.bin")
	lengths := trackers.NewEpisodeLength("lengths.bin")

	exp := experiment.NewOnline(tileCoded, agent, 1_000_000, returns,
		lengths)
	exp.Run()
	exp.Save()

	data := trackers.LoadFloats("returns.bin")
	if len(data) > 0 {
		fmt.Printf("\nfinal episode return: %v\n", data[len(data)-1])
	}

	// Render one greedy episode with the trained policy
	agent.Eval()
	step := tileCoded.Reset()
	env.Render(0)
	for frame := 1; !step.Last() && frame <= 1000; frame++ {
		action := agent.SelectAction(step)
		step, _ = tileCoded.Step(action)
		env.Render(frame)
	}
	fmt.Println(env)
}
