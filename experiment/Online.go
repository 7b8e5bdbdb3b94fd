package experiment

import (
	"github.com/moonsim/golander/agent"
	env "github.com/moonsim/golander/environment"
	"github.com/moonsim/golander/experiment/trackers"
	ts "github.com/moonsim/golander/timestep"
	"github.com/moonsim/golander/utils/progressbar"
)

// progressBarWidth is the character width of the progress bar printed
// while an Online experiment runs
const progressBarWidth int = 40

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent
	maxSteps     uint
	currentSteps uint
	trackers     []trackers.Tracker
	progress     *progressbar.ManualProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, and the t parameter lists
// the Trackers which determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	t ...trackers.Tracker) *Online {
	progress := progressbar.NewManualProgressBar(progressBarWidth,
		int(steps))

	return &Online{e, a, steps, 0, t, progress}
}

// Register registers a Tracker with the experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment, returning
// whether the experiment's timestep limit has been reached
func (o *Online) RunEpisode() bool {
	step := o.Environment.Reset()
	o.Agent.ObserveFirst(step)
	o.track(step)

	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++
		o.progress.Increment()

		action := o.Agent.SelectAction(step)
		step, _ = o.Environment.Step(action)

		o.track(step)

		o.Agent.Observe(action, step)
		o.Agent.Step()
	}
	o.Agent.EndEpisode()

	return o.currentSteps >= o.maxSteps
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() {
	ended := false

	for !ended {
		ended = o.RunEpisode()
		o.progress.Display()
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() {
	for _, tracker := range o.trackers {
		tracker.Save()
	}
}

// track caches the current timestep's data in each Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
