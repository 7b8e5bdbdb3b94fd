// Package experiment implements functionality for running an experiment
package experiment

import (
	"github.com/moonsim/golander/experiment/trackers"
	ts "github.com/moonsim/golander/timestep"
)

// Experiment outlines structs that can run experiments. Experiments
// track environment TimeSteps, caching data from each TimeStep in RAM
// to be later saved to disk with the Save() method, usually after the
// experiment has finished. The Run() method runs episodes until the
// maximum timestep limit is reached. The RunEpisode() method runs a
// single episode.
//
// Experiments use Trackers to determine which data generated during
// the experiment is saved. Each TimeStep is sent to every registered
// Tracker through its Track() method. New Trackers can be registered
// through the constructor or through the Register() method.
type Experiment interface {
	Run()
	RunEpisode() bool // Returns whether the timestep limit was reached

	// Save all tracked data to disk
	Save()

	// Register adds a new Tracker to the (possibly already running)
	// experiment. Useful if data should be tracked only after a
	// specified event.
	Register(t trackers.Tracker)

	// Tracks the current timestep by sending it to Trackers
	track(ts.TimeStep)
}
