// Package trackers implements Trackers, which track and save data in
// an experiment
package trackers

import (
	"encoding/gob"
	"log"
	"os"

	ts "github.com/moonsim/golander/timestep"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save()
}

// LoadFloats loads and returns float64 data saved by a Tracker
func LoadFloats(filename string) []float64 {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []float64

	if err = dec.Decode(&data); err != nil {
		log.Fatalf("could not decode data: %v", err)
	}
	return data
}

// LoadInts loads and returns int data saved by a Tracker
func LoadInts(filename string) []int {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []int

	if err = dec.Decode(&data); err != nil {
		log.Fatalf("could not decode data: %v", err)
	}
	return data
}
