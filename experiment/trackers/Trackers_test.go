package trackers

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	ts "github.com/moonsim/golander/timestep"
)

func episode(tracker Tracker, rewards ...float64) {
	obs := mat.NewVecDense(1, nil)

	first := ts.New(ts.First, 0, 1, obs, 0)
	tracker.Track(first)

	for i, r := range rewards {
		stepType := ts.Mid
		if i == len(rewards)-1 {
			stepType = ts.Last
		}
		step := ts.New(stepType, r, 1, obs, i+1)
		tracker.Track(step)
	}
}

func TestReturnTracksEpisodicReturns(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	tracker := NewReturn(filename)

	episode(tracker, 1, 2, 3)
	episode(tracker, -1, -100)

	tracker.Save()

	got := LoadFloats(filename)
	want := []float64{6, -101}
	if len(got) != len(want) {
		t.Fatalf("episode count: got %v want %v", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("episode %v return: got %v want %v", i, got[i],
				want[i])
		}
	}
}

func TestEpisodeLengthTracksFinishedEpisodes(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lengths.bin")
	tracker := NewEpisodeLength(filename)

	episode(tracker, 1, 1, 1)
	episode(tracker, 1)

	// An unfinished episode must not be recorded
	tracker.Track(ts.New(ts.First, 0, 1, mat.NewVecDense(1, nil), 0))
	tracker.Track(ts.New(ts.Mid, 1, 1, mat.NewVecDense(1, nil), 1))

	tracker.Save()

	got := LoadInts(filename)
	want := []int{3, 1}
	if len(got) != len(want) {
		t.Fatalf("episode count: got %v want %v", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("episode %v length: got %v want %v", i, got[i],
				want[i])
		}
	}
}
