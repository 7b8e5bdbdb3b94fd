package progressbar

import "testing"

func TestIncrementSaturatesAtMaximum(t *testing.T) {
	bar := NewManualProgressBar(10, 3)

	for i := 0; i < 10; i++ {
		bar.Increment()
	}

	if bar.currentProgress != 3 {
		t.Errorf("progress: got %v want 3 (must saturate at the maximum)",
			bar.currentProgress)
	}
}
