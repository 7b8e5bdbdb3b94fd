// Package progressbar prints experiment progress to the terminal
// window
package progressbar

import (
	"fmt"
	"strings"
	"time"
)

// ManualProgressBar is a progress bar that its owner advances
// explicitly: Increment() once per unit of work done, Display()
// whenever the bar should be redrawn. It runs no goroutines of its
// own, so it is safe to drive from a single-threaded experiment loop.
type ManualProgressBar struct {
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a progress bar of the given character
// width which tracks max total units of work. The elapsed-time readout
// starts counting immediately.
func NewManualProgressBar(width, max int) *ManualProgressBar {
	return &ManualProgressBar{
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}
}

// Increment records one completed unit of work, saturating at the
// maximum
func (p *ManualProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Display redraws the progress bar in place on the current terminal
// line, together with the percentage done and the elapsed time
func (p *ManualProgressBar) Display() {
	p.bar.Reset()
	p.bar.WriteString("|")

	filled := p.currentProgress / p.maxProgress * p.width
	for i := 0.0; i < filled; i++ {
		p.bar.WriteString("█")
	}
	for i := filled; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	fmt.Fprintf(&p.bar, "| [%.2f%% | elapsed: %v]",
		p.currentProgress/p.maxProgress*100,
		time.Since(p.startTime).Truncate(time.Second))

	fmt.Printf("\n\033[1A\033[K%v", p.bar.String())
}
