package viz

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// RollingAverage keeps a fixed-length history of block averages: every
// window samples are averaged and appended, evicting the oldest entry. The
// history starts filled with zeros.
type RollingAverage struct {
	history []float64
	window  int
	sum     float64
	count   int
}

func NewRollingAverage(capacity, window int) *RollingAverage {
	return &RollingAverage{
		history: make([]float64, max(capacity, 1)),
		window:  max(window, 1),
	}
}

// Add folds one sample and reports whether a new average was pushed.
func (r *RollingAverage) Add(v float64) bool {
	r.sum += v
	r.count++
	if r.count < r.window {
		return false
	}

	copy(r.history, r.history[1:])
	r.history[len(r.history)-1] = r.sum / float64(r.window)
	r.sum, r.count = 0, 0
	return true
}

// History returns the averages, oldest first.
func (r *RollingAverage) History() []float64 { return slices.Clone(r.history) }

func (r *RollingAverage) Last() float64 { return r.history[len(r.history)-1] }

// Mean averages the whole history.
func (r *RollingAverage) Mean() float64 { return stat.Mean(r.history, nil) }

// Reset zeroes the history and any partial block.
func (r *RollingAverage) Reset() {
	clear(r.history)
	r.sum, r.count = 0, 0
}
