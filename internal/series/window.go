package series

import (
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// DefaultWindowSize bounds how many values a window retains.
const DefaultWindowSize = 1000

// Window is an append-only, bounded float buffer implementing Series.
// Values beyond the capacity are dropped oldest first.
type Window struct {
	values []float64
	max    int
}

// NewWindow creates a window retaining up to max values. A non-positive max
// falls back to DefaultWindowSize.
func NewWindow(max int) *Window {
	if max <= 0 {
		max = DefaultWindowSize
	}

	return &Window{
		values: make([]float64, 0, max),
		max:    max,
	}
}

// Push appends a value, evicting the oldest one when the window is full.
func (w *Window) Push(v float64) {
	if len(w.values) == w.max {
		copy(w.values, w.values[1:])
		w.values[len(w.values)-1] = v

		return
	}

	w.values = append(w.values, v)
}

// Value implements Series.
func (w *Window) Value(offset int) (float64, error) {
	if offset > 0 {
		return 0, errors.Newf(errors.ErrCodeOffsetOutOfRange, "positive offset %d is not allowed", offset)
	}

	idx := len(w.values) - 1 + offset
	if idx < 0 {
		return 0, errors.NewInsufficientDataErrorf(-offset+1, len(w.values), "",
			"offset %d requires %d values, have %d", offset, -offset+1, len(w.values))
	}

	return w.values[idx], nil
}

// Len implements Series.
func (w *Window) Len() int {
	return len(w.values)
}

// Last returns the most recent n values, oldest first. It returns fewer than
// n values when the window holds less history.
func (w *Window) Last(n int) []float64 {
	if n <= 0 {
		return nil
	}

	if n > len(w.values) {
		n = len(w.values)
	}

	out := make([]float64, n)
	copy(out, w.values[len(w.values)-n:])

	return out
}

var _ Series = (*Window)(nil)

// Constant is a Series that yields the same value at every offset. It backs
// numeric literal operands in crossover conditions.
type Constant float64

// Value implements Series.
func (c Constant) Value(offset int) (float64, error) {
	if offset > 0 {
		return 0, errors.Newf(errors.ErrCodeOffsetOutOfRange, "positive offset %d is not allowed", offset)
	}

	return float64(c), nil
}

// Len implements Series.
func (c Constant) Len() int {
	return 1
}

var _ Series = Constant(0)
