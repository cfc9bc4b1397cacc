package series

import (
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// BarHistory is a bounded buffer of closed bars for one timeframe. Its OHLC
// fields are readable as Series through Field.
type BarHistory struct {
	bars []types.Bar
	max  int
}

// NewBarHistory creates a history retaining up to max bars. A non-positive
// max falls back to DefaultWindowSize.
func NewBarHistory(max int) *BarHistory {
	if max <= 0 {
		max = DefaultWindowSize
	}

	return &BarHistory{
		bars: make([]types.Bar, 0, max),
		max:  max,
	}
}

// Push appends a closed bar, evicting the oldest one when full.
func (h *BarHistory) Push(bar types.Bar) {
	if len(h.bars) == h.max {
		copy(h.bars, h.bars[1:])
		h.bars[len(h.bars)-1] = bar

		return
	}

	h.bars = append(h.bars, bar)
}

// Bar returns the bar at the given offset (0 = current, -1 = previous).
func (h *BarHistory) Bar(offset int) (types.Bar, error) {
	if offset > 0 {
		return types.Bar{}, errors.Newf(errors.ErrCodeOffsetOutOfRange, "positive offset %d is not allowed", offset)
	}

	idx := len(h.bars) - 1 + offset
	if idx < 0 {
		return types.Bar{}, errors.NewInsufficientDataErrorf(-offset+1, len(h.bars), "",
			"offset %d requires %d bars, have %d", offset, -offset+1, len(h.bars))
	}

	return h.bars[idx], nil
}

// Len returns the number of bars currently held.
func (h *BarHistory) Len() int {
	return len(h.bars)
}

// Last returns the most recent n bars, oldest first. It returns fewer than n
// bars when the history holds less.
func (h *BarHistory) Last(n int) []types.Bar {
	if n <= 0 {
		return nil
	}

	if n > len(h.bars) {
		n = len(h.bars)
	}

	out := make([]types.Bar, n)
	copy(out, h.bars[len(h.bars)-n:])

	return out
}

// Field returns a Series view over one OHLC field of the history. The view
// shares the underlying buffer; it reflects bars pushed after its creation.
func (h *BarHistory) Field(field types.PriceField) Series {
	return &fieldSeries{history: h, field: field}
}

type fieldSeries struct {
	history *BarHistory
	field   types.PriceField
}

// Value implements Series.
func (s *fieldSeries) Value(offset int) (float64, error) {
	bar, err := s.history.Bar(offset)
	if err != nil {
		return 0, err
	}

	return bar.Value(s.field), nil
}

// Len implements Series.
func (s *fieldSeries) Len() int {
	return s.history.Len()
}

var _ Series = (*fieldSeries)(nil)
