// Package indicator implements streaming technical indicators. Each
// indicator consumes the bar history of one timeframe and appends exactly one
// value per closed bar to each of its output lines, so line offsets stay
// aligned with bar offsets. While an indicator is warming up it appends NaN;
// comparisons against NaN are never true, which keeps partially warmed
// conditions fail-closed.
package indicator

import (
	"math"

	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// Indicator is a named set of output lines computed from a bar history.
type Indicator interface {
	// Type returns the indicator type.
	Type() types.IndicatorType
	// Update appends the values for the newest closed bar. It must be
	// called exactly once per bar, after the bar was pushed to the history.
	Update(history *series.BarHistory) error
	// Line returns the named output line.
	Line(name string) (series.Series, error)
	// LineNames lists the output lines. The first entry is the primary line.
	LineNames() []string
	// Primary returns the primary output line.
	Primary() series.Series
}

// lineSet holds the output windows shared by all indicator implementations.
type lineSet struct {
	names   []string
	windows map[string]*series.Window
}

func newLineSet(names ...string) *lineSet {
	windows := make(map[string]*series.Window, len(names))
	for _, name := range names {
		windows[name] = series.NewWindow(series.DefaultWindowSize)
	}

	return &lineSet{
		names:   names,
		windows: windows,
	}
}

func (l *lineSet) push(name string, v float64) {
	l.windows[name].Push(v)
}

// pushNaN appends NaN to every line, used while warming up.
func (l *lineSet) pushNaN() {
	for _, name := range l.names {
		l.windows[name].Push(math.NaN())
	}
}

// Line implements the Indicator line lookup. An empty name resolves to the
// primary line.
func (l *lineSet) Line(name string) (series.Series, error) {
	if name == "" {
		return l.windows[l.names[0]], nil
	}

	w, ok := l.windows[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeLineNotFound, "unknown line %q", name)
	}

	return w, nil
}

// LineNames implements Indicator.
func (l *lineSet) LineNames() []string {
	return l.names
}

// Primary implements Indicator.
func (l *lineSet) Primary() series.Series {
	return l.windows[l.names[0]]
}
