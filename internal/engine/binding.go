package engine

import (
	"github.com/joseporiolcarne/backtraderalerts/internal/indicator"
	"github.com/joseporiolcarne/backtraderalerts/internal/rule"
	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// TimeframeBinding ties one timeframe name to its bar history and the
// indicators computed on it. Conditions resolve their series through it.
type TimeframeBinding struct {
	name       string
	bars       *series.BarHistory
	indicators *indicator.Registry
}

var _ rule.TimeframeData = (*TimeframeBinding)(nil)

func NewTimeframeBinding(name string) *TimeframeBinding {
	return &TimeframeBinding{
		name:       name,
		bars:       series.NewBarHistory(series.DefaultWindowSize),
		indicators: indicator.NewRegistry(),
	}
}

// Name returns the timeframe name, e.g. "1h".
func (b *TimeframeBinding) Name() string {
	return b.name
}

// Bind registers a named indicator on this timeframe.
func (b *TimeframeBinding) Bind(name string, ind indicator.Indicator) error {
	return b.indicators.Bind(name, ind)
}

// Advance appends a closed bar and recomputes every bound indicator so all
// lines stay aligned with the bar history.
func (b *TimeframeBinding) Advance(bar types.Bar) error {
	b.bars.Push(bar)

	if err := b.indicators.UpdateAll(b.bars); err != nil {
		return errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "indicator update on timeframe %q", b.name)
	}

	return nil
}

func (b *TimeframeBinding) Bar(offset int) (types.Bar, error) {
	return b.bars.Bar(offset)
}

func (b *TimeframeBinding) PriceSeries(field types.PriceField) series.Series {
	return b.bars.Field(field)
}

func (b *TimeframeBinding) IndicatorLine(name, line string) (series.Series, error) {
	ind, err := b.indicators.Get(name)
	if err != nil {
		return nil, err
	}

	return ind.Line(line)
}

// Bindings is the ordered set of timeframe bindings one engine evaluates
// against.
type Bindings struct {
	order  []string
	byName map[string]*TimeframeBinding
}

var _ rule.Bindings = (*Bindings)(nil)

func NewBindings() *Bindings {
	return &Bindings{
		byName: make(map[string]*TimeframeBinding),
	}
}

// Add registers a binding. Timeframe names are unique per engine.
func (b *Bindings) Add(binding *TimeframeBinding) error {
	if _, ok := b.byName[binding.Name()]; ok {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "timeframe %q is already bound", binding.Name())
	}

	b.order = append(b.order, binding.Name())
	b.byName[binding.Name()] = binding

	return nil
}

// Timeframe resolves a binding for condition evaluation.
func (b *Bindings) Timeframe(name string) (rule.TimeframeData, error) {
	binding, err := b.Get(name)
	if err != nil {
		return nil, err
	}

	return binding, nil
}

// Get returns the concrete binding for bar feeding.
func (b *Bindings) Get(name string) (*TimeframeBinding, error) {
	binding, ok := b.byName[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeTimeframeNotFound, "timeframe %q is not bound", name)
	}

	return binding, nil
}

// Names returns the bound timeframe names in registration order.
func (b *Bindings) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)

	return out
}
