package indicator

import (
	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// EMA implements the Exponential Moving Average of close prices.
type EMA struct {
	*lineSet

	period int
}

// NewEMA creates an EMA indicator. Parameters: period (default 20).
func NewEMA(params Params) (Indicator, error) {
	if err := checkParams(params, "period"); err != nil {
		return nil, err
	}

	period, err := intParam(params, "period", 20)
	if err != nil {
		return nil, err
	}

	if err := positivePeriod(period, "period"); err != nil {
		return nil, err
	}

	return &EMA{
		lineSet: newLineSet("ema"),
		period:  period,
	}, nil
}

// Type implements Indicator.
func (e *EMA) Type() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Update implements Indicator.
func (e *EMA) Update(history *series.BarHistory) error {
	if history.Len() < e.period {
		e.pushNaN()

		return nil
	}

	closes := make([]float64, 0, history.Len())
	for _, bar := range history.Last(history.Len()) {
		closes = append(closes, bar.Close)
	}

	e.push("ema", emaFromValues(closes, e.period))

	return nil
}

// emaFromValues computes an EMA over the full value slice (oldest first),
// seeding with the SMA of the first period values. Uses alpha = 2/(period+1)
// to match the pandas ewm implementation with adjust=False.
func emaFromValues(values []float64, period int) float64 {
	sma := 0.0
	for i := 0; i < period && i < len(values); i++ {
		sma += values[i]
	}

	sma /= float64(period)

	alpha := 2.0 / float64(period+1)

	ema := sma
	for i := period; i < len(values); i++ {
		ema = (values[i] * alpha) + (ema * (1 - alpha))
	}

	return ema
}

var _ Indicator = (*EMA)(nil)
