package indicator

import (
	"math"

	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// MACD implements the Moving Average Convergence Divergence indicator with
// lines macd, signal and histogram.
type MACD struct {
	*lineSet

	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a MACD indicator. Parameters: fast_period (default 12),
// slow_period (default 26), signal_period (default 9).
func NewMACD(params Params) (Indicator, error) {
	if err := checkParams(params, "fast_period", "slow_period", "signal_period"); err != nil {
		return nil, err
	}

	fast, err := intParam(params, "fast_period", 12)
	if err != nil {
		return nil, err
	}

	slow, err := intParam(params, "slow_period", 26)
	if err != nil {
		return nil, err
	}

	signal, err := intParam(params, "signal_period", 9)
	if err != nil {
		return nil, err
	}

	for key, period := range map[string]int{"fast_period": fast, "slow_period": slow, "signal_period": signal} {
		if err := positivePeriod(period, key); err != nil {
			return nil, err
		}
	}

	if fast >= slow {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "fast_period %d must be smaller than slow_period %d", fast, slow)
	}

	return &MACD{
		lineSet:      newLineSet("macd", "signal", "histogram"),
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}, nil
}

// Type implements Indicator.
func (m *MACD) Type() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Update implements Indicator.
func (m *MACD) Update(history *series.BarHistory) error {
	if history.Len() < m.slowPeriod {
		m.pushNaN()

		return nil
	}

	closes := make([]float64, 0, history.Len())
	for _, bar := range history.Last(history.Len()) {
		closes = append(closes, bar.Close)
	}

	macd := emaFromValues(closes, m.fastPeriod) - emaFromValues(closes, m.slowPeriod)
	m.push("macd", macd)

	// The signal line is the EMA of the macd line itself, computed over the
	// values appended so far (warmup NaNs excluded).
	macdLine, _ := m.Line("macd")
	macdWindow := macdLine.(*series.Window)

	macdValues := make([]float64, 0, macdWindow.Len())
	for _, v := range macdWindow.Last(macdWindow.Len()) {
		if !math.IsNaN(v) {
			macdValues = append(macdValues, v)
		}
	}

	if len(macdValues) < m.signalPeriod {
		m.push("signal", math.NaN())
		m.push("histogram", math.NaN())

		return nil
	}

	signal := emaFromValues(macdValues, m.signalPeriod)
	m.push("signal", signal)
	m.push("histogram", macd-signal)

	return nil
}

var _ Indicator = (*MACD)(nil)
