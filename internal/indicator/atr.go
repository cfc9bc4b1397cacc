package indicator

import (
	"math"

	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// ATR implements the Average True Range with Wilder's smoothing.
type ATR struct {
	*lineSet

	period int
}

// NewATR creates an ATR indicator. Parameters: period (default 14).
func NewATR(params Params) (Indicator, error) {
	if err := checkParams(params, "period"); err != nil {
		return nil, err
	}

	period, err := intParam(params, "period", 14)
	if err != nil {
		return nil, err
	}

	if err := positivePeriod(period, "period"); err != nil {
		return nil, err
	}

	return &ATR{
		lineSet: newLineSet("atr"),
		period:  period,
	}, nil
}

// Type implements Indicator.
func (a *ATR) Type() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Update implements Indicator.
func (a *ATR) Update(history *series.BarHistory) error {
	if history.Len() < a.period+1 {
		a.pushNaN()

		return nil
	}

	bars := history.Last(history.Len())

	trueRanges := make([]float64, 0, len(bars)-1)

	for i := 1; i < len(bars); i++ {
		tr := math.Max(
			math.Max(
				bars[i].High-bars[i].Low,
				math.Abs(bars[i].High-bars[i-1].Close),
			),
			math.Abs(bars[i].Low-bars[i-1].Close),
		)
		trueRanges = append(trueRanges, tr)
	}

	// Seed with the simple average of the first period true ranges, then
	// apply Wilder's smoothing for the rest.
	atr := 0.0
	for i := 0; i < a.period; i++ {
		atr += trueRanges[i]
	}

	atr /= float64(a.period)

	for i := a.period; i < len(trueRanges); i++ {
		atr = (atr*float64(a.period-1) + trueRanges[i]) / float64(a.period)
	}

	a.push("atr", atr)

	return nil
}

var _ Indicator = (*ATR)(nil)
