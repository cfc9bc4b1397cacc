package indicator

import (
	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// RSI implements the Relative Strength Index with Wilder's smoothing.
type RSI struct {
	*lineSet

	period int
}

// NewRSI creates an RSI indicator. Parameters: period (default 14).
func NewRSI(params Params) (Indicator, error) {
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

	return &RSI{
		lineSet: newLineSet("rsi"),
		period:  period,
	}, nil
}

// Type implements Indicator.
func (r *RSI) Type() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Update implements Indicator.
func (r *RSI) Update(history *series.BarHistory) error {
	if history.Len() < r.period+1 {
		r.pushNaN()

		return nil
	}

	bars := history.Last(history.Len())

	// Price changes
	gains := make([]float64, 0, len(bars)-1)
	losses := make([]float64, 0, len(bars)-1)

	for i := 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	// First average
	avgGain := 0.0
	avgLoss := 0.0

	for i := 0; i < r.period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(r.period)
	avgLoss /= float64(r.period)

	// Subsequent averages using Wilder's smoothing method
	for i := r.period; i < len(gains); i++ {
		avgGain = (avgGain*float64(r.period-1) + gains[i]) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + losses[i]) / float64(r.period)
	}

	if avgLoss == 0 {
		r.push("rsi", 100) // Perfect uptrend

		return nil
	}

	rs := avgGain / avgLoss
	r.push("rsi", 100-(100/(1+rs)))

	return nil
}

var _ Indicator = (*RSI)(nil)
