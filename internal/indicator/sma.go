package indicator

import (
	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// SMA implements the Simple Moving Average of close prices.
type SMA struct {
	*lineSet

	period int
}

// NewSMA creates an SMA indicator. Parameters: period (default 20).
func NewSMA(params Params) (Indicator, error) {
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

	return &SMA{
		lineSet: newLineSet("sma"),
		period:  period,
	}, nil
}

// Type implements Indicator.
func (s *SMA) Type() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Update implements Indicator.
func (s *SMA) Update(history *series.BarHistory) error {
	if history.Len() < s.period {
		s.pushNaN()

		return nil
	}

	bars := history.Last(s.period)

	sum := 0.0
	for _, bar := range bars {
		sum += bar.Close
	}

	s.push("sma", sum/float64(s.period))

	return nil
}

var _ Indicator = (*SMA)(nil)
