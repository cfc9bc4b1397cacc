package indicator

import (
	"math"

	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// BollingerBands implements Bollinger Bands with lines mid, upper and lower.
// The mid line is the SMA of close prices; the bands sit std_dev standard
// deviations away from it.
type BollingerBands struct {
	*lineSet

	period int
	stdDev float64
}

// NewBollingerBands creates a Bollinger Bands indicator. Parameters:
// period (default 20), std_dev (default 2).
func NewBollingerBands(params Params) (Indicator, error) {
	if err := checkParams(params, "period", "std_dev"); err != nil {
		return nil, err
	}

	period, err := intParam(params, "period", 20)
	if err != nil {
		return nil, err
	}

	if err := positivePeriod(period, "period"); err != nil {
		return nil, err
	}

	stdDev, err := floatParam(params, "std_dev", 2.0)
	if err != nil {
		return nil, err
	}

	if stdDev <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold, "std_dev must be a positive number, got %f", stdDev)
	}

	return &BollingerBands{
		lineSet: newLineSet("mid", "upper", "lower"),
		period:  period,
		stdDev:  stdDev,
	}, nil
}

// Type implements Indicator.
func (bb *BollingerBands) Type() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Update implements Indicator.
func (bb *BollingerBands) Update(history *series.BarHistory) error {
	if history.Len() < bb.period {
		bb.pushNaN()

		return nil
	}

	bars := history.Last(bb.period)

	sum := 0.0
	for _, bar := range bars {
		sum += bar.Close
	}

	mid := sum / float64(bb.period)

	squaredDiffSum := 0.0
	for _, bar := range bars {
		diff := bar.Close - mid
		squaredDiffSum += diff * diff
	}

	stdDev := math.Sqrt(squaredDiffSum / float64(bb.period))

	bb.push("mid", mid)
	bb.push("upper", mid+bb.stdDev*stdDev)
	bb.push("lower", mid-bb.stdDev*stdDev)

	return nil
}

var _ Indicator = (*BollingerBands)(nil)
