package indicator

import (
	"sort"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// Constructor builds an indicator instance from declarative parameters.
type Constructor func(params Params) (Indicator, error)

// constructors is the factory table mapping declared indicator types to their
// constructors. It is resolved once at configuration load so an unknown type
// fails fast at startup instead of silently during a live run.
var constructors = map[types.IndicatorType]Constructor{
	types.IndicatorTypeSMA:            NewSMA,
	types.IndicatorTypeEMA:            NewEMA,
	types.IndicatorTypeRSI:            NewRSI,
	types.IndicatorTypeMACD:           NewMACD,
	types.IndicatorTypeBollingerBands: NewBollingerBands,
	types.IndicatorTypeATR:            NewATR,
}

// New builds an indicator of the given type. Unknown types and invalid
// parameters are reported immediately.
func New(indicatorType types.IndicatorType, params Params) (Indicator, error) {
	constructor, ok := constructors[indicatorType]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownIndicatorType, "unknown indicator type %q", indicatorType)
	}

	return constructor(params)
}

// SupportedTypes lists the indicator types the factory can build, sorted by name.
func SupportedTypes() []types.IndicatorType {
	supported := make([]types.IndicatorType, 0, len(constructors))
	for indicatorType := range constructors {
		supported = append(supported, indicatorType)
	}

	sort.Slice(supported, func(i, j int) bool { return supported[i] < supported[j] })

	return supported
}
