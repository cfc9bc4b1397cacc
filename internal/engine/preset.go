package engine

import (
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// RSICrossoverGroups builds the canonical RSI crossover strategy: buy when
// RSI crosses above the oversold level while flat, sell when it crosses
// below the overbought level while in position. The indicator must be bound
// on the given timeframe under indicatorName.
func RSICrossoverGroups(timeframe, indicatorName string, oversold, overbought float64) []types.ConditionGroup {
	return []types.ConditionGroup{
		{
			Name:       "rsi-entry",
			Action:     types.ActionBuy,
			Combinator: types.CombinatorAnd,
			Conditions: []types.Condition{
				{
					Timeframe: timeframe,
					Kind:      types.ConditionKindIndicator,
					Indicator: indicatorName,
					Operator:  types.OperatorCrossesAbove,
					Value:     oversold,
				},
			},
		},
		{
			Name:       "rsi-exit",
			Action:     types.ActionSell,
			Combinator: types.CombinatorAnd,
			Conditions: []types.Condition{
				{
					Timeframe: timeframe,
					Kind:      types.ConditionKindIndicator,
					Indicator: indicatorName,
					Operator:  types.OperatorCrossesBelow,
					Value:     overbought,
				},
			},
		},
	}
}
