// Package rule evaluates declarative trading conditions against bound
// timeframe data. Evaluation is fail-closed: a condition that cannot be
// resolved or compared evaluates to false and is logged, so one misconfigured
// rule can never halt the bar loop of a live session.
package rule

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/joseporiolcarne/backtraderalerts/internal/logger"
	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// TimeframeData is the view of one bound timeframe the evaluator needs.
type TimeframeData interface {
	// Bar returns the bar at the given offset (0 = current).
	Bar(offset int) (types.Bar, error)
	// PriceSeries returns the series over one OHLC field.
	PriceSeries(field types.PriceField) series.Series
	// IndicatorLine resolves a bound indicator line. An empty line name
	// resolves to the indicator's primary line.
	IndicatorLine(indicator, line string) (series.Series, error)
}

// Bindings resolves timeframe names to their bound data.
type Bindings interface {
	Timeframe(name string) (TimeframeData, error)
}

// Evaluator evaluates atomic conditions against the current bar.
type Evaluator struct {
	bindings Bindings
	log      *logger.Logger
}

// NewEvaluator creates a condition evaluator over the given bindings.
// A nil logger falls back to a no-op logger.
func NewEvaluator(bindings Bindings, log *logger.Logger) *Evaluator {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Evaluator{
		bindings: bindings,
		log:      log,
	}
}

// Evaluate applies one condition against the current bar of its timeframe.
// It never returns an error: an unresolvable reference or a failed comparison
// evaluates to false and is logged at Warn.
func (e *Evaluator) Evaluate(cond types.Condition) bool {
	result, err := e.evaluate(cond)
	if err != nil {
		e.log.Warn("condition evaluated false due to error",
			zap.String("condition", cond.Describe()),
			zap.Error(err),
		)

		return false
	}

	return result
}

func (e *Evaluator) evaluate(cond types.Condition) (bool, error) {
	tf, err := e.bindings.Timeframe(cond.Timeframe)
	if err != nil {
		return false, err
	}

	switch cond.Kind {
	case types.ConditionKindPrice:
		field := cond.Field
		if field == "" {
			field = types.PriceFieldClose
		}

		return compareAgainstLiteral(tf.PriceSeries(field), cond.Operator, cond.Value)
	case types.ConditionKindIndicator:
		line, err := tf.IndicatorLine(cond.Indicator, cond.Line)
		if err != nil {
			return false, err
		}

		return compareAgainstLiteral(line, cond.Operator, cond.Value)
	case types.ConditionKindCrossover:
		left, err := e.resolveOperand(tf, cond.Left)
		if err != nil {
			return false, err
		}

		right, err := e.resolveOperand(tf, cond.Right)
		if err != nil {
			return false, err
		}

		return compareCrossover(left, right, cond.Operator)
	default:
		return false, errors.Newf(errors.ErrCodeRuleConfigError, "unknown condition kind %q", cond.Kind)
	}
}

// resolveOperand turns a crossover operand name into a series. Operands may
// be the price literal, a numeric constant, an indicator name, or an
// "indicator.line" reference.
func (e *Evaluator) resolveOperand(tf TimeframeData, name string) (series.Series, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeRuleConfigError, "crossover operand is empty")
	}

	if name == types.OperandPrice {
		return tf.PriceSeries(types.PriceFieldClose), nil
	}

	if v, err := strconv.ParseFloat(name, 64); err == nil {
		return series.Constant(v), nil
	}

	if indicator, line, ok := strings.Cut(name, "."); ok {
		return tf.IndicatorLine(indicator, line)
	}

	return tf.IndicatorLine(name, "")
}

// compareAgainstLiteral applies an operator between a series and a literal
// threshold. Crossing operators are edge triggered over offsets -1 and 0.
// Comparisons involving NaN (an indicator still warming up) are never true.
func compareAgainstLiteral(s series.Series, op types.Operator, threshold float64) (bool, error) {
	current, err := s.Value(0)
	if err != nil {
		return false, err
	}

	if op.IsCrossing() {
		prior, err := s.Value(-1)
		if err != nil {
			return false, err
		}

		switch op {
		case types.OperatorCrossesAbove:
			return prior <= threshold && current > threshold, nil
		case types.OperatorCrossesBelow:
			return prior >= threshold && current < threshold, nil
		}
	}

	switch op {
	case types.OperatorGreaterThan:
		return current > threshold, nil
	case types.OperatorLessThan:
		return current < threshold, nil
	case types.OperatorGreaterEqual:
		return current >= threshold, nil
	case types.OperatorLessEqual:
		return current <= threshold, nil
	case types.OperatorEqual:
		return current == threshold, nil
	default:
		return false, errors.Newf(errors.ErrCodeInvalidOperator, "unknown operator %q", op)
	}
}

// compareCrossover detects a sign change of (left - right) between offsets
// -1 and 0. Only crossing operators are meaningful here.
func compareCrossover(left, right series.Series, op types.Operator) (bool, error) {
	currentLeft, err := left.Value(0)
	if err != nil {
		return false, err
	}

	priorLeft, err := left.Value(-1)
	if err != nil {
		return false, err
	}

	currentRight, err := right.Value(0)
	if err != nil {
		return false, err
	}

	priorRight, err := right.Value(-1)
	if err != nil {
		return false, err
	}

	switch op {
	case types.OperatorCrossesAbove:
		return priorLeft <= priorRight && currentLeft > currentRight, nil
	case types.OperatorCrossesBelow:
		return priorLeft >= priorRight && currentLeft < currentRight, nil
	default:
		return false, errors.Newf(errors.ErrCodeInvalidOperator, "operator %q is not valid for crossover conditions", op)
	}
}
