package types

import "fmt"

// ConditionKind selects how a condition resolves its operands.
type ConditionKind string

const (
	// ConditionKindPrice compares an OHLC field against a literal value.
	ConditionKindPrice ConditionKind = "price"
	// ConditionKindIndicator compares an indicator line against a literal value.
	ConditionKindIndicator ConditionKind = "indicator"
	// ConditionKindCrossover detects a sign change between two series.
	ConditionKindCrossover ConditionKind = "crossover"
)

// IsValid reports whether the kind is one of the known values.
func (k ConditionKind) IsValid() bool {
	switch k {
	case ConditionKindPrice, ConditionKindIndicator, ConditionKindCrossover:
		return true
	default:
		return false
	}
}

// Operator is the comparison applied by a condition.
type Operator string

const (
	OperatorGreaterThan  Operator = ">"
	OperatorLessThan     Operator = "<"
	OperatorGreaterEqual Operator = ">="
	OperatorLessEqual    Operator = "<="
	OperatorEqual        Operator = "=="
	// OperatorCrossesAbove is edge triggered: prior value <= threshold and
	// current value > threshold.
	OperatorCrossesAbove Operator = "crosses_above"
	// OperatorCrossesBelow is the mirror of OperatorCrossesAbove.
	OperatorCrossesBelow Operator = "crosses_below"
)

// IsValid reports whether the operator is one of the known values.
func (o Operator) IsValid() bool {
	switch o {
	case OperatorGreaterThan, OperatorLessThan, OperatorGreaterEqual,
		OperatorLessEqual, OperatorEqual, OperatorCrossesAbove, OperatorCrossesBelow:
		return true
	default:
		return false
	}
}

// IsCrossing reports whether the operator is edge triggered, i.e. it needs
// the previous bar's value in addition to the current one.
func (o Operator) IsCrossing() bool {
	return o == OperatorCrossesAbove || o == OperatorCrossesBelow
}

// Combinator joins the results of a group's member conditions.
type Combinator string

const (
	CombinatorAnd Combinator = "AND"
	CombinatorOr  Combinator = "OR"
)

// IsValid reports whether the combinator is one of the known values.
func (c Combinator) IsValid() bool {
	return c == CombinatorAnd || c == CombinatorOr
}

// OperandPrice is the literal operand name that resolves to the close price
// of the condition's timeframe.
const OperandPrice = "price"

// Condition is one atomic boolean test against the current bar of a timeframe.
//
// The fields used depend on Kind:
//   - price: Field (defaults to close), Operator, Value
//   - indicator: Indicator, optional Line, Operator, Value
//   - crossover: Left and Right operands, Operator (crossing only)
//
// Crossover operands may be OperandPrice, an indicator name, an
// "indicator.line" reference, or a numeric literal.
type Condition struct {
	Timeframe string        `yaml:"timeframe" validate:"required"`
	Kind      ConditionKind `yaml:"kind" validate:"required"`
	Operator  Operator      `yaml:"operator" validate:"required"`
	Field     PriceField    `yaml:"field,omitempty"`
	Indicator string        `yaml:"indicator,omitempty"`
	Line      string        `yaml:"line,omitempty"`
	Value     float64       `yaml:"value,omitempty"`
	Left      string        `yaml:"left,omitempty"`
	Right     string        `yaml:"right,omitempty"`
}

// Describe renders the condition as a short human-readable sentence. These
// descriptions are attached to signal events so a consumer can see why a
// signal fired.
func (c Condition) Describe() string {
	switch c.Kind {
	case ConditionKindPrice:
		field := c.Field
		if field == "" {
			field = PriceFieldClose
		}

		return fmt.Sprintf("%s: %s %s %g", c.Timeframe, field, c.Operator, c.Value)
	case ConditionKindIndicator:
		name := c.Indicator
		if c.Line != "" {
			name = name + "." + c.Line
		}

		return fmt.Sprintf("%s: %s %s %g", c.Timeframe, name, c.Operator, c.Value)
	case ConditionKindCrossover:
		return fmt.Sprintf("%s: %s %s %s", c.Timeframe, c.Left, c.Operator, c.Right)
	default:
		return fmt.Sprintf("%s: unknown condition", c.Timeframe)
	}
}

// ConditionGroup is a boolean combination of conditions tied to one trading
// action. Declaration order of groups is significant: the first satisfied
// eligible group wins on every bar.
type ConditionGroup struct {
	// Name is an optional label carried into the signal event.
	Name string `yaml:"name,omitempty"`
	// Action is the trading action this group emits when satisfied.
	Action Action `yaml:"action" validate:"required"`
	// Combinator joins the member condition results. Defaults to AND.
	Combinator Combinator `yaml:"combinator,omitempty"`
	// Conditions are the member conditions, evaluated in order.
	Conditions []Condition `yaml:"conditions" validate:"required,min=1"`
}
