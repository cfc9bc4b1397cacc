package rule

import (
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/joseporiolcarne/backtraderalerts/internal/logger"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// Firing describes a condition group that was satisfied on the current bar.
type Firing struct {
	// Group is the fired group.
	Group types.ConditionGroup
	// Satisfied holds the descriptions of every member condition that
	// evaluated true.
	Satisfied []string
}

// GroupEvaluator combines atomic conditions into group decisions gated by
// position state.
type GroupEvaluator struct {
	evaluator *Evaluator
	log       *logger.Logger
}

// NewGroupEvaluator creates a group evaluator on top of a condition
// evaluator. A nil logger falls back to a no-op logger.
func NewGroupEvaluator(evaluator *Evaluator, log *logger.Logger) *GroupEvaluator {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &GroupEvaluator{
		evaluator: evaluator,
		log:       log,
	}
}

// EvaluateGroups walks the groups whose action is legal in the given position
// state, in declaration order, and returns the first satisfied one. At most
// one group fires per bar; remaining groups are skipped once one fires, which
// is the deterministic tie-break.
func (g *GroupEvaluator) EvaluateGroups(groups []types.ConditionGroup, position types.PositionStatus) optional.Option[Firing] {
	for _, group := range groups {
		if !position.Allows(group.Action) {
			continue
		}

		satisfied, fired := g.evaluateGroup(group)
		if fired {
			g.log.Debug("condition group fired",
				zap.String("action", string(group.Action)),
				zap.Strings("conditions", satisfied),
			)

			return optional.Some(Firing{
				Group:     group,
				Satisfied: satisfied,
			})
		}
	}

	return optional.None[Firing]()
}

// evaluateGroup evaluates all member conditions and combines them. AND
// requires every condition to hold and short-circuits on the first false; OR
// requires at least one and evaluates all members so the firing reports every
// satisfied condition.
func (g *GroupEvaluator) evaluateGroup(group types.ConditionGroup) ([]string, bool) {
	if len(group.Conditions) == 0 {
		return nil, false
	}

	combinator := group.Combinator
	if combinator == "" {
		combinator = types.CombinatorAnd
	}

	satisfied := make([]string, 0, len(group.Conditions))

	switch combinator {
	case types.CombinatorAnd:
		for _, cond := range group.Conditions {
			if !g.evaluator.Evaluate(cond) {
				return nil, false
			}

			satisfied = append(satisfied, cond.Describe())
		}

		return satisfied, true
	case types.CombinatorOr:
		for _, cond := range group.Conditions {
			if g.evaluator.Evaluate(cond) {
				satisfied = append(satisfied, cond.Describe())
			}
		}

		return satisfied, len(satisfied) > 0
	default:
		g.log.Warn("unknown combinator, group skipped",
			zap.String("combinator", string(combinator)),
		)

		return nil, false
	}
}
