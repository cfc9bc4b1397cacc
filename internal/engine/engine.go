package engine

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joseporiolcarne/backtraderalerts/internal/logger"
	"github.com/joseporiolcarne/backtraderalerts/internal/rule"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// Dispatcher receives the signal events the engine emits. Delivery outcome
// never feeds back into engine state.
type Dispatcher interface {
	Dispatch(ctx context.Context, event types.SignalEvent)
}

// Engine drives one (symbol, strategy) pair: it feeds closed bars into
// timeframe bindings, evaluates condition groups against the position state
// and emits at most one signal event per bar.
type Engine struct {
	symbol   string
	strategy string

	bindings   *Bindings
	groups     []types.ConditionGroup
	evaluator  *rule.GroupEvaluator
	position   *rule.Position
	dispatcher Dispatcher
	log        *logger.Logger
}

// NewEngine wires the engine. The dispatcher is injected here and is the only
// outbound collaborator.
func NewEngine(symbol, strategy string, bindings *Bindings, groups []types.ConditionGroup, dispatcher Dispatcher, log *logger.Logger) (*Engine, error) {
	if bindings == nil || len(bindings.Names()) == 0 {
		return nil, errors.New(errors.ErrCodeEngineInitFailed, "engine requires at least one timeframe binding")
	}

	if dispatcher == nil {
		return nil, errors.New(errors.ErrCodeEngineInitFailed, "engine requires a dispatcher")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	conditionEval := rule.NewEvaluator(bindings, log)

	return &Engine{
		symbol:     symbol,
		strategy:   strategy,
		bindings:   bindings,
		groups:     groups,
		evaluator:  rule.NewGroupEvaluator(conditionEval, log),
		position:   rule.NewPosition(),
		dispatcher: dispatcher,
		log:        log,
	}, nil
}

// Position returns the current position state.
func (e *Engine) Position() types.PositionStatus {
	return e.position.Status()
}

// Bindings exposes the timeframe set, mainly for feeding bars from outside.
func (e *Engine) Bindings() *Bindings {
	return e.bindings
}

// OnBar ingests one closed bar for a timeframe and runs a full evaluation
// pass. The position transitions the moment a group fires, before dispatch.
func (e *Engine) OnBar(ctx context.Context, timeframe string, bar types.Bar) error {
	binding, err := e.bindings.Get(timeframe)
	if err != nil {
		return err
	}

	if err := binding.Advance(bar); err != nil {
		return err
	}

	result := e.evaluator.EvaluateGroups(e.groups, e.position.Status())
	if result.IsNone() {
		return nil
	}

	firing := result.Unwrap()
	e.position.Apply(firing.Group.Action)

	event := types.SignalEvent{
		ID:         uuid.NewString(),
		Time:       bar.Time,
		Action:     firing.Group.Action,
		Symbol:     e.symbol,
		Strategy:   e.strategy,
		Group:      firing.Group.Name,
		Timeframes: groupTimeframes(firing.Group),
		Conditions: firing.Satisfied,
		Price:      bar.Close,
	}

	e.log.Info("signal fired",
		zap.String("id", event.ID),
		zap.String("action", string(event.Action)),
		zap.String("group", event.Group),
		zap.String("position", string(e.position.Status())),
	)

	e.dispatcher.Dispatch(ctx, event)

	return nil
}

// groupTimeframes collects the distinct timeframes the group's conditions
// reference, in declaration order.
func groupTimeframes(group types.ConditionGroup) []string {
	seen := make(map[string]struct{}, len(group.Conditions))
	out := make([]string, 0, len(group.Conditions))

	for _, cond := range group.Conditions {
		if _, ok := seen[cond.Timeframe]; ok {
			continue
		}

		seen[cond.Timeframe] = struct{}{}
		out = append(out, cond.Timeframe)
	}

	return out
}
