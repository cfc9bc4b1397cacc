package rule

import (
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// Position is the two-state machine gating group evaluation for one
// (symbol, strategy) pair. It starts flat, moves to in-position when a BUY
// group fires and back to flat when a SELL group fires, cycling for the
// lifetime of the owning strategy instance.
//
// The transition is applied optimistically the instant a group fires, before
// any downstream dispatch or order handling runs. Waiting for an external
// fill confirmation would require feedback from the execution collaborator,
// which this engine deliberately has no channel for.
type Position struct {
	status types.PositionStatus
}

// NewPosition creates a position tracker in the flat state.
func NewPosition() *Position {
	return &Position{status: types.PositionFlat}
}

// Status returns the current state.
func (p *Position) Status() types.PositionStatus {
	return p.status
}

// Apply transitions the machine for a fired action. Actions that are not
// legal in the current state leave it unchanged; the group evaluator's gating
// makes that unreachable in normal operation.
func (p *Position) Apply(action types.Action) {
	switch {
	case action == types.ActionBuy && p.status == types.PositionFlat:
		p.status = types.PositionInPosition
	case action == types.ActionSell && p.status == types.PositionInPosition:
		p.status = types.PositionFlat
	}
}
