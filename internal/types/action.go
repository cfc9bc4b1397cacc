package types

// Action is the trading action a condition group is tied to.
type Action string

const (
	// ActionBuy opens a position. Only eligible while flat.
	ActionBuy Action = "BUY"
	// ActionSell closes a position. Only eligible while in a position.
	ActionSell Action = "SELL"
)

// IsValid reports whether the action is one of the known values.
func (a Action) IsValid() bool {
	return a == ActionBuy || a == ActionSell
}

// PositionStatus tracks whether a strategy instance currently holds a position.
// It is the only state that survives across bars inside the engine.
type PositionStatus string

const (
	PositionFlat       PositionStatus = "flat"
	PositionInPosition PositionStatus = "in_position"
)

// Allows reports whether a group with the given action may be evaluated in
// this position state. BUY groups are only considered while flat, SELL groups
// only while in a position.
func (p PositionStatus) Allows(action Action) bool {
	switch action {
	case ActionBuy:
		return p == PositionFlat
	case ActionSell:
		return p == PositionInPosition
	default:
		return false
	}
}
