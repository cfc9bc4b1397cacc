package types

import "time"

// SignalEvent is the structured, explainable output produced when a condition
// group fires. It is handed to the dispatch layer and never persisted by the
// engine itself.
type SignalEvent struct {
	// ID uniquely identifies the event across a run.
	ID string
	// Time is the close time of the bar that produced the event.
	Time time.Time
	// Action is the trading action of the fired group.
	Action Action
	// Symbol is the trading symbol the engine instance watches.
	Symbol string
	// Strategy is the name of the owning strategy instance.
	Strategy string
	// Group is the optional name of the fired condition group.
	Group string
	// Timeframes lists the timeframe names referenced by the fired group.
	Timeframes []string
	// Conditions holds a human-readable description of every satisfied
	// member condition. This is the primary observable side effect
	// consumers rely on.
	Conditions []string
	// Price is the close price of the driving timeframe at fire time.
	Price float64
}
