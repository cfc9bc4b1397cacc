package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// Notifier delivers a signal event to one sink. Every sink implements the
// same interface; the manager never inspects a notifier beyond calling it.
type Notifier interface {
	// Name identifies the notifier in logs and configuration.
	Name() string
	// Notify delivers the event. A non-nil error means this delivery
	// failed; it never affects other notifiers or engine state.
	Notify(ctx context.Context, event types.SignalEvent) error
}

// FormatMessage renders an event as the human-readable alert text shared by
// all sinks.
func FormatMessage(event types.SignalEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s @ %.8g", event.Action, event.Symbol, event.Price)

	if event.Group != "" {
		fmt.Fprintf(&b, " [%s]", event.Group)
	}

	for _, cond := range event.Conditions {
		b.WriteString("\n")
		b.WriteString(cond)
	}

	return b.String()
}
