package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/joseporiolcarne/backtraderalerts/internal/logger"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// ConsoleNotifier writes alerts to the process log.
type ConsoleNotifier struct {
	log *logger.Logger
}

var _ Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(log *logger.Logger) *ConsoleNotifier {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ConsoleNotifier{log: log}
}

func (c *ConsoleNotifier) Name() string {
	return "console"
}

func (c *ConsoleNotifier) Notify(_ context.Context, event types.SignalEvent) error {
	c.log.Info("signal",
		zap.String("id", event.ID),
		zap.Time("time", event.Time),
		zap.String("action", string(event.Action)),
		zap.String("symbol", event.Symbol),
		zap.String("strategy", event.Strategy),
		zap.String("group", event.Group),
		zap.Float64("price", event.Price),
		zap.Strings("conditions", event.Conditions),
	)

	return nil
}
