package marketdata

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/joseporiolcarne/backtraderalerts/internal/logger"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// warmupLimit is how many historical bars the first poll requests per
// timeframe so indicators have history before live evaluation starts.
const warmupLimit = 200

// BarHandler consumes one closed bar for a timeframe.
type BarHandler func(ctx context.Context, timeframe string, bar types.Bar) error

// Monitor polls a provider on a fixed interval and feeds new closed bars to
// the handler, per timeframe, oldest first. Provider errors are logged and
// the loop keeps going; only context cancellation stops it.
type Monitor struct {
	provider   Provider
	symbol     string
	timeframes []string
	poll       time.Duration
	handler    BarHandler
	log        *logger.Logger

	lastBar map[string]time.Time
}

func NewMonitor(provider Provider, symbol string, timeframes []string, poll time.Duration, handler BarHandler, log *logger.Logger) *Monitor {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Monitor{
		provider:   provider,
		symbol:     symbol,
		timeframes: timeframes,
		poll:       poll,
		handler:    handler,
		log:        log,
		lastBar:    make(map[string]time.Time),
	}
}

// Run polls until the context is cancelled. The first pass fills indicator
// warmup history.
func (m *Monitor) Run(ctx context.Context) error {
	m.poll1(ctx)

	ticker := time.NewTicker(m.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.poll1(ctx)
		}
	}
}

// poll1 runs one polling pass over every timeframe.
func (m *Monitor) poll1(ctx context.Context) {
	for _, timeframe := range m.timeframes {
		if err := m.pollTimeframe(ctx, timeframe); err != nil {
			m.log.Warn("poll failed",
				zap.String("symbol", m.symbol),
				zap.String("timeframe", timeframe),
				zap.Error(err),
			)
		}
	}
}

func (m *Monitor) pollTimeframe(ctx context.Context, timeframe string) error {
	bars, err := m.provider.Bars(ctx, m.symbol, timeframe, m.lastBar[timeframe], warmupLimit)
	if err != nil {
		return err
	}

	for _, bar := range bars {
		if err := m.handler(ctx, timeframe, bar); err != nil {
			return err
		}

		m.lastBar[timeframe] = bar.Time
	}

	return nil
}
