package marketdata

import (
	"context"
	"time"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// Provider supplies closed bars for one symbol and kline interval.
type Provider interface {
	// Bars returns closed bars strictly after the given time, oldest
	// first, capped at limit. A zero time means "from whatever history
	// the provider serves".
	Bars(ctx context.Context, symbol, interval string, after time.Time, limit int) ([]types.Bar, error)
}
