package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/joseporiolcarne/backtraderalerts/internal/logger"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// Manager fans dispatched events out to every registered notifier. Dispatch
// is fire-and-forget from the engine's point of view: the history records the
// event before delivery starts, one failing sink never blocks the others, and
// no delivery outcome flows back to the caller.
type Manager struct {
	notifiers []Notifier
	history   *History
	store     *HistoryStore
	log       *logger.Logger
}

// NewManager creates a manager with an empty notifier set and its own
// history. The store is optional; pass nil to skip persistence.
func NewManager(store *HistoryStore, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Manager{
		history: NewHistory(),
		store:   store,
		log:     log,
	}
}

// Register appends a notifier. Delivery order follows registration order.
func (m *Manager) Register(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

// History exposes the manager's own event log.
func (m *Manager) History() *History {
	return m.history
}

// Dispatch records the event and delivers it to every notifier. Each failure
// is logged and skipped; the event ends up in history exactly once no matter
// how many deliveries fail.
func (m *Manager) Dispatch(ctx context.Context, event types.SignalEvent) {
	m.history.Append(event)

	if m.store != nil {
		if err := m.store.Record(event); err != nil {
			m.log.Error("alert persistence failed",
				zap.String("id", event.ID),
				zap.Error(err),
			)
		}
	}

	for _, n := range m.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			m.log.Error("notifier delivery failed",
				zap.String("notifier", n.Name()),
				zap.String("id", event.ID),
				zap.Error(err),
			)

			continue
		}

		m.log.Debug("notifier delivered",
			zap.String("notifier", n.Name()),
			zap.String("id", event.ID),
		)
	}
}
