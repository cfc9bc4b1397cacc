package dispatch

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

const alertSchema = `
CREATE TABLE IF NOT EXISTS alerts (
	id          TEXT PRIMARY KEY,
	fired_at    DATETIME NOT NULL,
	action      TEXT NOT NULL,
	symbol      TEXT NOT NULL,
	strategy    TEXT NOT NULL,
	grp         TEXT NOT NULL,
	conditions  TEXT NOT NULL,
	price       REAL NOT NULL,
	created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_alerts_symbol ON alerts(symbol);
CREATE INDEX IF NOT EXISTS idx_alerts_fired_at ON alerts(fired_at);
`

// HistoryStore persists dispatched alerts to SQLite for audit. It keeps its
// own copy of every event; the manager's in-memory history stays authoritative
// for the running process.
type HistoryStore struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// OpenHistoryStore opens (or creates) the alert database at path.
func OpenHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeHistoryWriteFailed, "open alert store", err)
	}

	if _, err := db.Exec(alertSchema); err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeHistoryWriteFailed, "create alert schema", err)
	}

	return &HistoryStore{db: db}, nil
}

// Record inserts one dispatched event.
func (s *HistoryStore) Record(event types.SignalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New(errors.ErrCodeHistoryStoreClosed, "alert store is closed")
	}

	_, err := s.db.Exec(
		`INSERT INTO alerts (id, fired_at, action, symbol, strategy, grp, conditions, price)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Time.Format(time.RFC3339),
		string(event.Action),
		event.Symbol,
		event.Strategy,
		event.Group,
		strings.Join(event.Conditions, "\n"),
		event.Price,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeHistoryWriteFailed, "insert alert", err)
	}

	return nil
}

// Recent returns the last n alerts, newest first.
func (s *HistoryStore) Recent(n int) ([]types.SignalEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.New(errors.ErrCodeHistoryStoreClosed, "alert store is closed")
	}

	rows, err := s.db.Query(
		`SELECT id, fired_at, action, symbol, strategy, grp, conditions, price
		 FROM alerts ORDER BY fired_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeHistoryWriteFailed, "query alerts", err)
	}
	defer rows.Close()

	var events []types.SignalEvent

	for rows.Next() {
		var (
			event      types.SignalEvent
			firedAt    string
			action     string
			conditions string
		)

		if err := rows.Scan(&event.ID, &firedAt, &action, &event.Symbol, &event.Strategy, &event.Group, &conditions, &event.Price); err != nil {
			return nil, errors.Wrap(errors.ErrCodeHistoryWriteFailed, "scan alert row", err)
		}

		event.Action = types.Action(action)
		if conditions != "" {
			event.Conditions = strings.Split(conditions, "\n")
		}

		if t, err := time.Parse(time.RFC3339, firedAt); err == nil {
			event.Time = t
		}

		events = append(events, event)
	}

	return events, rows.Err()
}

// Close releases the database handle. Further writes fail with
// ErrCodeHistoryStoreClosed.
func (s *HistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	return s.db.Close()
}
