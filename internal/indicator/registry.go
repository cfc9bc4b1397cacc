package indicator

import (
	"sync"

	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// Registry holds the named indicator instances bound to one timeframe.
// Bind order is preserved so updates run deterministically.
type Registry struct {
	mu         sync.RWMutex
	indicators map[string]Indicator
	order      []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		indicators: make(map[string]Indicator),
		order:      nil,
	}
}

// Bind registers an indicator instance under a name.
func (r *Registry) Bind(name string, ind Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "indicator with name %q already bound", name)
	}

	r.indicators[name] = ind
	r.order = append(r.order, name)

	return nil
}

// Get retrieves a bound indicator by name.
func (r *Registry) Get(name string) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ind, exists := r.indicators[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator with name %q not bound", name)
	}

	return ind, nil
}

// List returns the bound names in bind order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)

	return names
}

// UpdateAll advances every bound indicator with the given history, in bind
// order. The first error stops the walk.
func (r *Registry) UpdateAll(history *series.BarHistory) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if err := r.indicators[name].Update(history); err != nil {
			return errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to update indicator %q", name)
		}
	}

	return nil
}
