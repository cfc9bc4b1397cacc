package engine

import (
	"github.com/joseporiolcarne/backtraderalerts/internal/config"
	"github.com/joseporiolcarne/backtraderalerts/internal/indicator"
	"github.com/joseporiolcarne/backtraderalerts/internal/logger"
)

// FromConfig assembles the timeframe bindings and the engine from a loaded
// configuration. Indicator construction errors surface here, before any bar
// is processed.
func FromConfig(cfg *config.Config, dispatcher Dispatcher, log *logger.Logger) (*Engine, error) {
	bindings := NewBindings()

	for _, tf := range cfg.Timeframes {
		binding := NewTimeframeBinding(tf.Name)

		for _, ic := range tf.Indicators {
			ind, err := indicator.New(ic.Type, indicator.Params(ic.Params))
			if err != nil {
				return nil, err
			}

			if err := binding.Bind(ic.Name, ind); err != nil {
				return nil, err
			}
		}

		if err := bindings.Add(binding); err != nil {
			return nil, err
		}
	}

	return NewEngine(cfg.Symbol, cfg.Strategy, bindings, cfg.Groups, dispatcher, log)
}
