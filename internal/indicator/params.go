package indicator

import (
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// Params carries the declarative parameters of one indicator instance as
// parsed from configuration.
type Params map[string]any

// intParam reads an integer parameter, falling back to def when absent.
// YAML decodes integers as int and floats as float64; both are accepted.
func intParam(params Params, key string, def int) (int, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}

	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "parameter %q must be an integer, got %T", key, raw)
	}
}

// floatParam reads a float parameter, falling back to def when absent.
func floatParam(params Params, key string, def float64) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}

	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "parameter %q must be a number, got %T", key, raw)
	}
}

// checkParams rejects parameters the indicator does not declare, so a typo in
// configuration fails at load instead of silently using a default.
func checkParams(params Params, allowed ...string) error {
	for key := range params {
		known := false

		for _, a := range allowed {
			if key == a {
				known = true

				break
			}
		}

		if !known {
			return errors.Newf(errors.ErrCodeInvalidParameter, "unknown parameter %q", key)
		}
	}

	return nil
}

// positivePeriod validates a period parameter.
func positivePeriod(period int, key string) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", key, period)
	}

	return nil
}
