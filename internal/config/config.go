package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/joseporiolcarne/backtraderalerts/internal/indicator"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

const defaultPollInterval = time.Minute

// Config is the root strategy configuration loaded from YAML.
type Config struct {
	// Symbol is the traded pair, e.g. BTCUSDT.
	Symbol string `yaml:"symbol" validate:"required"`
	// Strategy names this configuration in events and logs.
	Strategy string `yaml:"strategy" validate:"required"`
	// Timeframes declare the bar streams and the indicators computed on
	// each of them.
	Timeframes []TimeframeConfig `yaml:"timeframes" validate:"required,min=1,dive"`
	// Groups are the condition groups evaluated on every bar.
	Groups []types.ConditionGroup `yaml:"condition_groups" validate:"required,min=1,dive"`
	// Alerts configures the notification sinks.
	Alerts AlertsConfig `yaml:"alerts"`
	// MarketData configures the bar provider.
	MarketData MarketDataConfig `yaml:"market_data"`
}

// TimeframeConfig declares one timeframe and its indicators. The name doubles
// as the provider kline interval ("1m", "1h", "1d").
type TimeframeConfig struct {
	Name       string            `yaml:"name" validate:"required"`
	Indicators []IndicatorConfig `yaml:"indicators" validate:"dive"`
}

// IndicatorConfig declares one named indicator instance.
type IndicatorConfig struct {
	Name   string              `yaml:"name" validate:"required"`
	Type   types.IndicatorType `yaml:"type" validate:"required"`
	Params map[string]any      `yaml:"params"`
}

// AlertsConfig selects and parameterizes notification sinks.
type AlertsConfig struct {
	Console  bool           `yaml:"console"`
	Telegram TelegramConfig `yaml:"telegram"`
	Pushover PushoverConfig `yaml:"pushover"`
	// HistoryPath enables SQLite alert persistence when set.
	HistoryPath string `yaml:"history_path"`
}

type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	ChatID  int64  `yaml:"chat_id"`
}

type PushoverConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Token    string `yaml:"token"`
	UserKey  string `yaml:"user_key"`
	Priority int    `yaml:"priority"`
	Sound    string `yaml:"sound"`
}

type MarketDataConfig struct {
	// PollInterval is how often the live loop asks the provider for new
	// bars. Defaults to one minute.
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "read config %q", path)
	}

	return Parse(data)
}

// Parse unmarshals, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "parse config yaml", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MarketData.PollInterval <= 0 {
		c.MarketData.PollInterval = defaultPollInterval
	}

	for i := range c.Groups {
		if c.Groups[i].Combinator == "" {
			c.Groups[i].Combinator = types.CombinatorAnd
		}
	}
}

// Validate checks structural constraints and resolves every indicator type
// through the factory so unknown types fail here, not during evaluation.
// Conditions may reference timeframes or indicator names that are not
// declared; those evaluate to false at runtime.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	seen := make(map[string]struct{}, len(c.Timeframes))

	for _, tf := range c.Timeframes {
		if _, ok := seen[tf.Name]; ok {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "duplicate timeframe %q", tf.Name)
		}

		seen[tf.Name] = struct{}{}

		names := make(map[string]struct{}, len(tf.Indicators))

		for _, ind := range tf.Indicators {
			if _, ok := names[ind.Name]; ok {
				return errors.Newf(errors.ErrCodeInvalidConfiguration, "duplicate indicator %q on timeframe %q", ind.Name, tf.Name)
			}

			names[ind.Name] = struct{}{}

			if _, err := indicator.New(ind.Type, ind.Params); err != nil {
				return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "indicator %q on timeframe %q", ind.Name, tf.Name)
			}
		}
	}

	for _, group := range c.Groups {
		if err := validateGroup(group); err != nil {
			return err
		}
	}

	return nil
}

func validateGroup(group types.ConditionGroup) error {
	if group.Action != types.ActionBuy && group.Action != types.ActionSell {
		return errors.Newf(errors.ErrCodeInvalidAction, "group %q: unknown action %q", group.Name, group.Action)
	}

	if group.Combinator != types.CombinatorAnd && group.Combinator != types.CombinatorOr {
		return errors.Newf(errors.ErrCodeInvalidCombinator, "group %q: unknown combinator %q", group.Name, group.Combinator)
	}

	if len(group.Conditions) == 0 {
		return errors.Newf(errors.ErrCodeNoConditionGroup, "group %q has no conditions", group.Name)
	}

	for _, cond := range group.Conditions {
		if err := validateCondition(group.Name, cond); err != nil {
			return err
		}
	}

	return nil
}

func validateCondition(group string, cond types.Condition) error {
	if !cond.Operator.IsValid() {
		return errors.Newf(errors.ErrCodeInvalidOperator, "group %q: unknown operator %q", group, cond.Operator)
	}

	switch cond.Kind {
	case types.ConditionKindPrice:
		if cond.Field != "" && !cond.Field.IsValid() {
			return errors.Newf(errors.ErrCodeInvalidParameter, "group %q: unknown price field %q", group, cond.Field)
		}
	case types.ConditionKindIndicator:
		if cond.Indicator == "" {
			return errors.Newf(errors.ErrCodeMissingParameter, "group %q: indicator condition needs an indicator name", group)
		}
	case types.ConditionKindCrossover:
		if cond.Left == "" || cond.Right == "" {
			return errors.Newf(errors.ErrCodeMissingParameter, "group %q: crossover condition needs both operands", group)
		}

		if !cond.Operator.IsCrossing() {
			return errors.Newf(errors.ErrCodeInvalidOperator, "group %q: crossover condition needs a crossing operator, got %q", group, cond.Operator)
		}
	default:
		return errors.Newf(errors.ErrCodeInvalidType, "group %q: unknown condition kind %q", group, cond.Kind)
	}

	return nil
}
