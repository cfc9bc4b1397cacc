package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/joseporiolcarne/backtraderalerts/internal/config"
	"github.com/joseporiolcarne/backtraderalerts/internal/dispatch"
	"github.com/joseporiolcarne/backtraderalerts/internal/engine"
	"github.com/joseporiolcarne/backtraderalerts/internal/logger"
	"github.com/joseporiolcarne/backtraderalerts/internal/marketdata"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the live monitor loop against the configured strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the strategy YAML file",
				Required: true,
			},
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	manager, closeStore, err := buildManager(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	eng, err := engine.FromConfig(cfg, manager, log)
	if err != nil {
		return err
	}

	timeframes := eng.Bindings().Names()
	monitor := marketdata.NewMonitor(
		marketdata.NewBinanceProvider(),
		cfg.Symbol,
		timeframes,
		cfg.MarketData.PollInterval,
		eng.OnBar,
		log,
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("monitor starting",
		zap.String("symbol", cfg.Symbol),
		zap.String("strategy", cfg.Strategy),
		zap.Strings("timeframes", timeframes),
		zap.Duration("poll_interval", cfg.MarketData.PollInterval),
	)

	if err := monitor.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	log.Info("monitor stopped")

	return nil
}

// buildManager assembles the dispatch manager with the configured sinks. The
// returned closer releases the optional SQLite store.
func buildManager(cfg *config.Config, log *logger.Logger) (*dispatch.Manager, func(), error) {
	var store *dispatch.HistoryStore

	closeStore := func() {}

	if cfg.Alerts.HistoryPath != "" {
		s, err := dispatch.OpenHistoryStore(cfg.Alerts.HistoryPath)
		if err != nil {
			return nil, nil, err
		}

		store = s
		closeStore = func() { store.Close() }
	}

	manager := dispatch.NewManager(store, log)

	if cfg.Alerts.Console {
		manager.Register(dispatch.NewConsoleNotifier(log))
	}

	if cfg.Alerts.Telegram.Enabled {
		telegram, err := dispatch.NewTelegramNotifier(cfg.Alerts.Telegram.Token, cfg.Alerts.Telegram.ChatID)
		if err != nil {
			closeStore()

			return nil, nil, err
		}

		manager.Register(telegram)
	}

	if cfg.Alerts.Pushover.Enabled {
		pushover, err := dispatch.NewPushoverNotifier(dispatch.PushoverConfig{
			Token:    cfg.Alerts.Pushover.Token,
			UserKey:  cfg.Alerts.Pushover.UserKey,
			Priority: cfg.Alerts.Pushover.Priority,
			Sound:    cfg.Alerts.Pushover.Sound,
		})
		if err != nil {
			closeStore()

			return nil, nil, err
		}

		manager.Register(pushover)
	}

	return manager, closeStore, nil
}
