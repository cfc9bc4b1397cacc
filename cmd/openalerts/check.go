package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/joseporiolcarne/backtraderalerts/internal/config"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate a strategy configuration without running it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the strategy YAML file",
				Required: true,
			},
		},
		Action: checkAction,
	}
}

func checkAction(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s: ok\n", path)
	fmt.Printf("  symbol:     %s\n", cfg.Symbol)
	fmt.Printf("  strategy:   %s\n", cfg.Strategy)

	for _, tf := range cfg.Timeframes {
		fmt.Printf("  timeframe:  %s (%d indicators)\n", tf.Name, len(tf.Indicators))
	}

	for _, group := range cfg.Groups {
		fmt.Printf("  group:      %s %s (%d conditions)\n", group.Name, group.Action, len(group.Conditions))
	}

	return nil
}
