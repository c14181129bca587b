package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-features/internal/config"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/internal/version"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/provider"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"
)

// sourceFlags override the source section of the config file.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Usage:   fmt.Sprintf("Data provider (%s, %s or %s)", provider.ProviderCoinGecko, provider.ProviderBinance, provider.ProviderPolygon),
		},
		&cli.StringFlag{
			Name:    "symbol",
			Aliases: []string{"s"},
			Usage:   "CoinGecko coin id or Binance/Polygon ticker",
		},
		&cli.StringFlag{
			Name:  "days",
			Usage: "Days of history or max",
		},
		&cli.StringFlag{
			Name:  "interval",
			Usage: "CoinGecko interval, empty for OHLC or daily",
		},
		&cli.StringFlag{
			Name:  "timespan",
			Usage: "Candle width for Binance and Polygon (e.g. 5m, 1h, 1d)",
		},
		&cli.StringFlag{
			Name:  "csv",
			Usage: "Read candles from a CSV file instead of the provider",
		},
		&cli.BoolFlag{
			Name:  "fallback",
			Usage: "Use the provider when the CSV file cannot be read",
		},
	}
}

// loadConfig reads --config and applies the command line overrides.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if v := cmd.String("provider"); v != "" {
		cfg.Source.Provider = provider.ProviderType(v)
	}

	if v := cmd.String("symbol"); v != "" {
		cfg.Source.CoinID = v
	}

	if v := cmd.String("days"); v != "" {
		cfg.Source.Days = v
	}

	if v := cmd.String("interval"); v != "" {
		cfg.Source.Interval = v
	}

	if v := cmd.String("timespan"); v != "" {
		cfg.Source.Timespan = v
	}

	if v := cmd.String("csv"); v != "" {
		cfg.Source.CSVPath = v
	}

	if cmd.Bool("fallback") {
		cfg.Source.Fallback = true
	}

	if v := cmd.String("variant"); v != "" {
		cfg.Variant = types.FeatureVariant(v)
	}

	if cmd.IsSet("horizon") {
		cfg.Horizon = int(cmd.Int("horizon"))
	}

	if v := cmd.String("out"); v != "" {
		cfg.OutputDir = v
	}

	if cmd.Bool("parallel") {
		cfg.Parallel = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	level, err := zapcore.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	return logger.NewLoggerWithLevel(level)
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "features",
		Usage:   "Build price direction datasets from crypto market data",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Commands: []*cli.Command{
			fetchCommand(),
			buildCommand(),
			scoreCommand(),
			schemaCommand(),
			providersCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
