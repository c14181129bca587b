package main

import (
	"context"

	"github.com/rxtech-lab/argo-features/internal/config"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/marketdata"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/source"
	"go.uber.org/zap"
)

// loadCandles reads the configured CSV or Parquet file, or fetches from the
// provider. A failing file falls back to the provider when enabled.
func loadCandles(ctx context.Context, cfg config.Config, log *logger.Logger, onProgress provider.OnDownloadProgress) ([]types.Candle, error) {
	if cfg.Source.CSVPath != "" {
		candles, err := readFile(ctx, cfg, log)
		if err == nil {
			return candles, nil
		}

		if !cfg.Source.Fallback {
			return nil, err
		}

		log.Warn("Could not load local candles, falling back to provider",
			zap.String("path", cfg.Source.CSVPath),
			zap.String("provider", string(cfg.Source.Provider)),
			zap.Error(err),
		)
	}

	return fetchCandles(ctx, cfg, log, onProgress)
}

func readFile(ctx context.Context, cfg config.Config, log *logger.Logger) ([]types.Candle, error) {
	src, err := source.Open(cfg.Source.CSVPath, cfg.Source.CoinID, log)
	if err != nil {
		return nil, err
	}

	candles, err := src.Candles(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("Loaded candles", zap.String("path", cfg.Source.CSVPath), zap.Int("count", len(candles)))

	return candles, nil
}

func fetchCandles(ctx context.Context, cfg config.Config, log *logger.Logger, onProgress provider.OnDownloadProgress) ([]types.Candle, error) {
	client, err := marketdata.NewClient(cfg.ClientConfig(""), log, onProgress)
	if err != nil {
		return nil, err
	}

	params, err := cfg.FetchParams()
	if err != nil {
		return nil, err
	}

	return client.Fetch(ctx, params)
}
