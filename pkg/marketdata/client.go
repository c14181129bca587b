package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  provider.ProviderType `validate:"required,oneof=coingecko binance polygon"`
	DataPath      string
	PolygonApiKey string                   `validate:"required_if=ProviderType polygon"`
	CoinGecko     provider.CoinGeckoConfig `validate:"-"`
}

// FetchParams describes the candles to fetch.
type FetchParams struct {
	Symbol   string `validate:"required"`
	Currency string
	Days     int `validate:"required_without_all=StartDate MaxHistory"`
	// MaxHistory requests the full CoinGecko history instead of Days.
	MaxHistory bool
	Interval   string
	Timespan   provider.Timespan
	StartDate  time.Time
	EndDate    time.Time
}

func (p FetchParams) request() provider.Request {
	return provider.Request{
		Symbol:     p.Symbol,
		Currency:   p.Currency,
		Days:       p.Days,
		MaxHistory: p.MaxHistory,
		Interval:   p.Interval,
		Timespan:   p.Timespan,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
	}
}

// Client fetches candles from a provider and optionally stores them as Parquet.
type Client struct {
	provider provider.Provider
	config   ClientConfig
	validate *validator.Validate
	logger   *logger.Logger
}

// NewClient creates a new market data client with the given configuration.
// onProgress receives Binance paging progress and CoinGecko retry notices.
func NewClient(config ClientConfig, log *logger.Logger, onProgress provider.OnDownloadProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	var (
		marketProvider provider.Provider
		err            error
	)

	switch config.ProviderType {
	case provider.ProviderCoinGecko:
		client := provider.NewCoinGeckoClient(config.CoinGecko, log)
		if onProgress != nil {
			client.OnRetry = func(attempt int, wait time.Duration) {
				onProgress(float64(attempt+1), float64(client.RetryPolicy().MaxRetries),
					fmt.Sprintf("Rate limited, retrying in %s", wait))
			}
		}

		marketProvider = client
	case provider.ProviderBinance:
		marketProvider, err = provider.NewBinanceClient()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProvider, "failed to create Binance client", err)
		}

		if binanceClient, ok := marketProvider.(*provider.BinanceClient); ok {
			binanceClient.OnProgress = onProgress
		}
	default:
		marketProvider, err = provider.NewMarketDataProvider(config.ProviderType, config.PolygonApiKey, log)
		if err != nil {
			return nil, err
		}
	}

	return NewClientWithProvider(config, marketProvider, log), nil
}

// NewClientWithProvider creates a client around an existing provider.
func NewClientWithProvider(config ClientConfig, marketProvider provider.Provider, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider: marketProvider,
		config:   config,
		validate: validator.New(),
		logger:   log,
	}
}

// Fetch returns the candles described by params.
func (c *Client) Fetch(ctx context.Context, params FetchParams) ([]types.Candle, error) {
	if err := c.validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid fetch parameters", err)
	}

	candles, err := c.provider.Candles(ctx, params.request())
	if err != nil {
		return nil, err
	}

	if len(candles) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "provider %s returned no candles for %s", c.config.ProviderType, params.Symbol)
	}

	c.logger.Info("Fetched candles",
		zap.String("provider", string(c.config.ProviderType)),
		zap.String("symbol", params.Symbol),
		zap.Int("count", len(candles)),
	)

	return candles, nil
}

// Download fetches candles and writes them to a Parquet file under
// DataPath. It returns the file path.
func (c *Client) Download(ctx context.Context, params FetchParams) (string, error) {
	candles, err := c.Fetch(ctx, params)
	if err != nil {
		return "", err
	}

	if c.config.DataPath != "" {
		if err := os.MkdirAll(c.config.DataPath, 0o755); err != nil {
			return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create %s", c.config.DataPath)
		}
	}

	outputPath := filepath.Join(c.config.DataPath, c.outputFileName(params))

	return writer.WriteCandles(writer.NewDuckDBWriter(outputPath, c.logger), candles)
}

// outputFileName is PROVIDER_SYMBOL_RANGE_TIMESPAN.parquet, where RANGE is
// the day count or the start and end dates.
func (c *Client) outputFileName(params FetchParams) string {
	req := params.request()

	span := provider.MaxHistory
	if !params.MaxHistory {
		span = provider.FormatDays(provider.NormalizeDays(params.Days), false) + "d"
	}

	if !params.StartDate.IsZero() {
		end := params.EndDate
		if end.IsZero() {
			end = time.Now()
		}

		span = params.StartDate.Format("2006-01-02") + "_" + end.Format("2006-01-02")
	}

	return fmt.Sprintf("%s_%s_%s_%s.parquet", c.config.ProviderType, params.Symbol, span, req.CandleTimespan())
}
