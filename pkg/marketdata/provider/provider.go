package provider

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderCoinGecko ProviderType = "coingecko"
	ProviderPolygon   ProviderType = "polygon"
	ProviderBinance   ProviderType = "binance"
)

type OnDownloadProgress = func(current float64, total float64, message string)

// Request describes the candles to fetch.
//
// CoinGecko only looks at Days, MaxHistory and Interval. Binance and Polygon
// fetch the window [StartDate, EndDate]; a zero EndDate means now and a zero
// StartDate means Days before EndDate.
type Request struct {
	Symbol   string
	Currency string
	Days     int
	// MaxHistory asks for the full history and overrides Days.
	MaxHistory bool
	Interval   string
	Timespan   Timespan
	StartDate  time.Time
	EndDate    time.Time
}

// Window resolves the time range of a range based request.
func (r Request) Window(now time.Time) (time.Time, time.Time, error) {
	end := r.EndDate
	if end.IsZero() {
		end = now
	}

	start := r.StartDate
	if start.IsZero() {
		if r.MaxHistory || r.Days < 1 {
			return time.Time{}, time.Time{}, errors.Newf(errors.ErrCodeInvalidParameter, "days must be a positive number without a start date, got %s", FormatDays(r.Days, r.MaxHistory))
		}

		start = end.Add(-time.Duration(r.Days) * 24 * time.Hour)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.New(errors.ErrCodeInvalidParameter, "end date must be after start date")
	}

	return start, end, nil
}

// CandleTimespan returns the requested timespan, or the CoinGecko equivalent
// for the requested days.
func (r Request) CandleTimespan() Timespan {
	if r.Timespan != "" {
		return r.Timespan
	}

	if r.MaxHistory || CandleInterval(r.Days) == 24*time.Hour {
		return TimespanOneDay
	}

	return TimespanFiveMinutes
}

// Provider returns candles ordered by time.
type Provider interface {
	Candles(ctx context.Context, req Request) ([]types.Candle, error)
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
// config is the Polygon API key for ProviderPolygon and an optional
// CoinGeckoConfig for ProviderCoinGecko.
func NewMarketDataProvider(providerType ProviderType, config any, log *logger.Logger) (Provider, error) {
	switch providerType {
	case ProviderCoinGecko:
		coinGeckoConfig, ok := config.(CoinGeckoConfig)
		if !ok {
			coinGeckoConfig = DefaultCoinGeckoConfig()
		}

		return NewCoinGeckoClient(coinGeckoConfig, log), nil
	case ProviderBinance:
		return NewBinanceClient()
	case ProviderPolygon:
		apiKey, ok := config.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon provider requires API key string config")
		}

		return NewPolygonClient(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}
