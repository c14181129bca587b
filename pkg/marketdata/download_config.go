package marketdata

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/provider"
)

// DownloadConfig is a provider specific download request, as accepted by
// the fetch command in JSON form.
type DownloadConfig interface {
	Validate() error
	Params() (FetchParams, error)
}

// BaseDownloadConfig contains common fields for all download configurations.
type BaseDownloadConfig struct {
	Symbol string `json:"symbol" jsonschema:"title=Symbol,description=Coin id or trading pair (e.g. bitcoin or BTCUSDT),required" validate:"required"`
}

// CoinGeckoDownloadConfig downloads the last Days of history.
type CoinGeckoDownloadConfig struct {
	BaseDownloadConfig

	Currency string `json:"currency,omitempty" jsonschema:"title=Currency,description=Quote currency,default=usd"`
	Days     string `json:"days" jsonschema:"title=Days,description=Days of history or max. Rounded up to 1 7 14 30 90 180 or 365,required" validate:"required"`
	Interval string `json:"interval,omitempty" jsonschema:"title=Interval,description=Empty for OHLC candles or daily for the market chart,enum=daily" validate:"omitempty,oneof=daily"`
}

// RangeDownloadConfig downloads the candles between two dates from Binance
// or Polygon.
type RangeDownloadConfig struct {
	BaseDownloadConfig

	StartDate string `json:"startDate" jsonschema:"title=Start Date,description=Start date in RFC3339,format=date-time,required" validate:"required"`
	EndDate   string `json:"endDate" jsonschema:"title=End Date,description=End date in RFC3339,format=date-time,required" validate:"required"`
	Interval  string `json:"interval" jsonschema:"title=Interval,description=Candle width,required,enum=1m,enum=5m,enum=15m,enum=30m,enum=1h,enum=4h,enum=1d,enum=1w" validate:"required,oneof=1m 5m 15m 30m 1h 4h 1d 1w"`
}

// Validate validates the CoinGecko fields.
func (c *CoinGeckoDownloadConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	days, full, err := provider.ParseDays(c.Days)
	if err != nil {
		return err
	}

	if !full && days < 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "days must be positive or max, got %d", days)
	}

	return nil
}

// Params converts the config to fetch parameters.
func (c *CoinGeckoDownloadConfig) Params() (FetchParams, error) {
	if err := c.Validate(); err != nil {
		return FetchParams{}, err
	}

	days, full, _ := provider.ParseDays(c.Days)

	//nolint:exhaustruct // range fields are unused by CoinGecko
	return FetchParams{
		Symbol:     c.Symbol,
		Currency:   c.Currency,
		Days:       days,
		MaxHistory: full,
		Interval:   c.Interval,
	}, nil
}

// Validate validates the range fields and date formats.
func (c *RangeDownloadConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	start, err := time.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid startDate format, expected RFC3339", err)
	}

	end, err := time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid endDate format, expected RFC3339", err)
	}

	if !end.After(start) {
		return errors.New(errors.ErrCodeInvalidParameter, "endDate must be after startDate")
	}

	return nil
}

// Params converts the config to fetch parameters.
func (c *RangeDownloadConfig) Params() (FetchParams, error) {
	if err := c.Validate(); err != nil {
		return FetchParams{}, err
	}

	start, _ := time.Parse(time.RFC3339, c.StartDate)
	end, _ := time.Parse(time.RFC3339, c.EndDate)

	//nolint:exhaustruct // CoinGecko fields are unused for ranges
	return FetchParams{
		Symbol:    c.Symbol,
		Timespan:  provider.Timespan(c.Interval),
		StartDate: start,
		EndDate:   end,
	}, nil
}

// ParseDownloadConfig parses a JSON download request for the given provider.
func ParseDownloadConfig(providerName string, jsonConfig string) (DownloadConfig, error) {
	var config DownloadConfig

	switch provider.ProviderType(providerName) {
	case provider.ProviderCoinGecko:
		config = &CoinGeckoDownloadConfig{}
	case provider.ProviderBinance, provider.ProviderPolygon:
		config = &RangeDownloadConfig{}
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	if err := json.Unmarshal([]byte(jsonConfig), config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse download config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
