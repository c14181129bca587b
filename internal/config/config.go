// Package config loads the YAML configuration of a feature build.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-features/internal/features"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/rxtech-lab/argo-features/pkg/marketdata"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/provider"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvPolygonAPIKey   = "POLYGON_API_KEY"
	EnvCoinGeckoAPIKey = "COINGECKO_API_KEY"
)

// BollingerConfig configures the Bollinger position column.
type BollingerConfig struct {
	Window int     `yaml:"window" jsonschema:"title=Window,description=Moving average window,default=20" validate:"gte=1"`
	NumStd float64 `yaml:"num_std" jsonschema:"title=Band width,description=Band width in standard deviations,default=2" validate:"gt=0"`
}

// SourceConfig selects where candles come from.
type SourceConfig struct {
	Provider provider.ProviderType `yaml:"provider" jsonschema:"title=Provider,enum=coingecko,enum=binance,enum=polygon,default=coingecko" validate:"required,oneof=coingecko binance polygon"`
	// CoinID is the CoinGecko coin id or the Binance/Polygon ticker.
	CoinID   string `yaml:"coin_id" jsonschema:"title=Coin,description=Coin id or ticker,default=bitcoin" validate:"required"`
	Currency string `yaml:"currency" jsonschema:"title=Currency,default=usd"`
	// Days is a day count or "max".
	Days     string `yaml:"days" jsonschema:"title=Days,description=Days of history or max,default=1" validate:"required"`
	Interval string `yaml:"interval" jsonschema:"title=Interval,description=Empty for OHLC candles or daily for the market chart" validate:"omitempty,oneof=daily"`
	// Timespan is the candle width for Binance and Polygon.
	Timespan string `yaml:"timespan" jsonschema:"title=Timespan,enum=1m,enum=5m,enum=15m,enum=30m,enum=1h,enum=4h,enum=1d,enum=1w" validate:"omitempty,oneof=1m 5m 15m 30m 1h 4h 1d 1w"`
	// CSVPath is tried first when set.
	CSVPath string `yaml:"csv_path" jsonschema:"title=CSV file,description=Local candle file tried before the provider"`
	// Fallback uses the provider when the CSV file cannot be read.
	Fallback      bool          `yaml:"fallback" jsonschema:"title=Fallback,description=Use the provider when the CSV file fails"`
	APIKey        string        `yaml:"api_key" jsonschema:"title=CoinGecko API key"`
	PolygonAPIKey string        `yaml:"polygon_api_key" jsonschema:"title=Polygon API key" validate:"required_if=Provider polygon"`
	BaseURL       string        `yaml:"base_url" jsonschema:"title=CoinGecko base URL"`
	MaxRetries    int           `yaml:"max_retries" jsonschema:"title=Max attempts,default=3,minimum=1,maximum=10" validate:"gte=1,lte=10"`
	BaseDelay     time.Duration `yaml:"base_delay" jsonschema:"title=Base delay,type=string,description=First backoff wait e.g. 5s" validate:"gte=0"`
	Timeout       time.Duration `yaml:"timeout" jsonschema:"title=Timeout,type=string,description=Per attempt timeout e.g. 30s" validate:"gt=0"`
}

// Config is the root configuration.
type Config struct {
	Variant           types.FeatureVariant `yaml:"variant" jsonschema:"title=Variant,enum=minimal,enum=enhanced,default=minimal" validate:"required,oneof=minimal enhanced"`
	Horizon           int                  `yaml:"horizon" jsonschema:"title=Horizon,description=Label lookahead in candles,default=20" validate:"gte=1"`
	RSIPeriod         int                  `yaml:"rsi_period" jsonschema:"title=RSI period,default=14" validate:"gte=1"`
	Bollinger         BollingerConfig      `yaml:"bollinger"`
	MinSamples        int                  `yaml:"min_samples" jsonschema:"title=Minimum samples,description=0 uses 50 for minimal and 1000 for enhanced" validate:"gte=0"`
	KeepUnlabeledTail bool                 `yaml:"keep_unlabeled_tail" jsonschema:"title=Keep unlabeled tail"`
	Parallel          bool                 `yaml:"parallel" jsonschema:"title=Parallel,description=Compute feature columns concurrently"`
	OutputDir         string               `yaml:"output_dir" jsonschema:"title=Output directory,default=."`
	Source            SourceConfig         `yaml:"source"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Variant:   types.FeatureVariantMinimal,
		Horizon:   20,
		RSIPeriod: 14,
		Bollinger: BollingerConfig{
			Window: 20,
			NumStd: 2,
		},
		OutputDir: ".",
		Source: SourceConfig{
			Provider:   provider.ProviderCoinGecko,
			CoinID:     "bitcoin",
			Currency:   "usd",
			Days:       "1",
			MaxRetries: 3,
			BaseDelay:  5 * time.Second,
			Timeout:    30 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		cfg.ApplyEnv()

		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults, applies environment overrides and validates.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv copies API keys from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPolygonAPIKey); v != "" {
		c.Source.PolygonAPIKey = v
	}

	if v := os.Getenv(EnvCoinGeckoAPIKey); v != "" {
		c.Source.APIKey = v
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	days, full, err := provider.ParseDays(c.Source.Days)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid source.days", err)
	}

	if !full && days < 1 {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "source.days must be positive or max, got %d", days)
	}

	return nil
}

// BuilderConfig returns the dataset builder settings.
func (c Config) BuilderConfig() features.BuilderConfig {
	return features.BuilderConfig{
		Variant:           c.Variant,
		Horizon:           c.Horizon,
		MinSamples:        c.MinSamples,
		KeepUnlabeledTail: c.KeepUnlabeledTail,
		Parallel:          c.Parallel,
		Layout: features.LayoutOptions{
			RSIPeriod:       c.RSIPeriod,
			BollingerWindow: c.Bollinger.Window,
			BollingerNumStd: c.Bollinger.NumStd,
		},
	}
}

// ClientConfig returns the market data client settings. Downloads go to dataPath.
func (c Config) ClientConfig(dataPath string) marketdata.ClientConfig {
	return marketdata.ClientConfig{
		ProviderType:  c.Source.Provider,
		DataPath:      dataPath,
		PolygonApiKey: c.Source.PolygonAPIKey,
		CoinGecko: provider.CoinGeckoConfig{
			BaseURL: c.Source.BaseURL,
			APIKey:  c.Source.APIKey,
			Timeout: c.Source.Timeout,
			Retry: provider.RetryPolicy{
				MaxRetries: c.Source.MaxRetries,
				BaseDelay:  c.Source.BaseDelay,
			},
		},
	}
}

// FetchParams returns the candle request of the source section.
func (c Config) FetchParams() (marketdata.FetchParams, error) {
	days, full, err := provider.ParseDays(c.Source.Days)
	if err != nil {
		return marketdata.FetchParams{}, err
	}

	//nolint:exhaustruct // explicit date ranges are only set from the command line
	return marketdata.FetchParams{
		Symbol:     c.Source.CoinID,
		Currency:   c.Source.Currency,
		Days:       days,
		MaxHistory: full,
		Interval:   c.Source.Interval,
		Timespan:   provider.Timespan(c.Source.Timespan),
	}, nil
}

// Schema returns the JSON schema of the configuration file.
func Schema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.FieldNameTag = "yaml"
	r.RequiredFromJSONSchemaTags = true

	//nolint:exhaustruct // Empty struct is intentional for schema generation
	schema := r.Reflect(&Config{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to encode schema", err)
	}

	return string(data), nil
}
