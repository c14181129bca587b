package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"go.uber.org/zap"
)

// DefaultCoinGeckoBaseURL is the public CoinGecko v3 API.
const DefaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

const maxErrorBody = 200

// HTTPDoer is the part of *http.Client the CoinGecko client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CoinGeckoConfig configures a CoinGeckoClient.
type CoinGeckoConfig struct {
	BaseURL string
	// APIKey is sent as the demo API key header when set.
	APIKey string
	// Timeout bounds every single attempt.
	Timeout time.Duration
	Retry   RetryPolicy
}

// DefaultCoinGeckoConfig returns the public endpoint with a 30s timeout and
// the default retry policy.
func DefaultCoinGeckoConfig() CoinGeckoConfig {
	return CoinGeckoConfig{
		BaseURL: DefaultCoinGeckoBaseURL,
		Timeout: 30 * time.Second,
		Retry:   DefaultRetryPolicy(),
	}
}

// CoinGeckoClient fetches candles from CoinGecko, rounding history lengths
// to supported values and backing off on HTTP 429.
type CoinGeckoClient struct {
	config     CoinGeckoConfig
	httpClient HTTPDoer
	sleeper    Sleeper
	logger     *logger.Logger
	// OnRetry is called before each backoff wait.
	OnRetry OnRetry
}

// NewCoinGeckoClient creates a client using http.DefaultClient and a real timer.
func NewCoinGeckoClient(config CoinGeckoConfig, log *logger.Logger) *CoinGeckoClient {
	return NewCoinGeckoClientWithHTTP(config, http.DefaultClient, NewTimerSleeper(), log)
}

// NewCoinGeckoClientWithHTTP creates a client with an injected transport and sleeper.
func NewCoinGeckoClientWithHTTP(config CoinGeckoConfig, httpClient HTTPDoer, sleeper Sleeper, log *logger.Logger) *CoinGeckoClient {
	defaults := DefaultCoinGeckoConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}

	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	if config.Retry.MaxRetries <= 0 {
		config.Retry = defaults.Retry
	}

	config.Retry.MaxRetries = min(config.Retry.MaxRetries, MaxRetriesLimit)

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &CoinGeckoClient{
		config:     config,
		httpClient: httpClient,
		sleeper:    sleeper,
		logger:     log,
	}
}

// RetryPolicy returns the effective retry policy.
func (c *CoinGeckoClient) RetryPolicy() RetryPolicy {
	return c.config.Retry
}

// Candles implements Provider. Without an interval the OHLC endpoint is used,
// otherwise the market chart endpoint.
func (c *CoinGeckoClient) Candles(ctx context.Context, req Request) ([]types.Candle, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	if req.MaxHistory {
		if req.Interval == "" {
			return c.fetchOHLC(ctx, req.Symbol, currency, MaxHistory)
		}

		return c.fetchMarketChart(ctx, req.Symbol, currency, MaxHistory, req.Interval)
	}

	if req.Interval == "" {
		return c.FetchOHLC(ctx, req.Symbol, currency, req.Days)
	}

	return c.FetchMarketChart(ctx, req.Symbol, currency, req.Days, req.Interval)
}

// FetchOHLC returns OHLC candles for coinID. days is rounded up to a supported
// history length. CoinGecko reports no volume on this endpoint so Volume is
// always 0.
func (c *CoinGeckoClient) FetchOHLC(ctx context.Context, coinID string, currency string, days int) ([]types.Candle, error) {
	return c.fetchOHLC(ctx, coinID, currency, FormatDays(c.normalizeDays(days), false))
}

func (c *CoinGeckoClient) fetchOHLC(ctx context.Context, coinID string, currency string, days string) ([]types.Candle, error) {
	query := url.Values{}
	query.Set("vs_currency", currency)
	query.Set("days", days)

	c.logger.Info("Fetching OHLC data from CoinGecko",
		zap.String("coin", coinID),
		zap.String("days", days),
	)

	body, err := c.get(ctx, fmt.Sprintf("/coins/%s/ohlc", url.PathEscape(coinID)), query)
	if err != nil {
		return nil, err
	}

	var rows [][]float64
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode OHLC response", err)
	}

	candles := make([]types.Candle, 0, len(rows))

	for i, row := range rows {
		if len(row) < 5 {
			return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed, "OHLC row %d has %d fields, expected 5", i, len(row))
		}

		candles = append(candles, types.Candle{
			Symbol: coinID,
			Time:   time.UnixMilli(int64(row[0])).UTC(),
			Open:   row[1],
			High:   row[2],
			Low:    row[3],
			Close:  row[4],
		})
	}

	c.logger.Info("Fetched candles", zap.String("coin", coinID), zap.Int("count", len(candles)))

	return candles, nil
}

type marketChartResponse struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// FetchMarketChart returns one candle per price point of the market chart
// endpoint. Open, High and Low repeat the price; Volume is taken from
// total_volumes when it lines up with prices.
func (c *CoinGeckoClient) FetchMarketChart(ctx context.Context, coinID string, currency string, days int, interval string) ([]types.Candle, error) {
	return c.fetchMarketChart(ctx, coinID, currency, FormatDays(max(days, 1), false), interval)
}

func (c *CoinGeckoClient) fetchMarketChart(ctx context.Context, coinID string, currency string, days string, interval string) ([]types.Candle, error) {
	query := url.Values{}
	query.Set("vs_currency", currency)
	query.Set("days", days)

	if interval != "" {
		query.Set("interval", interval)
	}

	c.logger.Info("Fetching market chart from CoinGecko",
		zap.String("coin", coinID),
		zap.String("days", days),
		zap.String("interval", interval),
	)

	body, err := c.get(ctx, fmt.Sprintf("/coins/%s/market_chart", url.PathEscape(coinID)), query)
	if err != nil {
		return nil, err
	}

	var chart marketChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode market chart response", err)
	}

	withVolume := len(chart.TotalVolumes) == len(chart.Prices)
	candles := make([]types.Candle, 0, len(chart.Prices))

	for i, point := range chart.Prices {
		if len(point) < 2 {
			return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed, "price point %d has %d fields, expected 2", i, len(point))
		}

		candle := types.Candle{
			Symbol: coinID,
			Time:   time.UnixMilli(int64(point[0])).UTC(),
			Open:   point[1],
			High:   point[1],
			Low:    point[1],
			Close:  point[1],
		}

		if withVolume && len(chart.TotalVolumes[i]) >= 2 {
			candle.Volume = chart.TotalVolumes[i][1]
		}

		candles = append(candles, candle)
	}

	c.logger.Info("Fetched candles", zap.String("coin", coinID), zap.Int("count", len(candles)))

	return candles, nil
}

func (c *CoinGeckoClient) normalizeDays(days int) int {
	normalized := NormalizeDays(days)
	if normalized != days {
		c.logger.Warn("Adjusted days to a supported value",
			zap.Int("requested", days),
			zap.Int("days", normalized),
		)
	}

	if CandleInterval(normalized) == 24*time.Hour {
		c.logger.Info("CoinGecko returns daily candles for this range", zap.Int("days", normalized))
	}

	return normalized
}

func (c *CoinGeckoClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.config.BaseURL + path + "?" + query.Encode()

	onRetry := func(attempt int, wait time.Duration) {
		c.logger.Warn("Rate limited by CoinGecko, backing off",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.config.Retry.MaxRetries),
			zap.Duration("wait", wait),
		)

		if c.OnRetry != nil {
			c.OnRetry(attempt, wait)
		}
	}

	return Execute(ctx, c.config.Retry, c.sleeper, func(ctx context.Context) (int, []byte, error) {
		return c.attempt(ctx, endpoint)
	}, onRetry)
}

func (c *CoinGeckoClient) attempt(ctx context.Context, endpoint string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Accept", "application/json")

	if c.config.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}

// bodySnippet prefers the "error" field of a JSON body and otherwise returns
// at most the first 200 characters.
func bodySnippet(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &payload); err == nil && payload.Error != "" {
			return payload.Error
		}
	}

	runes := []rune(string(body))
	if len(runes) > maxErrorBody {
		return string(runes[:maxErrorBody])
	}

	return string(runes)
}
