package provider

import (
	"context"
	"fmt"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/shopspring/decimal"
)

// binancePageSize is the number of klines Binance returns per request.
const binancePageSize = 500

// BinanceKlinesService is the subset of the klines service used by BinanceClient.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	StartTime(startTime int64) BinanceKlinesService
	EndTime(endTime int64) BinanceKlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// BinanceAPIClient creates klines services.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

type binanceAPIAdapter struct {
	client *binance.Client
}

func (a *binanceAPIAdapter) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesAdapter{service: a.client.NewKlinesService()}
}

type binanceKlinesAdapter struct {
	service *binance.KlinesService
}

func (s *binanceKlinesAdapter) Symbol(symbol string) BinanceKlinesService {
	s.service.Symbol(symbol)

	return s
}

func (s *binanceKlinesAdapter) Interval(interval string) BinanceKlinesService {
	s.service.Interval(interval)

	return s
}

func (s *binanceKlinesAdapter) StartTime(startTime int64) BinanceKlinesService {
	s.service.StartTime(startTime)

	return s
}

func (s *binanceKlinesAdapter) EndTime(endTime int64) BinanceKlinesService {
	s.service.EndTime(endTime)

	return s
}

func (s *binanceKlinesAdapter) Do(ctx context.Context) ([]*binance.Kline, error) {
	return s.service.Do(ctx)
}

// BinanceClient fetches klines from the public Binance API.
type BinanceClient struct {
	apiClient  BinanceAPIClient
	now        func() time.Time
	OnProgress OnDownloadProgress
}

// NewBinanceClient creates a client for the public Binance endpoints.
func NewBinanceClient() (Provider, error) {
	client := binance.NewClient("", "")

	return NewBinanceClientWithAPI(&binanceAPIAdapter{client: client}), nil
}

// NewBinanceClientWithBaseURL creates a client for a Binance compatible
// endpoint such as the testnet.
func NewBinanceClientWithBaseURL(baseURL string) *BinanceClient {
	client := binance.NewClient("", "")
	client.BaseURL = baseURL

	return NewBinanceClientWithAPI(&binanceAPIAdapter{client: client})
}

// NewBinanceClientWithAPI creates a client backed by apiClient.
func NewBinanceClientWithAPI(apiClient BinanceAPIClient) *BinanceClient {
	return &BinanceClient{
		apiClient: apiClient,
		now:       time.Now,
	}
}

// Candles downloads every kline in the request window, one page at a time.
func (c *BinanceClient) Candles(ctx context.Context, req Request) ([]types.Candle, error) {
	timespan := req.CandleTimespan()
	if !timespan.IsValid() {
		return nil, errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported timespan for Binance: %s", timespan)
	}

	start, end, err := req.Window(c.now())
	if err != nil {
		return nil, err
	}

	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()
	currentStart := startMillis

	var candles []types.Candle

	for {
		klines, err := c.apiClient.NewKlinesService().
			Symbol(req.Symbol).
			Interval(string(timespan)).
			StartTime(currentStart).
			EndTime(endMillis).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch klines from Binance", err)
		}

		if c.OnProgress != nil {
			c.OnProgress(float64(currentStart-startMillis), float64(endMillis-startMillis), fmt.Sprintf("Downloading %s klines from Binance", req.Symbol))
		}

		page, err := klinesToCandles(req.Symbol, klines)
		if err != nil {
			return nil, err
		}

		candles = append(candles, page...)

		if len(klines) < binancePageSize {
			break
		}

		// next page starts right after the close of the last kline
		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	return candles, nil
}

func klinesToCandles(symbol string, klines []*binance.Kline) ([]types.Candle, error) {
	candles := make([]types.Candle, 0, len(klines))

	for _, k := range klines {
		values := make([]float64, 5)

		for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid kline value %q", raw)
			}

			values[i] = d.InexactFloat64()
		}

		candles = append(candles, types.Candle{
			Symbol: symbol,
			Time:   time.UnixMilli(k.OpenTime).UTC(),
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		})
	}

	return candles, nil
}
