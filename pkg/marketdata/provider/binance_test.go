package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	argoerrors "github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// mockBinanceAPIClient implements BinanceAPIClient for testing.
type mockBinanceAPIClient struct {
	klines    []*binance.Kline
	klinesErr error
	// For pagination testing - returns different results on subsequent calls
	callCount     int
	klinesPerCall [][]*binance.Kline
	errorsPerCall []error
	services      []*mockBinanceKlinesService
}

func (m *mockBinanceAPIClient) NewKlinesService() BinanceKlinesService {
	service := &mockBinanceKlinesService{client: m}
	m.services = append(m.services, service)

	return service
}

type mockBinanceKlinesService struct {
	client   *mockBinanceAPIClient
	symbol   string
	interval string
	start    int64
	end      int64
}

func (m *mockBinanceKlinesService) Symbol(symbol string) BinanceKlinesService {
	m.symbol = symbol
	return m
}

func (m *mockBinanceKlinesService) Interval(interval string) BinanceKlinesService {
	m.interval = interval
	return m
}

func (m *mockBinanceKlinesService) StartTime(startTime int64) BinanceKlinesService {
	m.start = startTime
	return m
}

func (m *mockBinanceKlinesService) EndTime(endTime int64) BinanceKlinesService {
	m.end = endTime
	return m
}

func (m *mockBinanceKlinesService) Do(_ context.Context) ([]*binance.Kline, error) {
	if len(m.client.klinesPerCall) > 0 {
		idx := m.client.callCount
		m.client.callCount++
		if idx < len(m.client.klinesPerCall) {
			var err error
			if idx < len(m.client.errorsPerCall) {
				err = m.client.errorsPerCall[idx]
			}
			return m.client.klinesPerCall[idx], err
		}
		return nil, nil
	}

	m.client.callCount++

	return m.client.klines, m.client.klinesErr
}

func fullPage(startMillis int64) []*binance.Kline {
	page := make([]*binance.Kline, binancePageSize)
	for i := range page {
		openTime := startMillis + int64(i*300000)
		page[i] = &binance.Kline{
			OpenTime:  openTime,
			Open:      "42000.50",
			High:      "42500.00",
			Low:       "41800.00",
			Close:     "42300.00",
			Volume:    "1000.5",
			CloseTime: openTime + 299999,
		}
	}

	return page
}

type BinanceClientTestSuite struct {
	suite.Suite
	start time.Time
	end   time.Time
}

func TestBinanceClientSuite(t *testing.T) {
	suite.Run(t, new(BinanceClientTestSuite))
}

func (suite *BinanceClientTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
}

func (suite *BinanceClientTestSuite) TestNewBinanceClient() {
	client, err := NewBinanceClient()
	suite.NoError(err)
	suite.NotNil(client)

	binanceClient, ok := client.(*BinanceClient)
	suite.True(ok)
	suite.NotNil(binanceClient.apiClient)
}

func (suite *BinanceClientTestSuite) TestCandles() {
	klines := []*binance.Kline{
		{
			OpenTime:  1704067200000,
			Open:      "42000.50",
			High:      "42500.00",
			Low:       "41800.00",
			Close:     "42300.00",
			Volume:    "1000.5",
			CloseTime: 1704067499999,
		},
		{
			OpenTime:  1704067500000,
			Open:      "42300.00",
			High:      "42400.00",
			Low:       "42200.00",
			Close:     "42350.00",
			Volume:    "500.25",
			CloseTime: 1704067799999,
		},
	}

	mockAPI := &mockBinanceAPIClient{klines: klines}
	client := NewBinanceClientWithAPI(mockAPI)

	candles, err := client.Candles(context.Background(), Request{Symbol: "BTCUSDT", StartDate: suite.start, EndDate: suite.end})
	suite.NoError(err)
	suite.Len(candles, 2)
	suite.Equal(42300.0, candles[0].Close)
	suite.Equal(500.25, candles[1].Volume)
	suite.Equal(time.UnixMilli(1704067200000).UTC(), candles[0].Time)
	suite.Equal("BTCUSDT", candles[0].Symbol)

	service := mockAPI.services[0]
	suite.Equal("BTCUSDT", service.symbol)
	suite.Equal("5m", service.interval)
	suite.Equal(suite.start.UnixMilli(), service.start)
	suite.Equal(suite.end.UnixMilli(), service.end)
}

func (suite *BinanceClientTestSuite) TestDaysSelectInterval() {
	mockAPI := &mockBinanceAPIClient{klines: []*binance.Kline{}}
	client := NewBinanceClientWithAPI(mockAPI)
	client.now = func() time.Time { return suite.end }

	_, err := client.Candles(context.Background(), Request{Symbol: "BTCUSDT", Days: 90})
	suite.NoError(err)

	service := mockAPI.services[0]
	suite.Equal("1d", service.interval)
	suite.Equal(suite.end.Add(-90*24*time.Hour).UnixMilli(), service.start)
}

func (suite *BinanceClientTestSuite) TestPagination() {
	second := []*binance.Kline{
		{OpenTime: 1704217200000, Open: "1", High: "1", Low: "1", Close: "1", Volume: "1", CloseTime: 1704217499999},
	}

	mockAPI := &mockBinanceAPIClient{
		klinesPerCall: [][]*binance.Kline{fullPage(suite.start.UnixMilli()), second},
	}

	var progress []float64

	client := NewBinanceClientWithAPI(mockAPI)
	client.OnProgress = func(current float64, total float64, _ string) {
		progress = append(progress, current)
		suite.Less(total, float64(1e12))
	}

	candles, err := client.Candles(context.Background(), Request{Symbol: "BTCUSDT", StartDate: suite.start, EndDate: suite.end})
	suite.NoError(err)
	suite.Len(candles, 501)
	suite.Equal(2, mockAPI.callCount)

	lastOfFirstPage := fullPage(suite.start.UnixMilli())[binancePageSize-1]
	suite.Equal(lastOfFirstPage.CloseTime+1, mockAPI.services[1].start)
	suite.Equal(0.0, progress[0])
}

func (suite *BinanceClientTestSuite) TestAPIErrorOnSecondPage() {
	mockAPI := &mockBinanceAPIClient{
		klinesPerCall: [][]*binance.Kline{fullPage(suite.start.UnixMilli()), nil},
		errorsPerCall: []error{nil, errors.New("connection timeout")},
	}

	_, err := NewBinanceClientWithAPI(mockAPI).Candles(context.Background(), Request{Symbol: "BTCUSDT", StartDate: suite.start, EndDate: suite.end})
	suite.Error(err)
	suite.True(argoerrors.HasCode(err, argoerrors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "failed to fetch klines from Binance")
	suite.Contains(err.Error(), "connection timeout")
}

func (suite *BinanceClientTestSuite) TestInvalidNumber() {
	mockAPI := &mockBinanceAPIClient{klines: []*binance.Kline{
		{OpenTime: 1, Open: "abc", High: "1", Low: "1", Close: "1", Volume: "1", CloseTime: 2},
	}}

	_, err := NewBinanceClientWithAPI(mockAPI).Candles(context.Background(), Request{Symbol: "BTCUSDT", StartDate: suite.start, EndDate: suite.end})
	suite.True(argoerrors.HasCode(err, argoerrors.ErrCodeMarketDataParseFailed))
}

func (suite *BinanceClientTestSuite) TestInvalidTimespan() {
	client := NewBinanceClientWithAPI(&mockBinanceAPIClient{})

	_, err := client.Candles(context.Background(), Request{Symbol: "BTCUSDT", Timespan: "7m", StartDate: suite.start, EndDate: suite.end})
	suite.True(argoerrors.HasCode(err, argoerrors.ErrCodeInvalidTimespan))
}

func (suite *BinanceClientTestSuite) TestMaxDaysWithoutStartDate() {
	client := NewBinanceClientWithAPI(&mockBinanceAPIClient{})

	_, err := client.Candles(context.Background(), Request{Symbol: "BTCUSDT", MaxHistory: true})
	suite.True(argoerrors.HasCode(err, argoerrors.ErrCodeInvalidParameter))
}
