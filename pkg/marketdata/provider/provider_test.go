package provider

import (
	"testing"

	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ProviderFactoryTestSuite struct {
	suite.Suite
}

func TestProviderFactorySuite(t *testing.T) {
	suite.Run(t, new(ProviderFactoryTestSuite))
}

func (suite *ProviderFactoryTestSuite) TestCoinGecko() {
	p, err := NewMarketDataProvider(ProviderCoinGecko, nil, nil)
	suite.NoError(err)

	client, ok := p.(*CoinGeckoClient)
	suite.True(ok)
	suite.Equal(DefaultCoinGeckoBaseURL, client.config.BaseURL)
	suite.Equal(3, client.config.Retry.MaxRetries)
}

func (suite *ProviderFactoryTestSuite) TestBinance() {
	p, err := NewMarketDataProvider(ProviderBinance, nil, nil)
	suite.NoError(err)
	suite.IsType(&BinanceClient{}, p)
}

func (suite *ProviderFactoryTestSuite) TestPolygon() {
	p, err := NewMarketDataProvider(ProviderPolygon, "key", nil)
	suite.NoError(err)
	suite.IsType(&PolygonClient{}, p)

	_, err = NewMarketDataProvider(ProviderPolygon, nil, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ProviderFactoryTestSuite) TestUnknown() {
	_, err := NewMarketDataProvider("kraken", nil, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}

func (suite *ProviderFactoryTestSuite) TestCandleTimespan() {
	suite.Equal(TimespanFiveMinutes, Request{Days: 1}.CandleTimespan())
	suite.Equal(TimespanOneDay, Request{Days: 30}.CandleTimespan())
	suite.Equal(TimespanOneHour, Request{Days: 30, Timespan: TimespanOneHour}.CandleTimespan())
}

func (suite *ProviderFactoryTestSuite) TestTimespan() {
	suite.Equal(5, TimespanFiveMinutes.Multiplier())
	suite.Equal(4, TimespanFourHours.Multiplier())
	suite.Equal(1, TimespanOneDay.Multiplier())
	suite.True(TimespanOneWeek.IsValid())
	suite.False(Timespan("2d").IsValid())
}
