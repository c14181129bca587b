package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
}

func TestSeriesSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func (suite *SeriesTestSuite) TestReturnsShortSeriesIsZero() {
	for _, window := range []int{1, 5, 15, 30, 60} {
		prices := make([]float64, window)
		for i := range prices {
			prices[i] = 100 + float64(i)
		}

		returns := CalculateReturns(prices, window)
		suite.Len(returns, len(prices))

		for _, r := range returns {
			suite.Zero(r)
		}
	}
}

func (suite *SeriesTestSuite) TestReturnsSingleStep() {
	returns := CalculateReturns([]float64{100, 110, 99}, 1)
	suite.Len(returns, 3)
	suite.Zero(returns[0])
	suite.InDelta(0.1, returns[1], 1e-12)
	suite.InDelta(-0.1, returns[2], 1e-12)

	// the window never changes the step size
	suite.Equal(returns, CalculateReturns([]float64{100, 110, 99}, 2))
}

func (suite *SeriesTestSuite) TestReturnsEmpty() {
	suite.Empty(CalculateReturns(nil, 1))
	suite.Empty(CalculateReturns([]float64{}, 5))
}

func (suite *SeriesTestSuite) TestVolatility() {
	volatility := CalculateVolatility([]float64{100, 110, 99, 99}, 2)
	suite.Len(volatility, 4)
	suite.Zero(volatility[0])
	suite.Zero(volatility[1])
	// returns are [0, 0.1, -0.1, 0]
	suite.InDelta(0.05, volatility[2], 1e-12)
	suite.InDelta(0.1, volatility[3], 1e-12)
}

func (suite *SeriesTestSuite) TestVolatilityWindowLongerThanSeries() {
	volatility := CalculateVolatility([]float64{1, 2, 3}, 30)
	suite.Equal([]float64{0, 0, 0}, volatility)
}

func (suite *SeriesTestSuite) TestEMAConstantSeries() {
	series := make([]float64, 50)
	for i := range series {
		series[i] = 42.5
	}

	for _, span := range []int{5, 12, 26, 60} {
		ema, err := CalculateEMA(series, span)
		suite.NoError(err)

		for _, v := range ema {
			suite.InDelta(42.5, v, 1e-9)
		}
	}
}

func (suite *SeriesTestSuite) TestEMARecurrence() {
	ema, err := CalculateEMA([]float64{1, 2, 4}, 3)
	suite.NoError(err)
	// alpha = 0.5
	suite.Equal([]float64{1, 1.5, 2.75}, ema)

	identity, err := CalculateEMA([]float64{3, 9, 1}, 1)
	suite.NoError(err)
	suite.Equal([]float64{3, 9, 1}, identity)
}

func (suite *SeriesTestSuite) TestEMAEmptySeries() {
	_, err := CalculateEMA(nil, 10)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySeries))
}

func (suite *SeriesTestSuite) TestEMAInvalidSpan() {
	_, err := CalculateEMA([]float64{1}, 0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
