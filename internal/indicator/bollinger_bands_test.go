package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BollingerPositionTestSuite struct {
	suite.Suite
}

func TestBollingerPositionSuite(t *testing.T) {
	suite.Run(t, new(BollingerPositionTestSuite))
}

func (suite *BollingerPositionTestSuite) TestDefaults() {
	bb := NewBollingerPosition().(*BollingerPosition)
	suite.Equal(types.IndicatorTypeBollingerPosition, bb.Name())
	suite.Equal(20, bb.window)
	suite.Equal(2.0, bb.numStd)
}

func (suite *BollingerPositionTestSuite) TestConfig() {
	bb := NewBollingerPosition()
	suite.NoError(bb.Config(10, 1.5))
	suite.Equal(10, bb.(*BollingerPosition).window)
	suite.Equal(1.5, bb.(*BollingerPosition).numStd)

	suite.True(errors.HasCode(bb.Config(10), errors.ErrCodeMissingParameter))
	suite.True(errors.HasCode(bb.Config(10, 2), errors.ErrCodeInvalidType))
	suite.True(errors.HasCode(bb.Config(10, -2.0), errors.ErrCodeInvalidMultiplier))
	suite.True(errors.HasCode(bb.Config(0, 2.0), errors.ErrCodeInvalidPeriod))
}

func (suite *BollingerPositionTestSuite) TestCenteredMovingAverage() {
	prices := []float64{1, 2, 3, 4, 5}

	// even window: index i covers [i-1, i]
	suite.Equal([]float64{0.5, 1.5, 2.5, 3.5, 4.5}, centeredMovingAverage(prices, 2))

	// odd window: index i covers [i-1, i+1], zero padded at both ends
	sma := centeredMovingAverage(prices, 3)
	suite.InDelta(1.0, sma[0], 1e-12)
	suite.InDelta(2.0, sma[1], 1e-12)
	suite.InDelta(3.0, sma[2], 1e-12)
	suite.InDelta(4.0, sma[3], 1e-12)
	suite.InDelta(3.0, sma[4], 1e-12)
}

func (suite *BollingerPositionTestSuite) TestCenteredWindowSpan() {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = float64(i)
	}

	// window 20 covers [i-10, i+9]
	sma := centeredMovingAverage(prices, 20)
	expected := 0.0
	for j := 5; j <= 24; j++ {
		expected += float64(j)
	}

	suite.InDelta(expected/20, sma[15], 1e-12)
}

func (suite *BollingerPositionTestSuite) TestKnownPosition() {
	prices := []float64{1, 2, 3}
	position := CalculateBollingerPosition(prices, 2, 1)

	// index 1: sma 1.5, trailing std over [1, 2] is 0.5, price sits on the upper band
	suite.InDelta(0, position[1], 1e-7)

	// index 2: sma 2.5, trailing std over [1, 2, 3]
	std := math.Sqrt(2.0 / 3.0)
	upper := 2.5 + std
	lower := 2.5 - std
	suite.InDelta((upper-3)/(upper-lower+1e-8), position[2], 1e-9)
}

func (suite *BollingerPositionTestSuite) TestFlatSeriesInterior() {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 10
	}

	position := CalculateBollingerPosition(prices, 20, 2)
	for i := 10; i < 30; i++ {
		suite.InDelta(0, position[i], 1e-6, "index %d", i)
	}
}

func (suite *BollingerPositionTestSuite) TestFiniteOnRealisticSeries() {
	prices := make([]float64, 200)
	for i := range prices {
		prices[i] = 100 + 5*math.Sin(float64(i)/7) + float64(i)*0.1
	}

	position, err := NewBollingerPosition().Compute(NewInput(prices, nil))
	suite.NoError(err)
	suite.Len(position, 200)

	for i := 1; i < len(position); i++ {
		suite.False(math.IsNaN(position[i]))
		suite.False(math.IsInf(position[i], 0))
	}
}

func (suite *BollingerPositionTestSuite) TestShorterThanWindow() {
	position := CalculateBollingerPosition([]float64{100, 101, 102}, 20, 2)
	suite.Len(position, 3)
}
