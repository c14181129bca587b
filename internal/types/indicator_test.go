package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func (suite *IndicatorTestSuite) TestIndicatorTypeConstants() {
	suite.Equal(IndicatorType("returns"), IndicatorTypeReturns)
	suite.Equal(IndicatorType("volatility"), IndicatorTypeVolatility)
	suite.Equal(IndicatorType("ema"), IndicatorTypeEMA)
	suite.Equal(IndicatorType("rsi"), IndicatorTypeRSI)
	suite.Equal(IndicatorType("macd"), IndicatorTypeMACD)
	suite.Equal(IndicatorType("bollinger_position"), IndicatorTypeBollingerPosition)
	suite.Equal(IndicatorType("volume_trend"), IndicatorTypeVolumeTrend)
}

func (suite *IndicatorTestSuite) TestFeatureVariant() {
	suite.True(FeatureVariantMinimal.IsValid())
	suite.True(FeatureVariantEnhanced.IsValid())
	suite.False(FeatureVariant("huge").IsValid())
	suite.False(FeatureVariant("").IsValid())
}
