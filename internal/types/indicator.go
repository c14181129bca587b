package types

type IndicatorType string

const (
	IndicatorTypeReturns           IndicatorType = "returns"
	IndicatorTypeVolatility        IndicatorType = "volatility"
	IndicatorTypeEMA               IndicatorType = "ema"
	IndicatorTypeRSI               IndicatorType = "rsi"
	IndicatorTypeMACD              IndicatorType = "macd"
	IndicatorTypeBollingerPosition IndicatorType = "bollinger_position"
	IndicatorTypeVolumeTrend       IndicatorType = "volume_trend"
)
