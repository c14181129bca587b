package types

import "time"

// Candle is one OHLCV bucket as delivered by a market data source.
// Only Close and Volume are consumed by the feature pipeline.
type Candle struct {
	Id     string    `csv:"id"`
	Symbol string    `csv:"symbol"`
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// Closes returns the close price series of the candles in order.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	return closes
}

// Volumes returns the volume series of the candles in order.
func Volumes(candles []Candle) []float64 {
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		volumes[i] = c.Volume
	}

	return volumes
}

// HasVolume reports whether at least one candle carries a non-zero volume.
// Sources such as the CoinGecko OHLC endpoint never report volume.
func HasVolume(candles []Candle) bool {
	for _, c := range candles {
		if c.Volume != 0 {
			return true
		}
	}

	return false
}
