package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-features/internal/types"
)

// DataGenerator produces reproducible candle series for tests and the mock
// market server.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a generator seeded with seed.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{rng: rand.New(rand.NewSource(seed))}
}

// GeneratorConfig describes the series to generate.
type GeneratorConfig struct {
	Symbol    string
	StartTime time.Time
	Interval  time.Duration
	Count     int
	// StartPrice is the first open.
	StartPrice float64
	// Sigma is the per-bar standard deviation of log returns.
	Sigma float64
	// Drift is the per-bar mean log return.
	Drift float64
	// BaseVolume is the mean traded volume per bar. Zero yields zero volumes,
	// the way the CoinGecko OHLC endpoint reports them.
	BaseVolume float64
	// GapEvery replaces every n-th close with NaN. Zero disables gaps.
	GapEvery int
}

// DefaultConfig returns a five minute bitcoin series of 2000 bars.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:     "bitcoin",
		StartTime:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:   5 * time.Minute,
		Count:      2000,
		StartPrice: 42000,
		Sigma:      0.002,
		BaseVolume: 10000,
	}
}

// Generate walks a log-normal price path and derives the other OHLCV fields
// from it. Bars are strictly increasing in time.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.Candle {
	candles := make([]types.Candle, 0, config.Count)
	price := config.StartPrice

	for i := 0; i < config.Count; i++ {
		open := price
		price = open * math.Exp(config.Drift+config.Sigma*g.rng.NormFloat64())

		wick := config.Sigma * open * g.rng.Float64()
		candle := types.Candle{
			Symbol: config.Symbol,
			Time:   config.StartTime.Add(time.Duration(i) * config.Interval),
			Open:   round(open, 4),
			High:   round(math.Max(open, price)+wick, 4),
			Low:    round(math.Max(math.Min(open, price)-wick, open*0.5), 4),
			Close:  round(price, 4),
			Volume: round(config.BaseVolume*g.rng.ExpFloat64(), 2),
		}

		if config.GapEvery > 0 && (i+1)%config.GapEvery == 0 {
			candle.Close = math.NaN()
		}

		candles = append(candles, candle)
	}

	return candles
}

// GenerateCandles returns count default candles for symbol using seed 42.
func GenerateCandles(symbol string, count int) []types.Candle {
	config := DefaultConfig()
	config.Symbol = symbol
	config.Count = count

	return NewDataGenerator(42).Generate(config)
}

func round(value float64, places int) float64 {
	scale := math.Pow10(places)

	return math.Round(value*scale) / scale
}
