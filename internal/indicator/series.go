package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-features/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// CalculateReturns returns single-step returns (p[i]-p[i-1])/p[i-1], left padded
// with a zero so the output is as long as the input.
//
// If the series holds fewer than window+1 prices the result is all zeros. The
// window only decides that short-circuit; it never changes the step size.
func CalculateReturns(prices []float64, window int) []float64 {
	returns := make([]float64, len(prices))
	if len(prices) < window+1 {
		return returns
	}

	for i := 1; i < len(prices); i++ {
		returns[i] = (prices[i] - prices[i-1]) / prices[i-1]
	}

	return returns
}

// CalculateVolatility returns the rolling population standard deviation of
// single-step returns. Index i >= window uses returns[i-window:i]; earlier
// indices are zero.
func CalculateVolatility(prices []float64, window int) []float64 {
	volatility := make([]float64, len(prices))
	if window <= 0 {
		return volatility
	}

	returns := CalculateReturns(prices, 1)
	for i := window; i < len(prices); i++ {
		volatility[i] = popStdDev(returns[i-window : i])
	}

	return volatility
}

// CalculateEMA computes the exponential moving average with alpha = 2/(span+1),
// seeded with the first value of the series.
func CalculateEMA(series []float64, span int) ([]float64, error) {
	if len(series) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySeries, "cannot calculate EMA of an empty series")
	}

	if span <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "span must be a positive integer, got %d", span)
	}

	alpha := 2.0 / float64(span+1)
	ema := make([]float64, len(series))
	ema[0] = series[0]

	for i := 1; i < len(series); i++ {
		ema[i] = alpha*series[i] + (1-alpha)*ema[i-1]
	}

	return ema, nil
}

func popStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return math.Sqrt(stat.PopVariance(values, nil))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return stat.Mean(values, nil)
}
