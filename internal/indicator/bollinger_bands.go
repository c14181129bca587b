package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// bandEpsilon keeps the position finite when the band has zero width.
const bandEpsilon = 1e-8

// BollingerPosition locates the price inside its Bollinger Band:
// (upper - price) / (upper - lower + 1e-8).
//
// The middle band is a centered moving average while the deviation is
// trailing-only. Weights fitted on this feature depend on that pairing, so
// both halves must change together.
type BollingerPosition struct {
	window int     // Number of periods for the moving average
	numStd float64 // Number of standard deviations
}

// NewBollingerPosition creates a new indicator with a 20 period window and 2 standard deviations.
func NewBollingerPosition() Indicator {
	return &BollingerPosition{
		window: 20,
		numStd: 2.0,
	}
}

// Name returns the name of the indicator.
func (bb *BollingerPosition) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerPosition
}

// Config configures the indicator. Expected parameters: window (int), numStd (float64).
func (bb *BollingerPosition) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: window (int), numStd (float64)")
	}

	window, err := positiveInt(params[0], "window")
	if err != nil {
		return err
	}

	numStd, ok := params[1].(float64)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for numStd parameter, expected float64")
	}

	if numStd <= 0 {
		return errors.Newf(errors.ErrCodeInvalidMultiplier, "numStd must be a positive number, got %f", numStd)
	}

	bb.window = window
	bb.numStd = numStd

	return nil
}

// Compute implements Indicator.
func (bb *BollingerPosition) Compute(input Input) ([]float64, error) {
	return CalculateBollingerPosition(input.Closes, bb.window, bb.numStd), nil
}

// CalculateBollingerPosition returns the band position for every index.
func CalculateBollingerPosition(prices []float64, window int, numStd float64) []float64 {
	position := make([]float64, len(prices))
	if window <= 0 {
		return position
	}

	sma := centeredMovingAverage(prices, window)

	for i, price := range prices {
		std := popStdDev(prices[max(0, i-window) : i+1])
		upper := sma[i] + std*numStd
		lower := sma[i] - std*numStd
		position[i] = (upper - price) / (upper - lower + bandEpsilon)
	}

	return position
}

// centeredMovingAverage is a zero-padded "same" convolution with a uniform
// kernel: index i averages prices[i-window/2 .. i+window-1-window/2], treating
// out-of-range samples as zero and always dividing by window.
func centeredMovingAverage(prices []float64, window int) []float64 {
	sma := make([]float64, len(prices))
	left := window / 2
	right := window - 1 - left

	for i := range prices {
		sum := 0.0
		for j := max(0, i-left); j <= min(len(prices)-1, i+right); j++ {
			sum += prices[j]
		}

		sma[i] = sum / float64(window)
	}

	return sma
}
