package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) < 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects at least 1 parameter: period (int)")
	}

	period, err := positiveInt(params[0], "period")
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Compute implements Indicator.
func (r *RSI) Compute(input Input) ([]float64, error) {
	return CalculateRSI(input.Closes, r.period), nil
}

// CalculateRSI computes a simple-average RSI for every index i >= period using
// the period price changes ending at i. Earlier indices are zero.
//
// Gains and losses are averaged over their own counts, not over the period,
// and a window without losses is 100.
func CalculateRSI(prices []float64, period int) []float64 {
	rsi := make([]float64, len(prices))
	if period <= 0 {
		return rsi
	}

	gains := make([]float64, 0, period)
	losses := make([]float64, 0, period)

	for i := period; i < len(prices); i++ {
		gains = gains[:0]
		losses = losses[:0]

		for j := i - period + 1; j <= i; j++ {
			change := prices[j] - prices[j-1]
			if change > 0 {
				gains = append(gains, change)
			} else if change < 0 {
				losses = append(losses, -change)
			}
		}

		avgGain := mean(gains)
		avgLoss := mean(losses)

		if avgLoss == 0 {
			rsi[i] = 100 // Perfect uptrend

			continue
		}

		rs := avgGain / avgLoss
		rsi[i] = 100 - (100 / (1 + rs))
	}

	return rsi
}
