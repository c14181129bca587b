package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Returns is the single-step return series gated by a minimum history window.
type Returns struct {
	window int
}

// NewReturns creates a Returns indicator with a window of 1.
func NewReturns() Indicator {
	return &Returns{window: 1}
}

// Name returns the name of the indicator.
func (r *Returns) Name() types.IndicatorType {
	return types.IndicatorTypeReturns
}

// Config configures the indicator. Expected parameters: window (int).
func (r *Returns) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: window (int)")
	}

	window, err := positiveInt(params[0], "window")
	if err != nil {
		return err
	}

	r.window = window

	return nil
}

// Compute implements Indicator.
func (r *Returns) Compute(input Input) ([]float64, error) {
	return CalculateReturns(input.Closes, r.window), nil
}

// Volatility is the rolling standard deviation of single-step returns.
type Volatility struct {
	window int
}

// NewVolatility creates a Volatility indicator with a window of 30.
func NewVolatility() Indicator {
	return &Volatility{window: 30}
}

// Name returns the name of the indicator.
func (v *Volatility) Name() types.IndicatorType {
	return types.IndicatorTypeVolatility
}

// Config configures the indicator. Expected parameters: window (int).
func (v *Volatility) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: window (int)")
	}

	window, err := positiveInt(params[0], "window")
	if err != nil {
		return err
	}

	v.window = window

	return nil
}

// Compute implements Indicator.
func (v *Volatility) Compute(input Input) ([]float64, error) {
	return CalculateVolatility(input.Closes, v.window), nil
}
