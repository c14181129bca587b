package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	span int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		span: 20, // Default span
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: span (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: span (int)")
	}

	span, err := positiveInt(params[0], "span")
	if err != nil {
		return err
	}

	e.span = span

	return nil
}

// Compute returns the EMA of the close series.
func (e *EMA) Compute(input Input) ([]float64, error) {
	ema, err := CalculateEMA(input.Closes, e.span)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate EMA", err)
	}

	return ema, nil
}
