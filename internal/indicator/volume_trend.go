package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// VolumeTrend measures volume relative to its EMA: (v - ema) / (ema + 1e-8).
// Without a volume series of matching length the result is all zeros.
type VolumeTrend struct {
	span int
}

// NewVolumeTrend creates a VolumeTrend indicator with an EMA span of 20.
func NewVolumeTrend() Indicator {
	return &VolumeTrend{span: 20}
}

// Name returns the name of the indicator.
func (v *VolumeTrend) Name() types.IndicatorType {
	return types.IndicatorTypeVolumeTrend
}

// Config configures the indicator. Expected parameters: span (int).
func (v *VolumeTrend) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: span (int)")
	}

	span, err := positiveInt(params[0], "span")
	if err != nil {
		return err
	}

	v.span = span

	return nil
}

// Compute implements Indicator.
func (v *VolumeTrend) Compute(input Input) ([]float64, error) {
	volumes, err := input.Volumes.Take()
	if err != nil || len(volumes) != len(input.Closes) || len(volumes) == 0 {
		return make([]float64, len(input.Closes)), nil
	}

	return CalculateVolumeTrend(volumes, v.span)
}

// CalculateVolumeTrend returns (volume - EMA(volume, span)) / (EMA + 1e-8).
func CalculateVolumeTrend(volumes []float64, span int) ([]float64, error) {
	ema, err := CalculateEMA(volumes, span)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate volume EMA", err)
	}

	trend := make([]float64, len(volumes))
	for i := range volumes {
		trend[i] = (volumes[i] - ema[i]) / (ema[i] + bandEpsilon)
	}

	return trend, nil
}
