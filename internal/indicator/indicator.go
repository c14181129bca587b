package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Input is the series an indicator is computed over. Volumes is only present
// when the source reported them.
type Input struct {
	Closes  []float64
	Volumes optional.Option[[]float64]
}

// NewInput builds an Input from close prices and an optional volume series.
// A nil volume slice means the source carried no volume.
func NewInput(closes []float64, volumes []float64) Input {
	if volumes == nil {
		return Input{Closes: closes, Volumes: optional.None[[]float64]()}
	}

	return Input{Closes: closes, Volumes: optional.Some(volumes)}
}

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config sets the indicator parameters, e.g. a window or a period.
	Config(params ...any) error
	// Compute returns one value per input index.
	Compute(input Input) ([]float64, error)
}

// positiveInt validates a Config parameter expected to be a positive int.
func positiveInt(value any, name string) (int, error) {
	v, ok := value.(int)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if v <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, v)
	}

	return v, nil
}
