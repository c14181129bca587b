package features

import (
	"context"

	"github.com/rxtech-lab/argo-features/internal/indicator"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Assembler turns close prices (and optional volumes) into a feature Matrix
// following a column layout.
type Assembler struct {
	layout   []Column
	registry indicator.IndicatorRegistry
	// Parallel computes each column in its own goroutine.
	Parallel bool
}

// NewAssembler creates an assembler backed by the built-in indicators.
func NewAssembler(layout []Column) *Assembler {
	return NewAssemblerWithRegistry(layout, indicator.NewDefaultRegistry())
}

// NewAssemblerWithRegistry creates an assembler that resolves indicators from registry.
func NewAssemblerWithRegistry(layout []Column, registry indicator.IndicatorRegistry) *Assembler {
	return &Assembler{
		layout:   layout,
		registry: registry,
	}
}

// Columns returns the column names produced by the assembler.
func (a *Assembler) Columns() []string {
	return ColumnNames(a.layout)
}

// Assemble builds one row per close price. volumes may be nil.
func (a *Assembler) Assemble(ctx context.Context, closes []float64, volumes []float64) (Matrix, error) {
	if len(closes) == 0 {
		return Matrix{}, errors.New(errors.ErrCodeEmptySeries, "cannot assemble features from an empty price series")
	}

	input := indicator.NewInput(closes, volumes)
	columns := make([][]float64, len(a.layout))

	if a.Parallel {
		group, ctx := errgroup.WithContext(ctx)

		for j, column := range a.layout {
			j, column := j, column
			group.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				values, err := a.computeColumn(column, input)
				if err != nil {
					return err
				}

				columns[j] = values

				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return Matrix{}, err
		}
	} else {
		for j, column := range a.layout {
			if err := ctx.Err(); err != nil {
				return Matrix{}, err
			}

			values, err := a.computeColumn(column, input)
			if err != nil {
				return Matrix{}, err
			}

			columns[j] = values
		}
	}

	return fromColumns(a.Columns(), columns, len(closes)), nil
}

func (a *Assembler) computeColumn(column Column, input indicator.Input) ([]float64, error) {
	ind, err := a.registry.NewIndicator(column.Indicator, column.Params...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFeatureAssembly, err, "column %s", column.Name)
	}

	values, err := ind.Compute(input)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFeatureAssembly, err, "column %s", column.Name)
	}

	if len(values) != len(input.Closes) {
		return nil, errors.Newf(errors.ErrCodeInvalidLength, "column %s has %d values, expected %d", column.Name, len(values), len(input.Closes))
	}

	switch column.Scale {
	case ScalePercent:
		for i := range values {
			values[i] /= 100
		}
	case ScalePrice:
		for i := range values {
			values[i] /= input.Closes[i]
		}
	case ScaleNone:
	}

	return values, nil
}
