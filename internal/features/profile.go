package features

import (
	"math"

	"github.com/rxtech-lab/argo-features/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Profile holds the per-column mean and standard deviation fitted on a
// training matrix. The same value must be reused at inference time.
type Profile struct {
	mean []float64
	std  []float64
}

// Fit computes the population mean and standard deviation of every column.
// A zero deviation is stored as 1 so a constant column transforms to 0.
func Fit(matrix Matrix) (Profile, error) {
	if matrix.Len() == 0 {
		return Profile{}, errors.New(errors.ErrCodeEmptySeries, "cannot fit a profile on an empty matrix")
	}

	width := matrix.Width()
	mean := make([]float64, width)
	std := make([]float64, width)

	for j := 0; j < width; j++ {
		column := matrix.Column(j)
		m, variance := stat.PopMeanVariance(column, nil)
		mean[j] = m

		std[j] = math.Sqrt(variance)
		if std[j] == 0 {
			std[j] = 1
		}
	}

	return Profile{mean: mean, std: std}, nil
}

// NewProfile rebuilds a profile from stored parameters.
func NewProfile(mean, std []float64) (Profile, error) {
	if len(mean) != len(std) {
		return Profile{}, errors.Newf(errors.ErrCodeInvalidLength, "mean has %d values but std has %d", len(mean), len(std))
	}

	for j, s := range std {
		if s == 0 {
			return Profile{}, errors.Newf(errors.ErrCodeInvalidParameter, "std of column %d is zero", j)
		}
	}

	return Profile{mean: append([]float64(nil), mean...), std: append([]float64(nil), std...)}, nil
}

// Width returns the number of columns the profile was fitted on.
func (p Profile) Width() int {
	return len(p.mean)
}

// Mean returns a copy of the column means.
func (p Profile) Mean() []float64 {
	return append([]float64(nil), p.mean...)
}

// Std returns a copy of the column standard deviations.
func (p Profile) Std() []float64 {
	return append([]float64(nil), p.std...)
}

// TransformRow z-scores one row.
func (p Profile) TransformRow(row []float64) ([]float64, error) {
	if p.Width() == 0 {
		return nil, errors.New(errors.ErrCodeProfileNotFitted, "profile has not been fitted")
	}

	if len(row) != p.Width() {
		return nil, errors.Newf(errors.ErrCodeInvalidLength, "row has %d values, profile expects %d", len(row), p.Width())
	}

	out := make([]float64, len(row))
	for j, x := range row {
		out[j] = (x - p.mean[j]) / p.std[j]
	}

	return out, nil
}

// Transform z-scores every row of the matrix.
func (p Profile) Transform(matrix Matrix) (Matrix, error) {
	rows := make([][]float64, matrix.Len())

	for i, row := range matrix.Rows {
		scaled, err := p.TransformRow(row)
		if err != nil {
			return Matrix{}, errors.Wrapf(errors.GetCode(err), err, "row %d", i)
		}

		rows[i] = scaled
	}

	return Matrix{Columns: matrix.Columns, Rows: rows}, nil
}
