package artifact

import (
	"math"

	"github.com/rxtech-lab/argo-features/internal/features"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// LinearWeights is a logistic regression exported by the trainer together
// with the scaler it was fitted on.
type LinearWeights struct {
	Mean   []float64 `json:"mean"`
	Std    []float64 `json:"std"`
	Coeffs []float64 `json:"coeffs"`
	Bias   float64   `json:"bias"`
}

// Width returns the number of features the model expects.
func (w LinearWeights) Width() int {
	return len(w.Coeffs)
}

// Validate checks that mean, std and coeffs have the same non zero length
// and that no std is zero.
func (w LinearWeights) Validate() error {
	if len(w.Coeffs) == 0 {
		return errors.New(errors.ErrCodeArtifactInvalid, "weights have no coefficients")
	}

	if len(w.Mean) != len(w.Coeffs) || len(w.Std) != len(w.Coeffs) {
		return errors.Newf(errors.ErrCodeArtifactInvalid, "weights have %d means, %d stds and %d coeffs",
			len(w.Mean), len(w.Std), len(w.Coeffs))
	}

	for i, s := range w.Std {
		if s == 0 {
			return errors.Newf(errors.ErrCodeArtifactInvalid, "std of feature %d is zero", i)
		}
	}

	return nil
}

// Profile returns the normalization the weights were trained with.
func (w LinearWeights) Profile() (features.Profile, error) {
	profile, err := features.NewProfile(w.Mean, w.Std)
	if err != nil {
		return features.Profile{}, errors.Wrap(errors.ErrCodeArtifactInvalid, "invalid weights scaler", err)
	}

	return profile, nil
}

// Logit returns coeffs·((row-mean)/std) + bias.
func (w LinearWeights) Logit(row []float64) (float64, error) {
	profile, err := w.Profile()
	if err != nil {
		return 0, err
	}

	if profile.Width() != len(w.Coeffs) {
		return 0, errors.Newf(errors.ErrCodeArtifactInvalid, "weights scale %d features but have %d coeffs", profile.Width(), len(w.Coeffs))
	}

	scaled, err := profile.TransformRow(row)
	if err != nil {
		return 0, err
	}

	z := w.Bias
	for i, x := range scaled {
		z += w.Coeffs[i] * x
	}

	return z, nil
}

// Probability returns the modelled probability that the price rises over
// the label horizon.
func (w LinearWeights) Probability(row []float64) (float64, error) {
	z, err := w.Logit(row)
	if err != nil {
		return 0, err
	}

	return 1 / (1 + math.Exp(-z)), nil
}

// Write stores the weights at path.
func (w LinearWeights) Write(path string) error {
	return writeJSON(path, w)
}

// LoadLinearWeights reads and validates the weights at path.
func LoadLinearWeights(path string) (LinearWeights, error) {
	var weights LinearWeights
	if err := readJSON(path, &weights); err != nil {
		return LinearWeights{}, err
	}

	if err := weights.Validate(); err != nil {
		return LinearWeights{}, err
	}

	return weights, nil
}
