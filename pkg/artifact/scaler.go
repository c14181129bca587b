package artifact

import (
	"github.com/rxtech-lab/argo-features/internal/features"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// ScalerParams is the serialized normalization profile.
// FeatureCount is only written for the enhanced variant.
type ScalerParams struct {
	Mean         []float64 `json:"mean"`
	Std          []float64 `json:"std"`
	FeatureCount int       `json:"feature_count,omitempty"`
}

// NewScalerParams converts a fitted profile.
func NewScalerParams(profile features.Profile, variant types.FeatureVariant) ScalerParams {
	params := ScalerParams{
		Mean: profile.Mean(),
		Std:  profile.Std(),
	}

	if variant == types.FeatureVariantEnhanced {
		params.FeatureCount = profile.Width()
	}

	return params
}

// Validate checks that mean and std line up with each other and with
// FeatureCount when present.
func (s ScalerParams) Validate() error {
	if len(s.Mean) == 0 {
		return errors.New(errors.ErrCodeArtifactInvalid, "scaler params have no features")
	}

	if len(s.Mean) != len(s.Std) {
		return errors.Newf(errors.ErrCodeArtifactInvalid, "scaler params have %d means but %d stds", len(s.Mean), len(s.Std))
	}

	if s.FeatureCount != 0 && s.FeatureCount != len(s.Mean) {
		return errors.Newf(errors.ErrCodeArtifactInvalid, "feature_count is %d but %d means are present", s.FeatureCount, len(s.Mean))
	}

	return nil
}

// Profile rebuilds the normalization profile.
func (s ScalerParams) Profile() (features.Profile, error) {
	if err := s.Validate(); err != nil {
		return features.Profile{}, err
	}

	profile, err := features.NewProfile(s.Mean, s.Std)
	if err != nil {
		return features.Profile{}, errors.Wrap(errors.ErrCodeArtifactInvalid, "invalid scaler params", err)
	}

	return profile, nil
}

// Write stores the params at path, overwriting any previous run.
func (s ScalerParams) Write(path string) error {
	return writeJSON(path, s)
}

// LoadScalerParams reads and validates the params at path.
func LoadScalerParams(path string) (ScalerParams, error) {
	var params ScalerParams
	if err := readJSON(path, &params); err != nil {
		return ScalerParams{}, err
	}

	if err := params.Validate(); err != nil {
		return ScalerParams{}, err
	}

	return params, nil
}
