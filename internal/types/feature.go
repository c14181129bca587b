package types

// FeatureVariant selects one of the fixed feature layouts.
type FeatureVariant string

const (
	// FeatureVariantMinimal is the 6 column layout used by the linear model.
	FeatureVariantMinimal FeatureVariant = "minimal"
	// FeatureVariantEnhanced is the 11 column layout used by the neural network.
	FeatureVariantEnhanced FeatureVariant = "enhanced"
)

// IsValid reports whether v names a known layout.
func (v FeatureVariant) IsValid() bool {
	return v == FeatureVariantMinimal || v == FeatureVariantEnhanced
}
