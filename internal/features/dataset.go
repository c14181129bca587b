package features

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"go.uber.org/zap"
)

// Dataset is an aligned feature matrix and label vector together with the
// profile fitted on the features.
type Dataset struct {
	Symbol    string
	Variant   types.FeatureVariant
	Features  Matrix
	Labels    []float64
	Profile   Profile
	Positives int
}

// PositiveShare returns the fraction of rows labelled 1.
func (d *Dataset) PositiveShare() float64 {
	if len(d.Labels) == 0 {
		return 0
	}

	return float64(d.Positives) / float64(len(d.Labels))
}

// BuilderConfig configures a dataset build.
type BuilderConfig struct {
	Variant types.FeatureVariant `validate:"required,oneof=minimal enhanced"`
	// Horizon is the label lookahead k.
	Horizon int `validate:"gte=1"`
	// MinSamples is the minimum number of valid rows. 0 uses the variant default.
	MinSamples int `validate:"gte=0"`
	// KeepUnlabeledTail keeps the last Horizon rows, labelled 0, in the dataset.
	KeepUnlabeledTail bool
	// Parallel computes feature columns concurrently.
	Parallel bool
	Layout   LayoutOptions
}

// DefaultMinSamples returns the minimum valid row count for a variant.
func DefaultMinSamples(variant types.FeatureVariant) int {
	if variant == types.FeatureVariantEnhanced {
		return 1000
	}

	return 50
}

// Builder runs assemble, label, filter and fit over a price history.
type Builder struct {
	config    BuilderConfig
	assembler *Assembler
	logger    *logger.Logger
}

// NewBuilder validates config and creates a Builder.
func NewBuilder(config BuilderConfig, log *logger.Logger) (*Builder, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid dataset config", err)
	}

	layout, err := NewLayout(config.Variant, config.Layout)
	if err != nil {
		return nil, err
	}

	if config.MinSamples == 0 {
		config.MinSamples = DefaultMinSamples(config.Variant)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	assembler := NewAssembler(layout)
	assembler.Parallel = config.Parallel

	return &Builder{
		config:    config,
		assembler: assembler,
		logger:    log,
	}, nil
}

// Columns returns the feature column names the builder produces.
func (b *Builder) Columns() []string {
	return b.assembler.Columns()
}

// Build builds a dataset from candles. Volumes are used only when the source
// reported any.
func (b *Builder) Build(ctx context.Context, candles []types.Candle) (*Dataset, error) {
	symbol := ""
	if len(candles) > 0 {
		symbol = candles[0].Symbol
	}

	var volumes []float64
	if types.HasVolume(candles) {
		volumes = types.Volumes(candles)
	}

	return b.BuildFromSeries(ctx, symbol, types.Closes(candles), volumes)
}

// BuildFromSeries builds a dataset from a close series and optional volumes.
func (b *Builder) BuildFromSeries(ctx context.Context, symbol string, closes []float64, volumes []float64) (*Dataset, error) {
	matrix, err := b.assembler.Assemble(ctx, closes, volumes)
	if err != nil {
		return nil, err
	}

	labels := Labels(closes, b.config.Horizon)
	mask := ValidityMask(matrix, labels)

	if !b.config.KeepUnlabeledTail {
		for i, labelled := range LabelMask(len(closes), b.config.Horizon) {
			mask[i] = mask[i] && labelled
		}
	}

	matrix, labels = Filter(matrix, labels, mask)

	positives := 0
	for _, label := range labels {
		if label == 1 {
			positives++
		}
	}

	b.logger.Info("Assembled feature matrix",
		zap.String("symbol", symbol),
		zap.String("variant", string(b.config.Variant)),
		zap.Int("input_points", len(closes)),
		zap.Int("valid_samples", matrix.Len()),
		zap.Int("feature_count", matrix.Width()),
		zap.Int("positive_labels", positives),
	)

	if matrix.Len() < b.config.MinSamples {
		insufficient := errors.NewInsufficientDataErrorf(b.config.MinSamples, matrix.Len(), symbol,
			"not enough data: got %d samples, need at least %d", matrix.Len(), b.config.MinSamples)

		return nil, errors.Wrap(errors.ErrCodeInsufficientData, "dataset too small", insufficient)
	}

	profile, err := Fit(matrix)
	if err != nil {
		return nil, err
	}

	dataset := &Dataset{
		Symbol:    symbol,
		Variant:   b.config.Variant,
		Features:  matrix,
		Labels:    labels,
		Profile:   profile,
		Positives: positives,
	}

	b.logger.Info("Dataset ready",
		zap.Int("samples", len(labels)),
		zap.Float64("positive_share", dataset.PositiveShare()),
	)

	return dataset, nil
}

// ValidityMask is true for rows whose features and label are all finite.
func ValidityMask(matrix Matrix, labels []float64) []bool {
	mask := make([]bool, matrix.Len())

	for i, row := range matrix.Rows {
		valid := i < len(labels) && !math.IsNaN(labels[i])

		for _, x := range row {
			if !valid {
				break
			}

			valid = !math.IsNaN(x) && !math.IsInf(x, 0)
		}

		mask[i] = valid
	}

	return mask
}

// Filter keeps the rows where mask is true in both the matrix and labels.
func Filter(matrix Matrix, labels []float64, mask []bool) (Matrix, []float64) {
	rows := make([][]float64, 0, len(mask))
	kept := make([]float64, 0, len(mask))

	for i, ok := range mask {
		if !ok {
			continue
		}

		rows = append(rows, matrix.Rows[i])
		kept = append(kept, labels[i])
	}

	return Matrix{Columns: matrix.Columns, Rows: rows}, kept
}
