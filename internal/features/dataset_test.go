package features

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DatasetTestSuite struct {
	suite.Suite
	ctx    context.Context
	logger *logger.Logger
}

func TestDatasetSuite(t *testing.T) {
	suite.Run(t, new(DatasetTestSuite))
}

func (suite *DatasetTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.logger = logger.NewNopLogger()
}

func (suite *DatasetTestSuite) newBuilder(config BuilderConfig) *Builder {
	builder, err := NewBuilder(config, suite.logger)
	suite.Require().NoError(err)

	return builder
}

func (suite *DatasetTestSuite) TestScenarioMinimal() {
	builder := suite.newBuilder(BuilderConfig{
		Variant:           types.FeatureVariantMinimal,
		Horizon:           20,
		KeepUnlabeledTail: true,
	})

	dataset, err := builder.BuildFromSeries(suite.ctx, "bitcoin", scenarioPrices(), nil)
	suite.NoError(err)
	suite.Equal(6, dataset.Features.Width())
	// no row contains NaN, so every input point survives
	suite.Equal(81, dataset.Features.Len())
	suite.Len(dataset.Labels, 81)
	suite.Equal(6, dataset.Profile.Width())
}

func (suite *DatasetTestSuite) TestScenarioEnhanced() {
	builder := suite.newBuilder(BuilderConfig{
		Variant:           types.FeatureVariantEnhanced,
		Horizon:           20,
		MinSamples:        50,
		KeepUnlabeledTail: true,
	})

	dataset, err := builder.BuildFromSeries(suite.ctx, "bitcoin", scenarioPrices(), nil)
	suite.NoError(err)
	suite.Equal(11, dataset.Features.Width())
	suite.Equal(81, dataset.Features.Len())
}

func (suite *DatasetTestSuite) TestUnlabeledTailDroppedByDefault() {
	builder := suite.newBuilder(BuilderConfig{
		Variant: types.FeatureVariantMinimal,
		Horizon: 20,
	})

	prices := scenarioPrices()

	dataset, err := builder.BuildFromSeries(suite.ctx, "bitcoin", prices, nil)
	suite.NoError(err)
	suite.Equal(61, dataset.Features.Len())
	suite.Equal(Labels(prices, 20)[:61], dataset.Labels)
}

func (suite *DatasetTestSuite) TestInsufficientData() {
	builder := suite.newBuilder(BuilderConfig{
		Variant:    types.FeatureVariantMinimal,
		Horizon:    20,
		MinSamples: 100,
	})

	_, err := builder.BuildFromSeries(suite.ctx, "bitcoin", scenarioPrices(), nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInsufficientData))
	suite.True(errors.IsInsufficientDataError(err))
	suite.Contains(err.Error(), "got 61 samples, need at least 100")
}

func (suite *DatasetTestSuite) TestEnhancedDefaultMinSamples() {
	builder := suite.newBuilder(BuilderConfig{
		Variant: types.FeatureVariantEnhanced,
		Horizon: 20,
	})

	_, err := builder.BuildFromSeries(suite.ctx, "bitcoin", scenarioPrices(), nil)
	suite.True(errors.IsInsufficientDataError(err))
	suite.Equal(1000, DefaultMinSamples(types.FeatureVariantEnhanced))
	suite.Equal(50, DefaultMinSamples(types.FeatureVariantMinimal))
}

func (suite *DatasetTestSuite) TestBuildFromCandles() {
	prices := scenarioPrices()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]types.Candle, len(prices))

	for i, p := range prices {
		candles[i] = types.Candle{
			Symbol: "ethereum",
			Time:   start.Add(time.Duration(i) * 5 * time.Minute),
			Open:   p,
			High:   p,
			Low:    p,
			Close:  p,
			Volume: 10 + float64(i%3),
		}
	}

	builder := suite.newBuilder(BuilderConfig{Variant: types.FeatureVariantEnhanced, Horizon: 20, MinSamples: 10})

	dataset, err := builder.Build(suite.ctx, candles)
	suite.NoError(err)
	suite.Equal("ethereum", dataset.Symbol)
	suite.Equal(types.FeatureVariantEnhanced, dataset.Variant)

	volumeTrend := dataset.Features.Column(10)
	nonZero := 0
	for _, v := range volumeTrend {
		if v != 0 {
			nonZero++
		}
	}

	suite.Positive(nonZero)
}

func (suite *DatasetTestSuite) TestPositiveShare() {
	builder := suite.newBuilder(BuilderConfig{Variant: types.FeatureVariantMinimal, Horizon: 5})

	dataset, err := builder.BuildFromSeries(suite.ctx, "bitcoin", risingPrices(100), nil)
	suite.NoError(err)
	suite.Equal(95, dataset.Positives)
	suite.Equal(1.0, dataset.PositiveShare())
}

func (suite *DatasetTestSuite) TestInvalidConfig() {
	_, err := NewBuilder(BuilderConfig{Variant: "huge", Horizon: 20}, suite.logger)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	_, err = NewBuilder(BuilderConfig{Variant: types.FeatureVariantMinimal}, suite.logger)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *DatasetTestSuite) TestValidityMask() {
	matrix := Matrix{
		Columns: []string{"a", "b"},
		Rows: [][]float64{
			{1, 2},
			{math.NaN(), 2},
			{1, math.Inf(1)},
			{1, 2},
			{1, 2},
		},
	}
	labels := []float64{0, 1, 1, math.NaN(), 1}

	mask := ValidityMask(matrix, labels)
	suite.Equal([]bool{true, false, false, false, true}, mask)

	filtered, kept := Filter(matrix, labels, mask)
	suite.Equal(2, filtered.Len())
	suite.Equal([]float64{0, 1}, kept)
	suite.Equal(matrix.Columns, filtered.Columns)
}

func (suite *DatasetTestSuite) TestNaNPricesAreDropped() {
	prices := scenarioPrices()
	prices[80] = math.NaN()

	builder := suite.newBuilder(BuilderConfig{
		Variant:           types.FeatureVariantMinimal,
		Horizon:           20,
		KeepUnlabeledTail: true,
	})

	dataset, err := builder.BuildFromSeries(suite.ctx, "bitcoin", prices, nil)
	suite.NoError(err)
	suite.Less(dataset.Features.Len(), 81)

	for _, row := range dataset.Features.Rows {
		for _, v := range row {
			suite.False(math.IsNaN(v))
		}
	}
}
