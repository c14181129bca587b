package features

import (
	"context"
	"io"
	"testing"

	"github.com/rxtech-lab/argo-features/internal/indicator"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/mocks"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AssemblerRegistryTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	registry  *mocks.MockIndicatorRegistry
	indicator *mocks.MockIndicator
	closes    []float64
}

func TestAssemblerRegistrySuite(t *testing.T) {
	suite.Run(t, new(AssemblerRegistryTestSuite))
}

func (suite *AssemblerRegistryTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.registry = mocks.NewMockIndicatorRegistry(suite.ctrl)
	suite.indicator = mocks.NewMockIndicator(suite.ctrl)
	suite.closes = []float64{100, 101, 102, 103}
}

func (suite *AssemblerRegistryTestSuite) assemble(column Column) (Matrix, error) {
	return NewAssemblerWithRegistry([]Column{column}, suite.registry).Assemble(context.Background(), suite.closes, nil)
}

func (suite *AssemblerRegistryTestSuite) TestRegistryFailure() {
	suite.registry.EXPECT().
		NewIndicator(types.IndicatorTypeRSI, 7).
		Return(nil, errors.New(errors.ErrCodeIndicatorNotFound, "missing"))

	_, err := suite.assemble(Column{Name: "rsi7", Indicator: types.IndicatorTypeRSI, Params: []any{7}})
	suite.True(errors.HasCode(err, errors.ErrCodeFeatureAssembly))
	suite.Contains(err.Error(), "column rsi7")
	suite.Contains(err.Error(), "missing")
}

func (suite *AssemblerRegistryTestSuite) TestComputeFailure() {
	suite.registry.EXPECT().NewIndicator(types.IndicatorTypeMACD).Return(suite.indicator, nil)
	suite.indicator.EXPECT().Compute(gomock.Any()).Return(nil, io.ErrUnexpectedEOF)

	_, err := suite.assemble(Column{Name: "macd", Indicator: types.IndicatorTypeMACD})
	suite.True(errors.HasCode(err, errors.ErrCodeFeatureAssembly))
	suite.ErrorIs(err, io.ErrUnexpectedEOF)
}

func (suite *AssemblerRegistryTestSuite) TestShortColumn() {
	suite.registry.EXPECT().NewIndicator(types.IndicatorTypeEMA).Return(suite.indicator, nil)
	suite.indicator.EXPECT().Compute(gomock.Any()).Return([]float64{1, 2, 3}, nil)

	_, err := suite.assemble(Column{Name: "ema", Indicator: types.IndicatorTypeEMA})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidLength))
	suite.Contains(err.Error(), "column ema has 3 values, expected 4")
}

func (suite *AssemblerRegistryTestSuite) TestComputeReceivesInputAndScales() {
	suite.registry.EXPECT().NewIndicator(types.IndicatorTypeRSI, 14).Return(suite.indicator, nil)
	suite.indicator.EXPECT().
		Compute(gomock.Any()).
		DoAndReturn(func(input indicator.Input) ([]float64, error) {
			suite.Equal(suite.closes, input.Closes)
			suite.True(input.Volumes.IsNone())

			return []float64{50, 25, 100, 0}, nil
		})

	assembler := NewAssemblerWithRegistry([]Column{{Name: "rsi14", Indicator: types.IndicatorTypeRSI, Params: []any{14}, Scale: ScalePercent}}, suite.registry)
	assembler.Parallel = true

	matrix, err := assembler.Assemble(context.Background(), suite.closes, nil)
	suite.Require().NoError(err)
	suite.Equal([]float64{0.5, 0.25, 1, 0}, matrix.Column(0))
	suite.Equal([]string{"rsi14"}, assembler.Columns())
}
