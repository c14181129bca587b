package features

import (
	"testing"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type LayoutTestSuite struct {
	suite.Suite
}

func TestLayoutSuite(t *testing.T) {
	suite.Run(t, new(LayoutTestSuite))
}

func (suite *LayoutTestSuite) TestMinimal() {
	layout, err := Layout(types.FeatureVariantMinimal)
	suite.NoError(err)
	suite.Equal([]string{"r5", "r15", "r30", "vol30", "rsi14", "macd"}, ColumnNames(layout))

	for _, column := range layout {
		suite.Equal(ScaleNone, column.Scale, column.Name)
	}
}

func (suite *LayoutTestSuite) TestEnhanced() {
	layout, err := Layout(types.FeatureVariantEnhanced)
	suite.NoError(err)
	suite.Equal([]string{
		"r5", "r15", "r30", "r60", "vol30", "vol60", "rsi14", "macd",
		"bb_position", "price_momentum", "volume_trend",
	}, ColumnNames(layout))

	suite.Equal(ScalePercent, layout[6].Scale)
	suite.Equal(ScalePrice, layout[7].Scale)
	suite.Equal([]any{20, 2.0}, layout[8].Params)
	suite.Equal([]any{10}, layout[9].Params)
}

func (suite *LayoutTestSuite) TestOptions() {
	layout, err := NewLayout(types.FeatureVariantEnhanced, LayoutOptions{RSIPeriod: 7, BollingerWindow: 10, BollingerNumStd: 1.5})
	suite.NoError(err)
	suite.Equal("rsi7", layout[6].Name)
	suite.Equal([]any{7}, layout[6].Params)
	suite.Equal([]any{10, 1.5}, layout[8].Params)
}

func (suite *LayoutTestSuite) TestUnknownVariant() {
	_, err := Layout(types.FeatureVariant("huge"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnknownVariant))
}
