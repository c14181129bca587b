package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/stretchr/testify/suite"
)

type VolumeTrendTestSuite struct {
	suite.Suite
}

func TestVolumeTrendSuite(t *testing.T) {
	suite.Run(t, new(VolumeTrendTestSuite))
}

func (suite *VolumeTrendTestSuite) TestName() {
	suite.Equal(types.IndicatorTypeVolumeTrend, NewVolumeTrend().Name())
}

func (suite *VolumeTrendTestSuite) TestKnownValue() {
	trend, err := CalculateVolumeTrend([]float64{10, 20}, 3)
	suite.NoError(err)
	suite.InDelta(0, trend[0], 1e-12)
	// ema[1] = 15
	suite.InDelta(5.0/15.0, trend[1], 1e-9)
}

func (suite *VolumeTrendTestSuite) TestConstantVolumeIsZero() {
	volumes := []float64{500, 500, 500, 500, 500}
	trend, err := NewVolumeTrend().Compute(NewInput([]float64{1, 2, 3, 4, 5}, volumes))
	suite.NoError(err)

	for _, v := range trend {
		suite.InDelta(0, v, 1e-12)
	}
}

func (suite *VolumeTrendTestSuite) TestMissingVolumesGiveZeros() {
	closes := []float64{1, 2, 3}

	trend, err := NewVolumeTrend().Compute(NewInput(closes, nil))
	suite.NoError(err)
	suite.Equal([]float64{0, 0, 0}, trend)

	trend, err = NewVolumeTrend().Compute(NewInput(closes, []float64{1, 2}))
	suite.NoError(err)
	suite.Equal([]float64{0, 0, 0}, trend)
}

func (suite *VolumeTrendTestSuite) TestEmptyInput() {
	trend, err := NewVolumeTrend().Compute(NewInput([]float64{}, []float64{}))
	suite.NoError(err)
	suite.Empty(trend)
}

func (suite *VolumeTrendTestSuite) TestConfig() {
	vt := NewVolumeTrend()
	suite.NoError(vt.Config(10))
	suite.Equal(10, vt.(*VolumeTrend).span)
	suite.Error(vt.Config())
	suite.Error(vt.Config(-1))
}
