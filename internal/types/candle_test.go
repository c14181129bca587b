package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CandleTestSuite struct {
	suite.Suite
}

func TestCandleSuite(t *testing.T) {
	suite.Run(t, new(CandleTestSuite))
}

func (suite *CandleTestSuite) candles() []Candle {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	return []Candle{
		{Symbol: "bitcoin", Time: start, Open: 100, High: 102, Low: 99, Close: 101, Volume: 10},
		{Symbol: "bitcoin", Time: start.Add(5 * time.Minute), Open: 101, High: 103, Low: 98, Close: 99, Volume: 0},
		{Symbol: "bitcoin", Time: start.Add(10 * time.Minute), Open: 99, High: 106, Low: 99, Close: 105, Volume: 30},
	}
}

func (suite *CandleTestSuite) TestCloses() {
	suite.Equal([]float64{101, 99, 105}, Closes(suite.candles()))
	suite.Empty(Closes(nil))
}

func (suite *CandleTestSuite) TestVolumes() {
	suite.Equal([]float64{10, 0, 30}, Volumes(suite.candles()))
}

func (suite *CandleTestSuite) TestHasVolume() {
	suite.True(HasVolume(suite.candles()))

	noVolume := suite.candles()
	for i := range noVolume {
		noVolume[i].Volume = 0
	}

	suite.False(HasVolume(noVolume))
	suite.False(HasVolume(nil))
}
