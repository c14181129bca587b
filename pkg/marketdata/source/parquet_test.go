package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/mocks"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/writer"
	"github.com/stretchr/testify/suite"
)

type ParquetSourceTestSuite struct {
	suite.Suite
	path    string
	candles []types.Candle
}

func TestParquetSourceSuite(t *testing.T) {
	suite.Run(t, new(ParquetSourceTestSuite))
}

func (suite *ParquetSourceTestSuite) SetupTest() {
	bitcoin := mocks.GenerateCandles("bitcoin", 50)
	ethereum := mocks.GenerateCandles("ethereum", 20)

	suite.candles = bitcoin
	suite.path = filepath.Join(suite.T().TempDir(), "candles.parquet")

	_, err := writer.WriteCandles(writer.NewDuckDBWriter(suite.path, nil), append(append([]types.Candle{}, ethereum...), bitcoin...))
	suite.Require().NoError(err)
}

func (suite *ParquetSourceTestSuite) TestReadSymbol() {
	candles, err := NewParquetSource(suite.path, "bitcoin", nil).Candles(context.Background())
	suite.Require().NoError(err)
	suite.Require().Len(candles, 50)

	for i, c := range candles {
		suite.Equal("bitcoin", c.Symbol)
		suite.Equal(suite.candles[i].Time.UTC(), c.Time)
		suite.InDelta(suite.candles[i].Close, c.Close, 1e-9)
		suite.NotEmpty(c.Id)
	}
}

func (suite *ParquetSourceTestSuite) TestReadAll() {
	candles, err := NewParquetSource(suite.path, "", nil).Candles(context.Background())
	suite.Require().NoError(err)
	suite.Len(candles, 70)

	for i := 1; i < len(candles); i++ {
		suite.False(candles[i].Time.Before(candles[i-1].Time))
	}
}

func (suite *ParquetSourceTestSuite) TestUnknownSymbol() {
	_, err := NewParquetSource(suite.path, "dogecoin", nil).Candles(context.Background())
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *ParquetSourceTestSuite) TestMissingFile() {
	_, err := NewParquetSource(filepath.Join(suite.T().TempDir(), "nope.parquet"), "", nil).Candles(context.Background())
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}

func (suite *ParquetSourceTestSuite) TestOpen() {
	src, err := Open(suite.path, "bitcoin", nil)
	suite.Require().NoError(err)
	suite.IsType(&ParquetSource{}, src)

	src, err = Open("prices.CSV", "bitcoin", nil)
	suite.Require().NoError(err)
	suite.IsType(&CSVSource{}, src)

	_, err = Open("prices.json", "bitcoin", nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

}
