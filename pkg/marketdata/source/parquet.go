package source

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"go.uber.org/zap"
)

// ParquetSource reads candles exported by the DuckDB writer.
type ParquetSource struct {
	path   string
	symbol string
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewParquetSource creates a source for the Parquet file at path. A non empty
// symbol restricts the result to that symbol.
func NewParquetSource(path string, symbol string, log *logger.Logger) *ParquetSource {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ParquetSource{
		path:   path,
		symbol: symbol,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Candles reads every candle ordered by time.
func (s *ParquetSource) Candles(ctx context.Context) ([]types.Candle, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	builder := s.sq.
		Select("id", "time", "symbol", "open", "high", "low", "close", "volume").
		From("read_parquet('" + strings.ReplaceAll(s.path, "'", "''") + "')").
		OrderBy("time ASC")

	if s.symbol != "" {
		builder = builder.Where(squirrel.Eq{"symbol": s.symbol})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	s.logger.Debug("Reading candles from parquet", zap.String("path", s.path), zap.String("symbol", s.symbol))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read %s", s.path)
	}
	defer rows.Close()

	var candles []types.Candle

	for rows.Next() {
		var (
			candle types.Candle
			ts     time.Time
		)

		if err := rows.Scan(&candle.Id, &ts, &candle.Symbol, &candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan candle", err)
		}

		candle.Time = ts.UTC()
		candles = append(candles, candle)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate candles", err)
	}

	if len(candles) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no candles found in %s", s.path)
	}

	return candles, nil
}
