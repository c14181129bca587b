// Package source loads candles from local files.
package source

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Source returns candles ordered by time.
type Source interface {
	Candles(ctx context.Context) ([]types.Candle, error)
}

// Open picks a source from the file extension of path. symbol names the
// candles of sources that do not carry one.
func Open(path string, symbol string, log *logger.Logger) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVSource(path, symbol), nil
	case ".parquet":
		return NewParquetSource(path, symbol, log), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported candle file %s, expected .csv or .parquet", path)
	}
}
