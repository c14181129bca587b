package source

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/shopspring/decimal"
)

// Accepted header names, after lower-casing. The first match wins.
var (
	priceColumns     = []string{"close", "price"}
	volumeColumns    = []string{"volume"}
	timestampColumns = []string{"timestamp", "time", "date"}
	symbolColumns    = []string{"symbol"}
)

// millisThreshold separates unix seconds from unix milliseconds.
const millisThreshold = 100_000_000_000

// CSVSource reads candles from a CSV file with a header row.
type CSVSource struct {
	path   string
	symbol string
}

// NewCSVSource creates a source for the CSV file at path.
func NewCSVSource(path string, symbol string) *CSVSource {
	return &CSVSource{path: path, symbol: symbol}
}

// Candles reads the whole file.
func (s *CSVSource) Candles(ctx context.Context) ([]types.Candle, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to open %s", s.path)
	}
	defer file.Close()

	return ReadCSV(ctx, file, s.symbol)
}

// ReadCSV parses candles from r. Headers are matched case-insensitively. The
// price comes from "close", else "price"; a file with neither is rejected.
// Volume and timestamp columns are optional. Empty or "nan" cells are NaN.
func ReadCSV(ctx context.Context, r io.Reader, symbol string) ([]types.Candle, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeEmptySeries, "csv file is empty")
	}

	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to read csv header", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	priceCol, ok := lookup(index, priceColumns)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeMissingColumn, "no price column found, expected one of %v", priceColumns)
	}

	volumeCol, hasVolume := lookup(index, volumeColumns)
	timeCol, hasTime := lookup(index, timestampColumns)
	symbolCol, hasSymbol := lookup(index, symbolColumns)

	var candles []types.Candle

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to read csv line %d", line)
		}

		price, err := parseNumber(record[priceCol])
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid price on line %d", line)
		}

		candle := types.Candle{
			Symbol: symbol,
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
		}

		if hasVolume {
			candle.Volume, err = parseNumber(record[volumeCol])
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid volume on line %d", line)
			}
		}

		if hasTime {
			candle.Time, err = parseTimestamp(record[timeCol])
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid timestamp on line %d", line)
			}
		}

		if hasSymbol && record[symbolCol] != "" {
			candle.Symbol = record[symbolCol]
		}

		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySeries, "csv file has no data rows")
	}

	return candles, nil
}

func lookup(index map[string]int, names []string) (int, bool) {
	for _, name := range names {
		if i, ok := index[name]; ok {
			return i, true
		}
	}

	return 0, false
}

func parseNumber(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return math.NaN(), nil
	}

	d, err := decimal.NewFromString(cell)
	if err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}

// parseTimestamp accepts unix seconds, unix milliseconds, RFC 3339 and plain dates.
func parseTimestamp(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)

	if d, err := decimal.NewFromString(cell); err == nil {
		n := d.IntPart()
		if n >= millisThreshold || n <= -millisThreshold {
			return time.UnixMilli(n).UTC(), nil
		}

		return time.Unix(n, 0).UTC(), nil
	}

	var lastErr error

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		t, err := time.Parse(layout, cell)
		if err == nil {
			return t.UTC(), nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}
