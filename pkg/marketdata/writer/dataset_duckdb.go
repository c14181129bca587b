package writer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/rxtech-lab/argo-features/internal/features"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"go.uber.org/zap"
)

// datasetBatchSize is the number of rows per INSERT statement.
const datasetBatchSize = 500

// DatasetWriter exports a feature dataset to Parquet with one DOUBLE column
// per feature, followed by the label.
type DatasetWriter struct {
	outputPath string
	logger     *logger.Logger
	sq         squirrel.StatementBuilderType
}

// NewDatasetWriter creates a writer exporting to outputPath.
func NewDatasetWriter(outputPath string, log *logger.Logger) *DatasetWriter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DatasetWriter{
		outputPath: outputPath,
		logger:     log,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetOutputPath returns the Parquet file path.
func (w *DatasetWriter) GetOutputPath() string {
	return w.outputPath
}

// Write exports dataset and returns the output path.
func (w *DatasetWriter) Write(ctx context.Context, dataset *features.Dataset) (string, error) {
	if dataset == nil || dataset.Features.Len() == 0 {
		return "", errors.New(errors.ErrCodeEmptySeries, "cannot write an empty dataset")
	}

	if len(dataset.Labels) != dataset.Features.Len() {
		return "", errors.Newf(errors.ErrCodeInvalidLength, "dataset has %d rows but %d labels", dataset.Features.Len(), len(dataset.Labels))
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	columns := make([]string, 0, dataset.Features.Width()+2)
	definitions := make([]string, 0, cap(columns))

	columns = append(columns, "row_index")
	definitions = append(definitions, "row_index INTEGER")

	for _, name := range dataset.Features.Columns {
		columns = append(columns, quoteIdent(name))
		definitions = append(definitions, quoteIdent(name)+" DOUBLE")
	}

	columns = append(columns, "label")
	definitions = append(definitions, "label DOUBLE")

	// squirrel has no CREATE TABLE builder
	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE TABLE dataset (%s)", strings.Join(definitions, ", "))); err != nil {
		return "", errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to create dataset table", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to begin transaction", err)
	}

	for start := 0; start < dataset.Features.Len(); start += datasetBatchSize {
		end := min(start+datasetBatchSize, dataset.Features.Len())

		insert := w.sq.Insert("dataset").Columns(columns...)
		for i := start; i < end; i++ {
			values := make([]any, 0, len(columns))
			values = append(values, i)

			for _, v := range dataset.Features.Rows[i] {
				values = append(values, v)
			}

			values = append(values, dataset.Labels[i])
			insert = insert.Values(values...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			_ = tx.Rollback()

			return "", errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to build insert query", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()

			return "", errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to insert dataset rows", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to commit transaction", err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("COPY (SELECT * FROM dataset ORDER BY row_index) TO %s (FORMAT PARQUET)", quoteLiteral(w.outputPath))); err != nil {
		return "", errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to export dataset to Parquet", err)
	}

	w.logger.Info("Exported dataset",
		zap.String("path", w.outputPath),
		zap.String("symbol", dataset.Symbol),
		zap.Int("rows", dataset.Features.Len()),
		zap.Int("columns", dataset.Features.Width()),
	)

	return w.outputPath, nil
}
