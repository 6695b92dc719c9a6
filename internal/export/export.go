// Package export writes flattened rows into a MySQL table.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dbsmedya/fieldwalk/internal/logger"
	"github.com/dbsmedya/fieldwalk/internal/sqlutil"
)

// maxPlaceholders is the number of bind parameters MySQL accepts in one
// prepared statement.
const maxPlaceholders = 65535

// Options configures an Exporter.
type Options struct {
	Table       string // destination table
	BatchSize   int    // rows per INSERT statement, lowered to fit maxPlaceholders
	CreateTable bool   // issue CREATE TABLE IF NOT EXISTS before inserting
}

// Stats contains statistics about one export.
type Stats struct {
	Rows     int64         // rows inserted
	Batches  int           // INSERT statements executed
	Columns  int           // columns per row
	Duration time.Duration // time taken
}

// Exporter inserts rows in batches within a single destination transaction.
// Either every row is written or, on error, the transaction is rolled back.
type Exporter struct {
	db     *sql.DB
	opts   Options
	logger *logger.Logger
}

// New creates an exporter.
func New(db *sql.DB, opts Options, log *logger.Logger) (*Exporter, error) {
	if db == nil {
		return nil, fmt.Errorf("destination database is nil")
	}
	if _, err := sqlutil.QuoteIdentifierSafe(opts.Table); err != nil {
		return nil, fmt.Errorf("invalid destination table: %w", err)
	}
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", opts.BatchSize)
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &Exporter{
		db:     db,
		opts:   opts,
		logger: log.WithTable(opts.Table),
	}, nil
}

// Columns maps dotted field paths to quoted column identifiers.
func Columns(paths []string) ([]string, error) {
	quoted := make([]string, len(paths))
	seen := make(map[string]string, len(paths))
	for i, p := range paths {
		name := sqlutil.ColumnName(p)
		if prev, dup := seen[strings.ToLower(name)]; dup {
			return nil, fmt.Errorf("fields %q and %q map to the same column %q", prev, p, name)
		}
		seen[strings.ToLower(name)] = p

		q, err := sqlutil.QuoteIdentifierSafe(name)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", p, err)
		}
		quoted[i] = q
	}
	return quoted, nil
}

// Export inserts rows, one value per path in each row.
func (e *Exporter) Export(ctx context.Context, paths []string, rows [][]any) (*Stats, error) {
	startTime := time.Now()

	if len(paths) == 0 {
		return nil, fmt.Errorf("no columns to export")
	}
	columns, err := Columns(paths)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values for %d columns", i, len(row), len(columns))
		}
	}

	stats := &Stats{Columns: len(columns)}

	e.logger.Debug("Starting destination transaction")
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin destination transaction: %w", err)
	}

	defer func() {
		if tx != nil {
			e.logger.Warn("Rolling back destination transaction due to error")
			if rbErr := tx.Rollback(); rbErr != nil {
				e.logger.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	if e.opts.CreateTable {
		if _, err := tx.ExecContext(ctx, CreateTableSQL(e.opts.Table, columns)); err != nil {
			return nil, fmt.Errorf("failed to create table %s: %w", e.opts.Table, err)
		}
	}

	batchSize := rowsPerBatch(e.opts.BatchSize, len(columns))
	if batchSize < e.opts.BatchSize {
		e.logger.Debugf("Batch size lowered from %d to %d rows for %d columns",
			e.opts.BatchSize, batchSize, len(columns))
	}

	for start := 0; start < len(rows); start += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("export interrupted: %w", err)
		}

		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		n, err := e.insertBatch(ctx, tx, columns, rows[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to insert rows %d-%d: %w", start, end-1, err)
		}
		stats.Rows += n
		stats.Batches++

		e.logger.Debugf("Inserted batch %d (%d rows)", stats.Batches, n)
	}

	e.logger.Debug("Committing destination transaction")
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit destination transaction: %w", err)
	}
	tx = nil

	stats.Duration = time.Since(startTime)
	e.logger.Infof("Export complete: %d rows in %d batches, duration: %s",
		stats.Rows, stats.Batches, stats.Duration)

	return stats, nil
}

// rowsPerBatch caps batchSize so that one INSERT binds at most
// maxPlaceholders values. At least one row is always sent.
func rowsPerBatch(batchSize, columns int) int {
	limit := maxPlaceholders / columns
	if limit < 1 {
		limit = 1
	}
	return min(batchSize, limit)
}

func (e *Exporter) insertBatch(ctx context.Context, tx *sql.Tx, columns []string, rows [][]any) (int64, error) {
	args := make([]any, 0, len(rows)*len(columns))
	for _, row := range rows {
		for _, v := range row {
			args = append(args, SQLValue(v))
		}
	}

	result, err := tx.ExecContext(ctx, InsertSQL(e.opts.Table, columns, len(rows)), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
