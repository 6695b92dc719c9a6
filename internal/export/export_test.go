package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/fieldwalk/internal/logger"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestNew_Validation(t *testing.T) {
	db, _ := newMock(t)

	tests := []struct {
		name   string
		db     *sql.DB
		opts   Options
		errMsg string
	}{
		{"valid", db, Options{Table: "orders_flat", BatchSize: 10}, ""},
		{"nil db", nil, Options{Table: "orders_flat", BatchSize: 10}, "destination database is nil"},
		{"bad table", db, Options{Table: "orders; DROP", BatchSize: 10}, "invalid destination table"},
		{"empty table", db, Options{BatchSize: 10}, "invalid destination table"},
		{"zero batch", db, Options{Table: "orders_flat"}, "batch size must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.db, tt.opts, logger.NewNop())
			if tt.errMsg == "" {
				assert.NoError(t, err)
				assert.NotNil(t, e)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
			assert.Nil(t, e)
		})
	}
}

func TestColumns(t *testing.T) {
	cols, err := Columns([]string{"id", "customer.name", "customer.address.city"})
	require.NoError(t, err)
	assert.Equal(t, []string{"`id`", "`customer_name`", "`customer_address_city`"}, cols)

	_, err = Columns([]string{"customer.name", "customer_name"})
	assert.ErrorContains(t, err, "map to the same column")

	_, err = Columns([]string{"Name", "name"})
	assert.ErrorContains(t, err, "map to the same column")
}

func TestSQLBuilders(t *testing.T) {
	cols := []string{"`id`", "`name`"}

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS `flat` (`id` TEXT NULL, `name` TEXT NULL)",
		CreateTableSQL("flat", cols))
	assert.Equal(t,
		"INSERT INTO `flat` (`id`, `name`) VALUES (?, ?)",
		InsertSQL("flat", cols, 1))
	assert.Equal(t,
		"INSERT INTO `flat` (`id`, `name`) VALUES (?, ?), (?, ?), (?, ?)",
		InsertSQL("flat", cols, 3))
}

func TestSQLValue(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, SQLValue(nil))
	assert.Equal(t, "x", SQLValue("x"))
	assert.Equal(t, int64(5), SQLValue(int64(5)))
	assert.Equal(t, 2.5, SQLValue(2.5))
	assert.Equal(t, true, SQLValue(true))
	assert.Equal(t, ts, SQLValue(ts))
	assert.Equal(t, "{1}", SQLValue(struct{ A int }{1}))
}

func TestExport_BatchesInOneTransaction(t *testing.T) {
	db, mock := newMock(t)

	e, err := New(db, Options{Table: "orders_flat", BatchSize: 2, CreateTable: true}, logger.NewNop())
	require.NoError(t, err)

	paths := []string{"id", "customer.name"}
	rows := [][]any{
		{1, "Ada"},
		{2, "Bob"},
		{3, nil},
	}

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `orders_flat` (`id` TEXT NULL, `customer_name` TEXT NULL)").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `orders_flat` (`id`, `customer_name`) VALUES (?, ?), (?, ?)").
		WithArgs(1, "Ada", 2, "Bob").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `orders_flat` (`id`, `customer_name`) VALUES (?, ?)").
		WithArgs(3, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stats, err := e.Export(context.Background(), paths, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Rows)
	assert.Equal(t, 2, stats.Batches)
	assert.Equal(t, 2, stats.Columns)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowsPerBatch(t *testing.T) {
	tests := []struct {
		batch, columns, want int
	}{
		{500, 2, 500},
		{500, 131, 500},
		{500, 132, 496},
		{1000, 100, 655},
		{500, 65535, 1},
		{500, 70000, 1},
	}

	for _, tt := range tests {
		got := rowsPerBatch(tt.batch, tt.columns)
		assert.Equal(t, tt.want, got, "batch %d, columns %d", tt.batch, tt.columns)
		assert.LessOrEqual(t, got*tt.columns, max(maxPlaceholders, tt.columns))
	}
}

func TestExport_WideRowsStayUnderPlaceholderLimit(t *testing.T) {
	db, mock := newMock(t)

	e, err := New(db, Options{Table: "wide", BatchSize: 500}, logger.NewNop())
	require.NoError(t, err)

	paths := make([]string, 30000)
	for i := range paths {
		paths[i] = fmt.Sprintf("f%d", i)
	}
	rows := make([][]any, 3)
	for i := range rows {
		rows[i] = make([]any, len(paths))
	}

	columns, err := Columns(paths)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(InsertSQL("wide", columns, 2)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(InsertSQL("wide", columns, 1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stats, err := e.Export(context.Background(), paths, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Rows)
	assert.Equal(t, 2, stats.Batches)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExport_RollsBackOnInsertError(t *testing.T) {
	db, mock := newMock(t)

	e, err := New(db, Options{Table: "orders_flat", BatchSize: 1}, logger.NewNop())
	require.NoError(t, err)

	insertErr := errors.New("duplicate entry")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders_flat` (`id`) VALUES (?)").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `orders_flat` (`id`) VALUES (?)").
		WithArgs(2).
		WillReturnError(insertErr)
	mock.ExpectRollback()

	stats, err := e.Export(context.Background(), []string{"id"}, [][]any{{1}, {2}})
	require.Error(t, err)
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, insertErr)
	assert.Contains(t, err.Error(), "failed to insert rows 1-1")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExport_RollsBackOnCreateError(t *testing.T) {
	db, mock := newMock(t)

	e, err := New(db, Options{Table: "t", BatchSize: 10, CreateTable: true}, logger.NewNop())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `t` (`id` TEXT NULL)").
		WillReturnError(errors.New("access denied"))
	mock.ExpectRollback()

	_, err = e.Export(context.Background(), []string{"id"}, [][]any{{1}})
	assert.ErrorContains(t, err, "failed to create table t")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExport_BeginError(t *testing.T) {
	db, mock := newMock(t)

	e, err := New(db, Options{Table: "t", BatchSize: 10}, nil)
	require.NoError(t, err)

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	_, err = e.Export(context.Background(), []string{"id"}, [][]any{{1}})
	assert.ErrorContains(t, err, "failed to begin destination transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExport_CommitError(t *testing.T) {
	db, mock := newMock(t)

	e, err := New(db, Options{Table: "t", BatchSize: 10}, logger.NewNop())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `t` (`id`) VALUES (?)").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("lock wait timeout"))

	_, err = e.Export(context.Background(), []string{"id"}, [][]any{{1}})
	assert.ErrorContains(t, err, "failed to commit destination transaction")
}

func TestExport_CanceledContext(t *testing.T) {
	db, _ := newMock(t)

	e, err := New(db, Options{Table: "t", BatchSize: 10}, logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = e.Export(ctx, []string{"id"}, [][]any{{1}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExport_InputValidation(t *testing.T) {
	db, mock := newMock(t)

	e, err := New(db, Options{Table: "t", BatchSize: 10}, logger.NewNop())
	require.NoError(t, err)

	_, err = e.Export(context.Background(), nil, nil)
	assert.ErrorContains(t, err, "no columns")

	_, err = e.Export(context.Background(), []string{"a", "b"}, [][]any{{1}})
	assert.ErrorContains(t, err, "row 0 has 1 values for 2 columns")

	_, err = e.Export(context.Background(), []string{"a.b", "a_b"}, nil)
	assert.ErrorContains(t, err, "same column")

	// Nothing reached the database
	assert.NoError(t, mock.ExpectationsWereMet())
}
