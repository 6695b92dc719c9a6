package export

import (
	"strings"
	"time"

	"github.com/dbsmedya/fieldwalk/internal/sqlutil"
	"github.com/dbsmedya/fieldwalk/internal/walk"
)

// CreateTableSQL builds a CREATE TABLE IF NOT EXISTS statement with one
// nullable TEXT column per quoted column.
func CreateTableSQL(table string, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c + " TEXT NULL"
	}
	return "CREATE TABLE IF NOT EXISTS " + sqlutil.QuoteIdentifier(table) +
		" (" + strings.Join(defs, ", ") + ")"
}

// InsertSQL builds a multi-row INSERT for rowCount rows.
func InsertSQL(table string, columns []string, rowCount int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(sqlutil.QuoteIdentifier(table))
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")

	row := sqlutil.Placeholders(len(columns))
	for i := 0; i < rowCount; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(row)
	}
	return b.String()
}

// SQLValue converts a leaf value to a driver argument. Values the MySQL
// driver accepts pass through; everything else is sent as text.
func SQLValue(v any) any {
	switch v.(type) {
	case nil, string, []byte, bool, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	default:
		return walk.ToString(v)
	}
}
