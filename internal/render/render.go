// Package render prints flattened records and schema listings as an aligned
// table, JSON or CSV.
package render

import (
	"fmt"
	"io"

	"github.com/dbsmedya/fieldwalk/internal/walk"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Options controls how tables are printed.
type Options struct {
	Format string // table, json or csv; empty means table
	Color  bool   // color the table header and kind column
}

// Table is a set of rows sharing one column list.
type Table struct {
	Columns []string
	Rows    [][]any

	// Style, if set, decorates a padded table cell when color is enabled.
	Style func(row, col int, cell string) string
}

// AddRow appends a row. The row must have one value per column.
func (t *Table) AddRow(values ...any) {
	t.Rows = append(t.Rows, values)
}

// Renderer writes tables to an output stream.
type Renderer struct {
	w    io.Writer
	opts Options
}

// New creates a renderer writing to w.
func New(w io.Writer, opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatTable
	}
	return &Renderer{w: w, opts: opts}
}

// Format returns the output format in use.
func (r *Renderer) Format() string {
	return r.opts.Format
}

// Render writes t in the configured format.
func (r *Renderer) Render(t *Table) error {
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d values for %d columns", i, len(row), len(t.Columns))
		}
	}

	switch r.opts.Format {
	case FormatTable:
		return r.writeTable(t)
	case FormatJSON:
		return r.writeJSON(t)
	case FormatCSV:
		return r.writeCSV(t)
	default:
		return fmt.Errorf("unsupported output format %q", r.opts.Format)
	}
}

// text converts a cell to its printed form.
func text(v any) string {
	return walk.ToString(v)
}
