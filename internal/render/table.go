package render

import (
	"bufio"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

const (
	columnGap   = "  "
	maxCellWide = 60
)

var headerStyle = color.Style{color.FgCyan, color.OpBold}

func (r *Renderer) writeTable(t *Table) error {
	cells := make([][]string, len(t.Rows))
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c)
	}

	for i, row := range t.Rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			s := oneLine(text(v))
			if runewidth.StringWidth(s) > maxCellWide {
				s = runewidth.Truncate(s, maxCellWide, "…")
			}
			cells[i][j] = s
			if w := runewidth.StringWidth(s); w > widths[j] {
				widths[j] = w
			}
		}
	}

	bw := bufio.NewWriter(r.w)

	header := make([]string, len(t.Columns))
	rule := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		h := pad(c, widths[i], i == len(t.Columns)-1)
		if r.opts.Color {
			h = headerStyle.Sprint(h)
		}
		header[i] = h
		rule[i] = strings.Repeat("-", widths[i])
	}
	writeLine(bw, header)
	writeLine(bw, rule)

	for i, row := range cells {
		line := make([]string, len(row))
		for j, s := range row {
			line[j] = pad(s, widths[j], j == len(row)-1)
			if r.opts.Color && t.Style != nil {
				line[j] = t.Style(i, j, line[j])
			}
		}
		writeLine(bw, line)
	}

	return bw.Flush()
}

// pad fills s to width display columns. The last column is not padded.
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	return runewidth.FillRight(s, width)
}

func writeLine(w *bufio.Writer, cells []string) {
	w.WriteString(strings.TrimRight(strings.Join(cells, columnGap), " "))
	w.WriteByte('\n')
}

// oneLine keeps multi-line values from breaking the table layout.
func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
}
