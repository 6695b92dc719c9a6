package render

import (
	"encoding/csv"
)

func (r *Renderer) writeCSV(t *Table) error {
	cw := csv.NewWriter(r.w)

	if err := cw.Write(t.Columns); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for j, v := range row {
			record[j] = text(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
