package render

import (
	"bufio"
	"encoding/json"

	"github.com/elliotchance/orderedmap/v2"
)

// writeJSON writes an array with one object per row. Object keys keep the
// column order.
func (r *Renderer) writeJSON(t *Table) error {
	bw := bufio.NewWriter(r.w)
	bw.WriteString("[")

	for i, row := range t.Rows {
		obj := orderedmap.NewOrderedMap[string, any]()
		for j, c := range t.Columns {
			obj.Set(c, row[j])
		}

		if i > 0 {
			bw.WriteString(",")
		}
		bw.WriteString("\n  ")
		if err := writeObject(bw, obj); err != nil {
			return err
		}
	}

	if len(t.Rows) > 0 {
		bw.WriteString("\n")
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

func writeObject(w *bufio.Writer, obj *orderedmap.OrderedMap[string, any]) error {
	w.WriteString("{")
	first := true
	for el := obj.Front(); el != nil; el = el.Next() {
		if !first {
			w.WriteString(", ")
		}
		first = false

		key, err := json.Marshal(el.Key)
		if err != nil {
			return err
		}
		w.Write(key)
		w.WriteString(": ")
		w.Write(jsonValue(el.Value))
	}
	w.WriteString("}")
	return nil
}

// jsonValue encodes v, falling back to its text form for values JSON cannot
// represent (complex numbers, maps with non-string keys).
func jsonValue(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(text(v))
	}
	return b
}
