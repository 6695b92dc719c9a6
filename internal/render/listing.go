package render

import (
	"strings"

	"github.com/gookit/color"

	"github.com/dbsmedya/fieldwalk/internal/graph"
	"github.com/dbsmedya/fieldwalk/internal/schema"
	"github.com/dbsmedya/fieldwalk/internal/walk"
)

// Descriptors prints one row per walked descriptor. In table format the
// field name is indented by nesting depth.
func (r *Renderer) Descriptors(entries []walk.Entry) error {
	const kindColumn = 3
	t := &Table{Columns: []string{"#", "PATH", "TYPE", "KIND", "OWNER"}}
	t.Style = func(row, col int, cell string) string {
		if col != kindColumn {
			return cell
		}
		if entries[row].Field.IsScalar() {
			return color.FgGreen.Sprint(cell)
		}
		return color.FgYellow.Sprint(cell)
	}

	for i, e := range entries {
		path := e.Path
		if r.opts.Format == FormatTable {
			path = strings.Repeat("  ", e.Depth()) + e.Field.Name
		}
		t.AddRow(i+1, path, e.Field.Type, e.Field.Kind.String(), e.Field.Owner)
	}

	return r.Render(t)
}

// Types prints one row per record type with its field count, the record
// types it references and the record types referencing it. References
// reached through an array field are marked with "[]".
func (r *Renderer) Types(types []*schema.RecordType, g *graph.Graph) error {
	t := &Table{Columns: []string{"TYPE", "FIELDS", "REFERENCES", "USED BY"}}

	for _, rt := range types {
		children := g.GetChildren(rt.Name)
		refs := make([]string, len(children))
		for i, child := range children {
			refs[i] = child
			if meta := g.GetEdgeMeta(rt.Name, child); meta != nil && meta.Array {
				refs[i] = schema.ArrayPrefix + child
			}
		}
		t.AddRow(rt.Name, rt.NumField(), strings.Join(refs, ", "), strings.Join(g.GetParents(rt.Name), ", "))
	}

	return r.Render(t)
}
