package walk

import (
	"github.com/dbsmedya/fieldwalk/internal/schema"
)

// walkFields drains the pending stack. A scalar is emitted as is. A composite
// is emitted and its record type's fields are pushed so that they are popped
// next, before the composite's remaining siblings.
func (p *Parser) walkFields() ([]schema.Field, []string, error) {
	st := p.state
	var fields []schema.Field
	var paths []string

	for len(st.pending) > 0 {
		item := st.popPending()

		if !item.field.IsScalar() {
			rt, err := p.reg.Resolve(item.field)
			if err != nil {
				return nil, nil, err
			}
			st.pushFields(rt, item.path)
		}

		fields = append(fields, item.field)
		paths = append(paths, item.path)
	}

	return fields, paths, nil
}
