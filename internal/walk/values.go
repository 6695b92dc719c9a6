package walk

import (
	"fmt"

	"github.com/dbsmedya/fieldwalk/internal/record"
	"github.com/dbsmedya/fieldwalk/internal/schema"
)

// extractValues replays fields against the owner stack and returns one value
// per scalar field.
func (p *Parser) extractValues(fields []schema.Field) ([]any, error) {
	st := p.state
	var values []any

	for _, f := range fields {
		if err := p.registerTop(); err != nil {
			return nil, err
		}

		// Return from every sub-record whose fields are all consumed.
		for len(st.owners) > 1 && st.done(st.top()) {
			st.owners = st.owners[:len(st.owners)-1]
			if err := p.registerTop(); err != nil {
				return nil, err
			}
		}

		cur := st.top()
		id := cur.id
		v, err := readField(cur, f)
		if err != nil {
			return nil, err
		}

		if f.IsScalar() {
			values = append(values, v)
		} else {
			elemType := f.ElemType()
			sub, err := record.Bind(elemType, v)
			if err != nil {
				return nil, &FieldAccessError{Field: f, Owner: cur.inst.Type(), Err: err}
			}
			st.pushOwner(sub, elemType)
		}

		// cur may be stale after pushOwner grew the slice.
		st.counters[id].visited++
	}

	return values, nil
}

// registerTop gives the top owner a counter the first time it is seen. The
// expected count comes from the runtime type of the instance, or from the
// declared type when the instance is nil.
func (p *Parser) registerTop() error {
	st := p.state
	top := st.top()
	if top.id != unregistered {
		return nil
	}

	typeName := top.typeName
	if top.inst != nil {
		typeName = top.inst.Type()
	}
	rt, err := p.reg.Lookup(typeName)
	if err != nil {
		return &ClassResolutionError{Type: typeName, Err: err}
	}
	st.register(top, rt.NumField())
	return nil
}

func readField(o *owner, f schema.Field) (any, error) {
	if o.inst == nil {
		return nil, &FieldAccessError{Field: f, Err: ErrNilOwner}
	}
	ownerType := o.inst.Type()
	if ownerType != f.Owner {
		return nil, &FieldAccessError{
			Field: f,
			Owner: ownerType,
			Err:   fmt.Errorf("%w: field belongs to %s", ErrOwnerMismatch, f.Owner),
		}
	}

	v, err := o.inst.Get(f.Name)
	if err != nil {
		return nil, &FieldAccessError{Field: f, Owner: ownerType, Err: err}
	}
	return v, nil
}
