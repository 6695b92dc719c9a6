package walk

import (
	"github.com/dbsmedya/fieldwalk/internal/record"
	"github.com/dbsmedya/fieldwalk/internal/schema"
)

// unregistered marks an owner frame that has no counter yet.
const unregistered = -1

// pending is a field waiting to be classified by the schema walk.
type pending struct {
	field schema.Field
	path  string
}

// owner is one entry of the active owner stack. typeName is the declared
// record type the instance was bound to; id indexes state.counters.
type owner struct {
	inst     record.Record
	typeName string
	id       int
}

// counter tracks how many fields of one instance have been consumed.
// Invariant: visited <= expected.
type counter struct {
	expected int
	visited  int
}

// state is the bookkeeping of one traversal. Every instance met by the value
// pass gets its own slot in counters, so two occurrences of equal or even
// identical records never share a count.
type state struct {
	pending  []pending
	owners   []owner
	counters []counter
}

func newState(root record.Record, rt *schema.RecordType) *state {
	st := &state{
		pending: make([]pending, 0, rt.NumField()),
	}
	st.pushFields(rt, "")
	st.owners = append(st.owners, owner{inst: root, typeName: rt.Name, id: unregistered})
	st.register(&st.owners[0], rt.NumField())
	return st
}

// pushFields pushes the fields of rt in reverse so that they pop in
// declaration order.
func (s *state) pushFields(rt *schema.RecordType, prefix string) {
	for i := len(rt.Fields) - 1; i >= 0; i-- {
		f := rt.Fields[i]
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		s.pending = append(s.pending, pending{field: f, path: path})
	}
}

func (s *state) popPending() pending {
	n := len(s.pending) - 1
	p := s.pending[n]
	s.pending = s.pending[:n]
	return p
}

func (s *state) top() *owner {
	return &s.owners[len(s.owners)-1]
}

func (s *state) pushOwner(inst record.Record, typeName string) {
	s.owners = append(s.owners, owner{inst: inst, typeName: typeName, id: unregistered})
}

func (s *state) register(o *owner, expected int) {
	o.id = len(s.counters)
	s.counters = append(s.counters, counter{expected: expected})
}

// done reports whether every field of o has been consumed.
func (s *state) done(o *owner) bool {
	c := s.counters[o.id]
	return c.visited == c.expected
}
