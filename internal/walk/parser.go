package walk

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/dbsmedya/fieldwalk/internal/record"
	"github.com/dbsmedya/fieldwalk/internal/schema"
)

// Parser flattens one root record. Results are computed on first use and
// cached. A failed computation is not retried: the traversal state is
// consumed, so later calls return the same error.
type Parser struct {
	reg      *schema.Registry
	root     record.Record
	rootType *schema.RecordType
	state    *state

	fields    []schema.Field
	paths     []string
	fieldsErr error
	walked    bool

	values    []any
	valuesErr error
	extracted bool
}

// New creates a Parser for root. The root's record type must be registered.
func New(reg *schema.Registry, root record.Record) (*Parser, error) {
	if reg == nil {
		return nil, &InvalidArgumentError{Arg: "registry", Err: ErrNilRegistry}
	}
	if root == nil {
		return nil, &InvalidArgumentError{Arg: "root", Err: ErrNilRoot}
	}

	rt, err := reg.Lookup(root.Type())
	if err != nil {
		return nil, err
	}

	return &Parser{
		reg:      reg,
		root:     root,
		rootType: rt,
		state:    newState(root, rt),
	}, nil
}

// NewFromValue creates a Parser for a Go struct, a pointer to one, or a
// record.Record.
func NewFromValue(reg *schema.Registry, v any) (*Parser, error) {
	root, err := record.Bind("", v)
	if err != nil {
		return nil, &InvalidArgumentError{Arg: "root", Err: err}
	}
	if root == nil {
		return nil, &InvalidArgumentError{Arg: "root", Err: ErrNilRoot}
	}
	return New(reg, root)
}

// RootType returns the record type of the root.
func (p *Parser) RootType() *schema.RecordType {
	return p.rootType
}

// Fields returns every field descriptor reachable from the root, in walk
// order. A composite field precedes the fields of its record type.
func (p *Parser) Fields() ([]schema.Field, error) {
	if !p.walked {
		p.fields, p.paths, p.fieldsErr = p.walkFields()
		p.walked = true
		if p.fieldsErr != nil {
			p.fields, p.paths = nil, nil
		}
	}
	return p.fields, p.fieldsErr
}

// FieldNames returns the names of the scalar descriptors, in walk order.
func (p *Parser) FieldNames() ([]string, error) {
	fields, err := p.Fields()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.IsScalar() {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

// Paths returns the dotted path of each scalar descriptor, e.g.
// "customer.address.city". Paths are unique within one root type and line
// up with Values.
func (p *Parser) Paths() ([]string, error) {
	fields, err := p.Fields()
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(fields))
	for i, f := range fields {
		if f.IsScalar() {
			paths = append(paths, p.paths[i])
		}
	}
	return paths, nil
}

// Entry is one walked descriptor with its dotted path.
type Entry struct {
	Field schema.Field
	Path  string
}

// Depth returns the nesting level of the entry, 0 for root fields.
func (e Entry) Depth() int {
	return strings.Count(e.Path, ".")
}

// Entries returns every descriptor, scalar or composite, with its path.
func (p *Parser) Entries() ([]Entry, error) {
	fields, err := p.Fields()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(fields))
	for i, f := range fields {
		entries[i] = Entry{Field: f, Path: p.paths[i]}
	}
	return entries, nil
}

// Values returns one value per scalar descriptor, in the order of
// FieldNames.
func (p *Parser) Values() ([]any, error) {
	if !p.extracted {
		fields, err := p.Fields()
		if err != nil {
			return nil, err
		}
		p.values, p.valuesErr = p.extractValues(fields)
		p.extracted = true
		if p.valuesErr != nil {
			p.values = nil
		}
	}
	return p.values, p.valuesErr
}

// StringValues returns the text form of each value. nil becomes "".
func (p *Parser) StringValues() ([]string, error) {
	values, err := p.Values()
	if err != nil {
		return nil, err
	}

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = ToString(v)
	}
	return out, nil
}

// ToString converts a leaf value to text.
func ToString(v any) string {
	if v == nil {
		return ""
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
