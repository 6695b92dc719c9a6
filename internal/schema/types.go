package schema

import (
	"fmt"
	"strings"
)

// ArrayPrefix marks a slice or array declared type, e.g. "[]Line".
const ArrayPrefix = "[]"

// FieldKind tells whether a field is emitted as a leaf value or expanded.
type FieldKind int

const (
	KindScalar    FieldKind = iota // leaf value
	KindComposite                  // reference to another record type
)

// String returns a human-readable representation of the FieldKind.
func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Field describes one declared field of a record type. Fields are created
// by the Registry and never modified afterwards.
type Field struct {
	Name  string    // declared field name
	Type  string    // declared type name
	Owner string    // record type declaring the field
	Index int       // position in the owner's declaration order
	Kind  FieldKind // classification of Type at definition time
}

// IsScalar reports whether the field is a leaf.
func (f Field) IsScalar() bool {
	return f.Kind == KindScalar
}

// IsArray reports whether the declared type is a slice or array type.
func (f Field) IsArray() bool {
	return strings.HasPrefix(f.Type, ArrayPrefix)
}

// ElemType returns the declared type with exactly one array level removed.
// "[]Line" becomes "Line"; "[][]Line" becomes "[]Line", which no record type
// can be registered under.
func (f Field) ElemType() string {
	return strings.TrimPrefix(f.Type, ArrayPrefix)
}

// String returns "Owner.name type".
func (f Field) String() string {
	return fmt.Sprintf("%s.%s %s", f.Owner, f.Name, f.Type)
}

// FieldSpec is the input for declaring a field.
type FieldSpec struct {
	Name string
	Type string
}

// RecordType is a named, ordered collection of fields.
type RecordType struct {
	Name   string
	Fields []Field
}

// NumField returns the number of declared fields.
func (t *RecordType) NumField() int {
	return len(t.Fields)
}

// Field returns the declared field with the given name.
func (t *RecordType) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the declared field names in order.
func (t *RecordType) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}
