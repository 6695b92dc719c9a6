package record

// Map is a record backed by a decoded document mapping. The type name is
// assigned by the caller since documents carry no type information.
type Map struct {
	TypeName string
	Values   map[string]any
}

// NewMap creates a Map record.
func NewMap(typeName string, values map[string]any) *Map {
	if values == nil {
		values = make(map[string]any)
	}
	return &Map{TypeName: typeName, Values: values}
}

// Type returns the assigned record type name.
func (m *Map) Type() string {
	return m.TypeName
}

// Get returns the value stored under field. Absent keys read as nil, the same
// as a field that was never set.
func (m *Map) Get(field string) (any, error) {
	return m.Values[field], nil
}
