package schema

import "fmt"

// TypeResolutionError is returned when a composite type name does not name a
// registered record type.
type TypeResolutionError struct {
	Name  string // the name that was looked up
	Field *Field // the field that referenced it, if any
}

func (e *TypeResolutionError) Error() string {
	if e.Field != nil {
		return fmt.Sprintf("cannot resolve type %q of field %s", e.Name, e.Field)
	}
	return fmt.Sprintf("cannot resolve type %q", e.Name)
}

// DefinitionError is returned when a record type declaration is malformed.
type DefinitionError struct {
	Type    string
	Message string
}

func (e *DefinitionError) Error() string {
	if e.Type == "" {
		return "invalid record type: " + e.Message
	}
	return fmt.Sprintf("invalid record type %q: %s", e.Type, e.Message)
}
