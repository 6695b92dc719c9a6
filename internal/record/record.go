// Package record provides the runtime instances walked by the flattener.
//
// A Record is a value of some declared record type. Documents decode into
// Map records; Go values are wrapped as Struct records.
package record

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotRecord is returned by Bind for values that cannot own fields.
var ErrNotRecord = errors.New("value is not a record")

// Record is an instance of a declared record type.
type Record interface {
	// Type returns the record type name used for registry lookups.
	Type() string
	// Get returns the value stored under a declared field name.
	Get(field string) (any, error)
}

// Bind wraps v as a Record of the declared type typeName. A nil value (or a
// nil pointer) binds to a nil Record without error; it is the caller's job
// to reject reads from it.
func Bind(typeName string, v any) (Record, error) {
	if v == nil {
		return nil, nil
	}

	switch val := v.(type) {
	case Record:
		return val, nil
	case map[string]any:
		return &Map{TypeName: typeName, Values: val}, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		s, err := NewStruct(v)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	return nil, fmt.Errorf("%w: %T cannot be bound to %s", ErrNotRecord, v, typeName)
}
