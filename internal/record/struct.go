package record

import (
	"fmt"
	"reflect"

	"github.com/dbsmedya/fieldwalk/internal/schema"
)

// Struct is a record backed by a Go struct value. Field names follow
// schema.DeclaredName so that a Struct can be walked against a schema built
// with schema.Registry.Derive.
type Struct struct {
	value reflect.Value
	index map[string]int
}

// NewStruct wraps a struct or a non-nil pointer to a struct.
func NewStruct(v any) (*Struct, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a struct", ErrNotRecord, v)
	}
	return &Struct{value: rv}, nil
}

// Type returns the qualified Go type name, e.g. "example.com/shop.Order".
func (s *Struct) Type() string {
	return schema.TypeName(s.value.Type())
}

// Get returns the value of the struct field declared as field. Nil pointers
// read as nil and non-nil pointers are dereferenced. An interface field
// yields its dynamic value as is, so an error stays an error.
func (s *Struct) Get(field string) (any, error) {
	if s.index == nil {
		s.buildIndex()
	}
	i, ok := s.index[field]
	if !ok {
		return nil, fmt.Errorf("type %s has no field %q", s.Type(), field)
	}

	fv := s.value.Field(i)
	for fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Interface {
		if fv.IsNil() {
			return nil, nil
		}
		if fv.Kind() == reflect.Interface {
			return fv.Elem().Interface(), nil
		}
		fv = fv.Elem()
	}
	return fv.Interface(), nil
}

func (s *Struct) buildIndex() {
	t := s.value.Type()
	s.index = make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name, ok := schema.DeclaredName(t.Field(i)); ok {
			s.index[name] = i
		}
	}
}
