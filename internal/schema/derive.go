package schema

import (
	"reflect"
	"strings"
)

// TagName is the struct tag read by Derive. `fieldwalk:"name"` renames a
// field and `fieldwalk:"-"` skips it.
const TagName = "fieldwalk"

// TypeName returns the declared type name used for a Go type: pointers are
// dereferenced, slices and arrays become "[]" + element, named types are
// qualified with their import path ("time.Time", "example.com/shop.Order").
func TypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return TypeName(t.Elem())
	case reflect.Slice, reflect.Array:
		return ArrayPrefix + TypeName(t.Elem())
	}

	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// DeclaredName returns the field name Derive records for a struct field.
// The second result is false for unexported or skipped fields.
func DeclaredName(sf reflect.StructField) (string, bool) {
	if !sf.IsExported() {
		return "", false
	}
	tag := sf.Tag.Get(TagName)
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return sf.Name, true
}

// Derive registers the struct type of v and every struct type reachable
// through its exported fields. v may be a value, a pointer or a reflect.Type.
// Deriving an already registered type returns the existing declaration.
func (r *Registry) Derive(v any) (*RecordType, error) {
	if v == nil {
		return nil, &DefinitionError{Message: "cannot derive from nil"}
	}
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	return r.DeriveType(t)
}

// DeriveType is Derive for a reflect.Type.
func (r *Registry) DeriveType(t reflect.Type) (*RecordType, error) {
	t = indirect(t)
	if t.Kind() != reflect.Struct {
		return nil, &DefinitionError{Type: t.String(), Message: "only struct types can be derived"}
	}
	rootName := TypeName(t)
	if r.IsScalar(rootName) {
		return nil, &DefinitionError{Type: rootName, Message: "name is classified as a scalar type"}
	}

	// Breadth-first so that a type is registered before the types it uses.
	queue := []reflect.Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		name := TypeName(cur)
		if r.Has(name) {
			continue
		}

		specs, nested := r.structSpecs(cur)
		if _, err := r.Define(name, specs...); err != nil {
			return nil, err
		}
		queue = append(queue, nested...)
	}

	return r.Lookup(rootName)
}

// structSpecs builds field specs for a struct type and returns the named
// struct types its composite fields refer to.
func (r *Registry) structSpecs(t reflect.Type) ([]FieldSpec, []reflect.Type) {
	var specs []FieldSpec
	var nested []reflect.Type

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, ok := DeclaredName(sf)
		if !ok {
			continue
		}

		elem := elemType(sf.Type)
		elemName := TypeName(elem)
		switch {
		case elem.PkgPath() != "" && (isBasicKind(elem.Kind()) || isOpaqueKind(elem.Kind())) && !r.IsScalar(elemName):
			// Named basic types (enums) and named maps, interfaces, funcs
			// and chans are leaves
			r.classifier.AddScalar(elemName)
		case elem.Kind() == reflect.Struct && elem.Name() == "" && !r.IsScalar(elemName):
			// Anonymous structs have no name to register under
			r.classifier.AddScalar(elemName)
		case elem.Kind() == reflect.Struct && elem.Name() != "" && !r.IsScalar(elemName):
			nested = append(nested, elem)
		}

		specs = append(specs, FieldSpec{Name: name, Type: TypeName(sf.Type)})
	}

	return specs, nested
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// elemType strips pointers, slices and arrays.
func elemType(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return t
		}
	}
}

func isBasicKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// isOpaqueKind reports kinds that carry no declared fields.
func isOpaqueKind(k reflect.Kind) bool {
	switch k {
	case reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
