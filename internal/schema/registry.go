package schema

import (
	"errors"

	"github.com/elliotchance/orderedmap/v2"
)

// Registry maps record type names to their declarations, in declaration
// order. It is read-only once built and safe to share between walkers.
type Registry struct {
	types      *orderedmap.OrderedMap[string, *RecordType]
	classifier *Classifier
}

// NewRegistry creates an empty registry. Extra scalar prefixes are passed to
// the Classifier.
func NewRegistry(scalarPrefixes ...string) *Registry {
	return &Registry{
		types:      orderedmap.NewOrderedMap[string, *RecordType](),
		classifier: NewClassifier(scalarPrefixes...),
	}
}

// Classifier returns the classifier used for field kinds.
func (r *Registry) Classifier() *Classifier {
	return r.classifier
}

// IsScalar reports whether typeName is a leaf type.
func (r *Registry) IsScalar(typeName string) bool {
	return r.classifier.IsScalar(typeName)
}

// DefineScalar registers a user-defined leaf type such as an enum.
// Scalars must be declared before the record types that use them.
func (r *Registry) DefineScalar(name string) error {
	if name == "" {
		return &DefinitionError{Message: "scalar name is empty"}
	}
	if r.Has(name) {
		return &DefinitionError{Type: name, Message: "already declared as a record type"}
	}
	r.classifier.AddScalar(name)
	return nil
}

// Define registers a record type with its fields in declaration order.
func (r *Registry) Define(name string, specs ...FieldSpec) (*RecordType, error) {
	if name == "" {
		return nil, &DefinitionError{Message: "type name is empty"}
	}
	if r.Has(name) {
		return nil, &DefinitionError{Type: name, Message: "already declared"}
	}
	if r.classifier.IsScalar(name) {
		return nil, &DefinitionError{Type: name, Message: "name is classified as a scalar type"}
	}

	rt := &RecordType{
		Name:   name,
		Fields: make([]Field, 0, len(specs)),
	}
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return nil, &DefinitionError{Type: name, Message: "field name is empty"}
		}
		if seen[spec.Name] {
			return nil, &DefinitionError{Type: name, Message: "duplicate field " + spec.Name}
		}
		if spec.Type == "" {
			return nil, &DefinitionError{Type: name, Message: "field " + spec.Name + " has no type"}
		}
		seen[spec.Name] = true

		rt.Fields = append(rt.Fields, Field{
			Name:  spec.Name,
			Type:  spec.Type,
			Owner: name,
			Index: i,
			Kind:  r.classifier.Kind(spec.Type),
		})
	}

	r.types.Set(name, rt)
	return rt, nil
}

// MustDefine is like Define but panics on error. Intended for static schemas.
func (r *Registry) MustDefine(name string, specs ...FieldSpec) *RecordType {
	rt, err := r.Define(name, specs...)
	if err != nil {
		panic(err)
	}
	return rt
}

// Has reports whether a record type is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.types.Get(name)
	return ok
}

// Lookup returns the record type registered under name.
func (r *Registry) Lookup(name string) (*RecordType, error) {
	rt, ok := r.types.Get(name)
	if !ok {
		return nil, &TypeResolutionError{Name: name}
	}
	return rt, nil
}

// Resolve returns the record type a composite field expands into. One array
// level is stripped from the declared type before lookup.
func (r *Registry) Resolve(f Field) (*RecordType, error) {
	elem := f.ElemType()
	rt, ok := r.types.Get(elem)
	if !ok {
		return nil, &TypeResolutionError{Name: elem, Field: &f}
	}
	return rt, nil
}

// Len returns the number of registered record types.
func (r *Registry) Len() int {
	return r.types.Len()
}

// Names returns the registered type names in declaration order.
func (r *Registry) Names() []string {
	return r.types.Keys()
}

// Types returns the registered record types in declaration order.
func (r *Registry) Types() []*RecordType {
	out := make([]*RecordType, 0, r.types.Len())
	for el := r.types.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Unresolved returns a TypeResolutionError for every composite field whose
// type is not registered.
func (r *Registry) Unresolved() []*TypeResolutionError {
	var out []*TypeResolutionError
	for el := r.types.Front(); el != nil; el = el.Next() {
		for _, f := range el.Value.Fields {
			if f.IsScalar() {
				continue
			}
			if _, err := r.Resolve(f); err != nil {
				var tre *TypeResolutionError
				if errors.As(err, &tre) {
					out = append(out, tre)
				}
			}
		}
	}
	return out
}

// Check returns all unresolved references joined into one error, or nil.
func (r *Registry) Check() error {
	unresolved := r.Unresolved()
	if len(unresolved) == 0 {
		return nil
	}
	errs := make([]error, len(unresolved))
	for i, e := range unresolved {
		errs[i] = e
	}
	return errors.Join(errs...)
}
