package schema

import "strings"

// predeclared lists the Go predeclared types that are always leaves.
var predeclared = map[string]bool{
	"bool":       true,
	"string":     true,
	"int":        true,
	"int8":       true,
	"int16":      true,
	"int32":      true,
	"int64":      true,
	"uint":       true,
	"uint8":      true,
	"uint16":     true,
	"uint32":     true,
	"uint64":     true,
	"uintptr":    true,
	"float32":    true,
	"float64":    true,
	"complex64":  true,
	"complex128": true,
	"byte":       true,
	"rune":       true,
	"error":      true,
	"any":        true,
}

// opaquePrefixes start the names of unnamed types that have no fields to
// expand.
var opaquePrefixes = []string{"map[", "interface {", "func(", "chan ", "<-chan "}

// Classifier decides whether a declared type name is a scalar leaf.
//
// A type is scalar when, after removing array and pointer markers, it is
// a predeclared type (including error and any), an unnamed map, interface,
// func or chan type, a registered scalar name, a name starting with one of
// the configured prefixes, or a type qualified with a standard library import
// path ("time.Time", "net/netip.Addr"). Everything else is composite.
type Classifier struct {
	prefixes []string
	scalars  map[string]bool
}

// NewClassifier creates a Classifier with extra scalar name prefixes, e.g.
// "github.com/shopspring/decimal.".
func NewClassifier(prefixes ...string) *Classifier {
	return &Classifier{
		prefixes: append([]string(nil), prefixes...),
		scalars:  make(map[string]bool),
	}
}

// AddScalar marks a user-defined type name as a leaf.
func (c *Classifier) AddScalar(name string) {
	c.scalars[name] = true
}

// IsScalar reports whether typeName is a leaf type.
func (c *Classifier) IsScalar(typeName string) bool {
	name := baseName(typeName)
	if name == "" {
		return false
	}

	if predeclared[name] || c.scalars[name] {
		return true
	}
	for _, p := range opaquePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	for _, p := range c.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return IsStandardLibrary(name)
}

// Kind classifies typeName.
func (c *Classifier) Kind(typeName string) FieldKind {
	if c.IsScalar(typeName) {
		return KindScalar
	}
	return KindComposite
}

// IsStandardLibrary reports whether a qualified type name belongs to the Go
// standard library. Standard library import paths never contain a dot in
// their first element; module paths always do.
func IsStandardLibrary(qualified string) bool {
	name := qualified
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return false
	}

	pkg := name[:dot]
	first := pkg
	if i := strings.IndexByte(pkg, '/'); i >= 0 {
		first = pkg[:i]
	}
	return first != "" && !strings.Contains(first, ".") && !strings.ContainsAny(first, " {}()*")
}

// baseName strips every leading array and pointer marker.
func baseName(typeName string) string {
	name := strings.TrimSpace(typeName)
	for {
		switch {
		case strings.HasPrefix(name, ArrayPrefix):
			name = name[len(ArrayPrefix):]
		case strings.HasPrefix(name, "*"):
			name = name[1:]
		default:
			return name
		}
	}
}
