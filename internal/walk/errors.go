package walk

import (
	"errors"
	"fmt"

	"github.com/dbsmedya/fieldwalk/internal/schema"
)

var (
	// ErrNilRoot is wrapped by InvalidArgumentError when the root is nil.
	ErrNilRoot = errors.New("root record is nil")
	// ErrNilRegistry is wrapped by InvalidArgumentError when no registry is given.
	ErrNilRegistry = errors.New("registry is nil")
	// ErrNilOwner is wrapped by FieldAccessError when a field is read off a
	// nil sub-record.
	ErrNilOwner = errors.New("owning record is nil")
	// ErrOwnerMismatch is wrapped by FieldAccessError when the owning record
	// is not of the type that declares the field.
	ErrOwnerMismatch = errors.New("owning record has a different type")
)

// TypeResolutionError is returned when a composite field refers to a type
// that is not registered.
type TypeResolutionError = schema.TypeResolutionError

// InvalidArgumentError is returned by the constructors for unusable input.
type InvalidArgumentError struct {
	Arg string
	Err error
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %v", e.Arg, e.Err)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// ClassResolutionError is returned when the runtime type of an owning record
// cannot be found in the registry.
type ClassResolutionError struct {
	Type string
	Err  error
}

func (e *ClassResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve runtime type %q: %v", e.Type, e.Err)
}

func (e *ClassResolutionError) Unwrap() error {
	return e.Err
}

// FieldAccessError is returned when a field cannot be read off its owner.
type FieldAccessError struct {
	Field schema.Field
	Owner string // runtime type of the owner, empty if nil
	Err   error
}

func (e *FieldAccessError) Error() string {
	if e.Owner == "" {
		return fmt.Sprintf("cannot read field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("cannot read field %s from %s: %v", e.Field, e.Owner, e.Err)
}

func (e *FieldAccessError) Unwrap() error {
	return e.Err
}
