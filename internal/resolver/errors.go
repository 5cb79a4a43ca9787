package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrDanglingSourceReference matches an integration that names a source
	// missing from the registry.
	ErrDanglingSourceReference = errors.New("dangling source reference")
	// ErrDuplicateSource matches a registry with two sources of the same name.
	ErrDuplicateSource = errors.New("duplicate source name")
)

// DanglingSourceReferenceError identifies the integration and the source
// name that could not be resolved.
type DanglingSourceReferenceError struct {
	Integration string
	Source      string
}

func (e *DanglingSourceReferenceError) Error() string {
	return fmt.Sprintf("integration %q: unknown source %q", e.Integration, e.Source)
}

func (e *DanglingSourceReferenceError) Is(target error) bool {
	return target == ErrDanglingSourceReference
}

// DuplicateSourceError names a source declared more than once.
type DuplicateSourceError struct {
	Name string
}

func (e *DuplicateSourceError) Error() string {
	return fmt.Sprintf("source %q declared more than once", e.Name)
}

func (e *DuplicateSourceError) Is(target error) bool {
	return target == ErrDuplicateSource
}
