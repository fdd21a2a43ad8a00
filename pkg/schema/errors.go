package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("schema not found")
	ErrUnresolvedReference = errors.New("unresolved schema reference")
	ErrCircularReference   = errors.New("circular schema reference")
	ErrInvalidInheritance  = errors.New("schema can only inherit from an object definition")
	ErrInvalidVersion      = errors.New("invalid schema version")
)

// NotFoundError is returned when a root schema is not registered.
type NotFoundError struct {
	Name    string
	Version Version
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find schema for %q (version: %s)", e.Name, e.Version)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// UnresolvedReferenceError is returned when none of the reference candidates is registered.
type UnresolvedReferenceError struct {
	Name     string
	Versions []Version
}

func (e *UnresolvedReferenceError) Error() string {
	tried := make([]string, 0, len(e.Versions))
	for _, v := range e.Versions {
		tried = append(tried, v.String())
	}
	return fmt.Sprintf("could not resolve schema %q; tried versions: [%s]", e.Name, strings.Join(tried, ", "))
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}

// CircularReferenceError lists the objects visited until the cycle closed.
type CircularReferenceError struct {
	Chain []string
}

func (e *CircularReferenceError) Error() string {
	return "circular reference: " + strings.Join(e.Chain, " -> ")
}

func (e *CircularReferenceError) Unwrap() error {
	return ErrCircularReference
}
