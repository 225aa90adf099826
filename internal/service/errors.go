// Package service implements the application rules on top of the
// repository layer: ownership and role checks, invoice derivation,
// status transitions and input validation. Handlers translate the
// sentinel errors below into HTTP status codes with errors.Is.
package service

import "errors"

var (
	// ErrNotFound marks a missing resource. It is checked before any
	// ownership decision so callers cannot probe for resource existence
	// through permission errors.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a valid identity acting outside its rights.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated marks a request with no verified identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrValidation marks malformed or inconsistent input.
	ErrValidation = errors.New("validation")
	// ErrDependency marks a reference to a resource that must exist for
	// the operation to proceed, e.g. booking a room that is not there.
	ErrDependency = errors.New("dependency")
)
