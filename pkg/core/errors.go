package core

import "errors"

// Sentinel errors returned by Repository implementations.
var (
	// ErrNotFound is returned when the requested entity does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a delete is blocked by dependent rows,
	// e.g. a billboard still referenced by a category.
	ErrConflict = errors.New("conflict")

	// ErrForbidden is returned when a user acts on a store they do not own.
	ErrForbidden = errors.New("forbidden")
)
