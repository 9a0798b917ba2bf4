package store

import "errors"

var (
	// ErrNotFound is returned when a document doesn't exist or is erased.
	ErrNotFound = errors.New("openalms: document not found")

	// ErrIDConflict is returned when an insert loses the identifier race.
	// The caller may re-allocate and retry.
	ErrIDConflict = errors.New("openalms: identifier already in use")

	// ErrDuplicateValue is returned when a unique field constraint is violated.
	ErrDuplicateValue = errors.New("openalms: duplicate value for unique field")

	// ErrAllocExhausted is returned when identifier allocation hits its retry
	// ceiling without finding an unused identifier.
	ErrAllocExhausted = errors.New("openalms: identifier allocation attempts exhausted")
)
