package store

import "errors"

// Error kinds surfaced by the stores. Callers branch with errors.Is;
// the wrapped message carries the detail.
var (
	// ErrValidation marks malformed or out-of-range input, such as a
	// negative quantity or a non-positive target.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicate marks creation of an already-existing named entity.
	ErrDuplicate = errors.New("already exists")

	// ErrNotFound marks a reference to an unknown item, list,
	// identifier, or date.
	ErrNotFound = errors.New("not found")

	// ErrPersistence marks a store write that did not commit.
	ErrPersistence = errors.New("write did not commit")
)
