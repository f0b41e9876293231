package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrMissingISBN indicates a book without an identifier was offered for storage.
	ErrMissingISBN = errors.New("book has no ISBN")

	// ErrUnresolvableOffset indicates a match offset fell before the first line
	// of its span. Line offsets always start at 0, so this is an internal fault.
	ErrUnresolvableOffset = errors.New("match offset precedes span start")

	// ErrUnsupportedBackend indicates an unknown storage backend in settings.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)
