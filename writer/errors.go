package writer

import "errors"

var (
	// ErrWriterNotFound is returned when Get is called with a name or
	// extension that no Writer has been registered under.
	ErrWriterNotFound = errors.New("writer: not found")

	// ErrInvalidFieldOrder indicates a CSV field order string contains
	// something other than a permutation of "x", "y", "p", "t".
	ErrInvalidFieldOrder = errors.New("writer: invalid field order")
)
