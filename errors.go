package evt3

import (
	"errors"

	"github.com/muthmann/evt3/internal/decodestate"
	"github.com/muthmann/evt3/internal/header"
	"github.com/muthmann/evt3/internal/wordreader"
)

// Fatal error kinds, per spec.md §7. All four abort the current
// decode session; DecodeBytes/DecodeStream/DecodeFile return the
// partial Result accumulated so far alongside the error.
var (
	// ErrTruncatedStream is returned when an odd trailing byte (or a
	// reader EOF mid-word) leaves an incomplete final word.
	ErrTruncatedStream = wordreader.ErrTruncated

	// ErrUnsupportedFormat is returned when a header "%format:" line
	// declares anything other than EVT3.
	ErrUnsupportedFormat = header.ErrUnsupportedFormat

	// ErrIO wraps an error surfaced unchanged from the underlying byte
	// source (anything other than a clean or truncated EOF).
	ErrIO = errors.New("evt3: io error")
)

// UnknownEventTypeError is returned when a word carries a reserved or
// unrecognized 4-bit type code. Code is that type code; WordIndex is
// the zero-based index of the offending word in the stream.
type UnknownEventTypeError = decodestate.UnknownEventTypeError
