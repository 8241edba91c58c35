// Package wordreader adapts a byte source into a lazy sequence of
// little-endian 16-bit EVT 3.0 words.
package wordreader

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrTruncated is returned by Next when an odd trailing byte is left
// over at end of stream — not enough bytes remain to form a full word.
var ErrTruncated = errors.New("wordreader: truncated trailing byte")

// Reader reads 16-bit little-endian words from an underlying
// io.Reader, forward-only and without per-word allocation.
type Reader struct {
	src io.Reader
	buf [2]byte
}

// New wraps src. Callers should pass a buffered reader (e.g.
// bufio.Reader) when src is a raw, unbuffered source such as a file,
// so that reads happen in reasonably sized chunks rather than two
// bytes at a time.
func New(src io.Reader) *Reader {
	return &Reader{src: src}
}

// Next reads the next word. ok is false at a clean end of stream (an
// even number of bytes were consumed and no more remain); err is
// ErrTruncated if exactly one trailing byte remains, or any other
// error surfaced unchanged from the underlying reader.
func (r *Reader) Next() (word uint16, ok bool, err error) {
	n, err := io.ReadFull(r.src, r.buf[:])
	switch {
	case err == nil:
		return binary.LittleEndian.Uint16(r.buf[:]), true, nil
	case errors.Is(err, io.EOF) && n == 0:
		return 0, false, nil
	case errors.Is(err, io.ErrUnexpectedEOF) && n == 1:
		return 0, false, ErrTruncated
	default:
		return 0, false, err
	}
}
