// Package writer turns a decoded evt3.Result into the two collaborator
// output formats named in spec.md §6: a human-readable CSV and a
// compact binary dump. Writers are looked up through Registry, a
// dual-keyed registry adapted from the teacher codec package's
// Codec/Registry split (there, codecs were keyed by name and DICOM
// transfer-syntax UID; here, writers are keyed by name and file
// extension).
package writer

import (
	"io"

	"github.com/muthmann/evt3"
)

// Writer is the interface implemented by each output format.
type Writer interface {
	// Name is the writer's registry name, e.g. "csv".
	Name() string

	// Ext is the conventional file extension for this format,
	// including the leading dot, e.g. ".csv".
	Ext() string

	// Write serializes res to w according to opts.
	Write(w io.Writer, res *evt3.Result, opts Options) error
}

// Options carries per-write configuration. Fields not meaningful to a
// given Writer are ignored by it.
type Options struct {
	// FieldOrder is a permutation of the letters "x", "y", "p", "t"
	// (e.g. "x,y,p,t") controlling CSV column order. Ignored by
	// Binary.
	FieldOrder string

	// Header, when true, emits a "%geometry:W,H" line before the
	// event rows if the Result's sensor width and height are both
	// known (greater than 0). Ignored by Binary, which always carries width/height
	// in its fixed header.
	Header bool
}
