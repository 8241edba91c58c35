// Package evt3 decodes Prophesee EVT 3.0 raw event-camera streams: a
// 16-bit, stateful, vectorized binary encoding in which each word
// either updates decoder state (Y, base-X, time high/low) or emits
// one or many change-detection events reconstructed from that state.
package evt3

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muthmann/evt3/internal/decodestate"
	"github.com/muthmann/evt3/internal/events"
	"github.com/muthmann/evt3/internal/header"
	"github.com/muthmann/evt3/internal/wordreader"
)

// streamBufferSize is the read granularity used when driving the
// decoder from a file or other streaming source (spec.md §5).
const streamBufferSize = 64 * 1024

// Decoder decodes EVT 3.0 streams. It holds only configuration (sensor
// dimensions and capacity hint); each call to Decode, DecodeStream, or
// DecodeFile runs a fresh session with its own state and buffers.
// Independent Decoders never share state and may run concurrently on
// independent streams.
type Decoder struct {
	width, height int
	capacityHint  int
}

// NewDecoder creates a decoder that will use width/height as the
// sensor dimensions unless the stream's header overrides them with a
// "%geometry:" line. Pass 0 for either to leave it unset until (or
// unless) the header provides a value.
func NewDecoder(width, height int) *Decoder {
	return &Decoder{width: width, height: height, capacityHint: events.DefaultCapacity}
}

// WithCapacityHint overrides the initial per-column capacity of the
// output buffers (spec.md §9's "with_capacity hint"). It returns d for
// chaining.
func (d *Decoder) WithCapacityHint(n int) *Decoder {
	if n > 0 {
		d.capacityHint = n
	}
	return d
}

// Decode decodes a complete in-memory byte buffer.
func (d *Decoder) Decode(raw []byte) (*Result, error) {
	br := bufio.NewReader(bytes.NewReader(raw))
	return d.decodeFrom(br)
}

// DecodeStream streams from r until EOF.
func (d *Decoder) DecodeStream(r io.Reader) (*Result, error) {
	br := bufio.NewReaderSize(r, streamBufferSize)
	return d.decodeFrom(br)
}

// DecodeFile opens path and decodes it.
func (d *Decoder) DecodeFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return newResult(d.width, d.height, events.NewCD(0), events.NewTrigger(0), Diagnostics{}), fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	return d.DecodeStream(f)
}

func (d *Decoder) decodeFrom(br *bufio.Reader) (*Result, error) {
	width, height := d.width, d.height

	hdr, err := header.Skip(br)
	if err != nil {
		return newResult(width, height, events.NewCD(0), events.NewTrigger(0), Diagnostics{}), err
	}
	if hdr.Width > 0 {
		width = hdr.Width
	}
	if hdr.Height > 0 {
		height = hdr.Height
	}

	wr := wordreader.New(br)
	st := decodestate.New()
	cd := events.NewCD(d.capacityHint)
	tr := events.NewTrigger(d.capacityHint)

	for idx := 0; ; idx++ {
		word, ok, err := wr.Next()
		if err != nil {
			diag := diagnosticsFrom(st, false)
			if errors.Is(err, wordreader.ErrTruncated) {
				return newResult(width, height, cd, tr, diag), ErrTruncatedStream
			}
			return newResult(width, height, cd, tr, diag), fmt.Errorf("%w: %w", ErrIO, err)
		}
		if !ok {
			break
		}
		if err := st.Dispatch(word, idx, cd, tr); err != nil {
			diag := diagnosticsFrom(st, true)
			return newResult(width, height, cd, tr, diag), err
		}
	}

	return newResult(width, height, cd, tr, diagnosticsFrom(st, false)), nil
}

func diagnosticsFrom(st *decodestate.State, unknownEvent bool) Diagnostics {
	d := Diagnostics{
		TimeHighLoops:    st.TimeHighLoops,
		DroppedBeforeY:   st.DroppedBeforeY,
		OutOfOrderEvents: st.OutOfOrderEvents,
	}
	if unknownEvent {
		d.UnknownEvents = 1
	}
	return d
}

// DecodeBytes decodes a complete in-memory byte buffer using the
// given sensor dimensions as defaults (0 means unset).
func DecodeBytes(raw []byte, width, height int) (*Result, error) {
	return NewDecoder(width, height).Decode(raw)
}

// DecodeStream streams from r until EOF, using the given sensor
// dimensions as defaults (0 means unset).
func DecodeStream(r io.Reader, width, height int) (*Result, error) {
	return NewDecoder(width, height).DecodeStream(r)
}

// DecodeFile opens path and decodes it, using the given sensor
// dimensions as defaults (0 means unset).
func DecodeFile(path string, width, height int) (*Result, error) {
	return NewDecoder(width, height).DecodeFile(path)
}
