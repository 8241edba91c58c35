// Package decodestate implements the EVT 3.0 state machine: the
// per-word dispatch that mutates decoder state and emits
// change-detection and trigger events into columnar buffers.
package decodestate

import (
	"fmt"

	"github.com/muthmann/evt3/internal/events"
	"github.com/muthmann/evt3/internal/timestamp"
)

// Type codes, per spec.md §3.
const (
	typeAddrY      = 0x0
	typeAddrX      = 0x2
	typeVectBaseX  = 0x3
	typeVect12     = 0x4
	typeVect8      = 0x5
	typeTimeLow    = 0x6
	typeTimeHigh   = 0x8
	typeExtTrigger = 0xA
)

const maxCoord = 1 << 11 // 11-bit x/y space

// UnknownEventTypeError is returned when a word carries a reserved or
// unrecognized type code.
type UnknownEventTypeError struct {
	Code      uint8
	WordIndex int
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("decodestate: unknown event type 0x%X at word %d", e.Code, e.WordIndex)
}

// State is one decoder session's mutable state, per spec.md §3.
type State struct {
	CurY          uint16
	BaseX         uint16
	VectPolarity  uint8
	TimeLow       uint16
	TimeHigh      uint32
	TimeHighLoops uint32

	haveY               bool
	haveTimeHigh        bool
	lastTimeHighPayload uint16

	lastEmittedTimestamp uint64
	haveEmitted          bool

	// Diagnostics, per spec.md §4.6.
	DroppedBeforeY   uint64
	OutOfOrderEvents uint64
}

// New creates a fresh decoder session.
func New() *State {
	return &State{}
}

// currentTime combines TimeHigh/TimeLow into the session's
// reconstructed microsecond timestamp.
func (s *State) currentTime() uint64 {
	return timestamp.Current(s.TimeHigh, s.TimeLow)
}

// noteEmission tracks the out-of-order diagnostic counter: the
// decoder never rejects a decreasing timestamp, only counts it.
func (s *State) noteEmission(t uint64) {
	if s.haveEmitted && t < s.lastEmittedTimestamp {
		s.OutOfOrderEvents++
	}
	s.lastEmittedTimestamp = t
	s.haveEmitted = true
}

// Dispatch processes one word, mutating s and appending to cd/tr as
// required. idx is the zero-based index of this word in the stream,
// used only for error reporting.
func (s *State) Dispatch(word uint16, idx int, cd *events.CD, tr *events.Trigger) error {
	code := uint8(word >> 12)
	payload := word & 0x0FFF

	switch code {
	case typeAddrY:
		s.CurY = payload & 0x7FF
		s.haveY = true

	case typeAddrX:
		x := payload & 0x7FF
		p := uint8((payload >> 11) & 1)
		if s.haveY && s.haveTimeHigh {
			t := s.currentTime()
			cd.Append(x, s.CurY, p, t)
			s.noteEmission(t)
		} else {
			s.DroppedBeforeY++
		}

	case typeVectBaseX:
		s.BaseX = payload & 0x7FF
		s.VectPolarity = uint8((payload >> 11) & 1)

	case typeVect12:
		s.expandVector(uint32(payload&0x0FFF), 12, cd)

	case typeVect8:
		s.expandVector(uint32(payload&0x00FF), 8, cd)

	case typeTimeLow:
		s.TimeLow = payload & 0x0FFF

	case typeTimeHigh:
		p := payload & 0x0FFF
		var prev *uint16
		if s.haveTimeHigh {
			prev = &s.lastTimeHighPayload
		}
		newHigh, newLoops := timestamp.Reconstruct(prev, s.TimeHighLoops, p)
		s.TimeHigh = newHigh
		s.TimeHighLoops = newLoops
		s.lastTimeHighPayload = p
		s.haveTimeHigh = true

	case typeExtTrigger:
		value := uint8(payload & 0x1)
		id := uint8((payload >> 8) & 0xF)
		if s.haveTimeHigh {
			t := s.currentTime()
			tr.Append(t, id, value)
			s.noteEmission(t)
		}

	default:
		return &UnknownEventTypeError{Code: code, WordIndex: idx}
	}
	return nil
}

// expandVector emits up to bits CD events starting at the current
// BaseX, one per set bit in mask (bit k corresponds to BaseX+k), then
// advances BaseX by bits so a following VECT_* word continues where
// this one left off. Bits that would push x past the 11-bit coordinate
// space are silently skipped, per spec.md §3 invariants.
func (s *State) expandVector(mask uint32, bits int, cd *events.CD) {
	for k := 0; k < bits; k++ {
		if mask>>uint(k)&1 == 0 {
			continue
		}
		x := uint32(s.BaseX) + uint32(k)
		if x >= maxCoord {
			continue
		}
		if s.haveY && s.haveTimeHigh {
			t := s.currentTime()
			cd.Append(uint16(x), s.CurY, s.VectPolarity, t)
			s.noteEmission(t)
		} else {
			s.DroppedBeforeY++
		}
	}
	s.BaseX += uint16(bits)
}
