package evt3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func wordsToBytes(words []uint16) []byte {
	buf := make([]byte, len(words)*2)
	for i, w := range words {
		binary.LittleEndian.PutUint16(buf[i*2:], w)
	}
	return buf
}

// Scenario A (spec.md §8): one event after state priming.
func TestDecodeOneEventAfterPriming(t *testing.T) {
	words := []uint16{0x8000, 0x0000, 0x6000, 0x2000}
	res, err := DecodeBytes(wordsToBytes(words), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CD.Len() != 1 {
		t.Fatalf("CD.Len() = %d, want 1", res.CD.Len())
	}
	if res.CD.X[0] != 0 || res.CD.Y[0] != 0 || res.CD.Polarity[0] != 0 || res.CD.Timestamp[0] != 0 {
		t.Errorf("event = {%d %d %d %d}, want {0 0 0 0}", res.CD.X[0], res.CD.Y[0], res.CD.Polarity[0], res.CD.Timestamp[0])
	}
}

// Scenario B: VECT_12 expansion.
func TestDecodeVect12Expansion(t *testing.T) {
	words := []uint16{0x8000, 0x0005, 0x6000, 0x300A, 0x4007}
	res, err := DecodeBytes(wordsToBytes(words), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CD.Len() != 3 {
		t.Fatalf("CD.Len() = %d, want 3", res.CD.Len())
	}
	wantX := []uint16{10, 11, 12}
	for i, x := range wantX {
		if res.CD.X[i] != x || res.CD.Y[i] != 5 || res.CD.Polarity[i] != 0 || res.CD.Timestamp[i] != 0 {
			t.Errorf("event[%d] = {%d %d %d %d}, want {%d 5 0 0}", i, res.CD.X[i], res.CD.Y[i], res.CD.Polarity[i], res.CD.Timestamp[i], x)
		}
	}
}

// Scenario C: TIME_HIGH wraparound.
func TestDecodeTimeHighWraparound(t *testing.T) {
	words := []uint16{0x8FFF, 0x8000}
	res, err := DecodeBytes(wordsToBytes(words), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Diagnostics.TimeHighLoops != 1 {
		t.Errorf("TimeHighLoops = %d, want 1", res.Diagnostics.TimeHighLoops)
	}
}

// Scenario D: unknown code is fatal.
func TestDecodeUnknownEventType(t *testing.T) {
	words := []uint16{0x7000}
	_, err := DecodeBytes(wordsToBytes(words), 0, 0)
	var unknownErr *UnknownEventTypeError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("err = %v, want *UnknownEventTypeError", err)
	}
	if unknownErr.Code != 0x7 || unknownErr.WordIndex != 0 {
		t.Errorf("err = %+v, want {Code:7 WordIndex:0}", unknownErr)
	}
}

// Scenario E: external trigger.
func TestDecodeExternalTrigger(t *testing.T) {
	words := []uint16{0x8000, 0x6000, 0xA301}
	res, err := DecodeBytes(wordsToBytes(words), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Triggers.Len() != 1 {
		t.Fatalf("Triggers.Len() = %d, want 1", res.Triggers.Len())
	}
	if res.Triggers.Timestamp[0] != 0 || res.Triggers.ID[0] != 3 || res.Triggers.Value[0] != 1 {
		t.Errorf("trigger = {%d %d %d}, want {0 3 1}",
			res.Triggers.Timestamp[0], res.Triggers.ID[0], res.Triggers.Value[0])
	}
}

// Scenario F: pre-Y drop.
func TestDecodePreYDrop(t *testing.T) {
	words := []uint16{0x8000, 0x6000, 0x2000}
	res, err := DecodeBytes(wordsToBytes(words), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CD.Len() != 0 {
		t.Fatalf("CD.Len() = %d, want 0", res.CD.Len())
	}
	if res.Diagnostics.DroppedBeforeY != 1 {
		t.Errorf("DroppedBeforeY = %d, want 1", res.Diagnostics.DroppedBeforeY)
	}
}

// Boundary: empty input.
func TestDecodeEmptyInput(t *testing.T) {
	res, err := DecodeBytes(nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CD.Len() != 0 || res.Triggers.Len() != 0 {
		t.Errorf("expected empty result, got CD=%d triggers=%d", res.CD.Len(), res.Triggers.Len())
	}
}

// Boundary: header-only input populates sensor dims, no events.
func TestDecodeHeaderOnlyInput(t *testing.T) {
	res, err := DecodeBytes([]byte("%geometry:640,480\n%format:EVT3\n"), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SensorWidth != 640 || res.SensorHeight != 480 {
		t.Errorf("dims = %dx%d, want 640x480", res.SensorWidth, res.SensorHeight)
	}
	if res.CD.Len() != 0 {
		t.Errorf("CD.Len() = %d, want 0", res.CD.Len())
	}
}

// Boundary: VECT_12 mask 0x000 (no emissions) and 0xFFF (12 emissions).
func TestDecodeVect12MaskBoundaries(t *testing.T) {
	words := []uint16{0x8000, 0x0000, 0x6000, 0x3000, 0x4000}
	res, err := DecodeBytes(wordsToBytes(words), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CD.Len() != 0 {
		t.Fatalf("mask 0x000: CD.Len() = %d, want 0", res.CD.Len())
	}

	words = []uint16{0x8000, 0x0000, 0x6000, 0x3000, 0x4FFF}
	res, err = DecodeBytes(wordsToBytes(words), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CD.Len() != 12 {
		t.Fatalf("mask 0xFFF: CD.Len() = %d, want 12", res.CD.Len())
	}
}

// Consecutive VECT_12 words continue across base_x + 12*n.
func TestDecodeConsecutiveVect12(t *testing.T) {
	words := []uint16{0x8000, 0x0000, 0x6000, 0x3000, 0x4FFF, 0x4FFF}
	res, err := DecodeBytes(wordsToBytes(words), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CD.Len() != 24 {
		t.Fatalf("CD.Len() = %d, want 24", res.CD.Len())
	}
	for i := 0; i < 12; i++ {
		if res.CD.X[i] != uint16(i) {
			t.Fatalf("first pass X[%d] = %d, want %d", i, res.CD.X[i], i)
		}
	}
	for i := 0; i < 12; i++ {
		if res.CD.X[12+i] != uint16(12+i) {
			t.Fatalf("second pass X[%d] = %d, want %d", i, res.CD.X[12+i], 12+i)
		}
	}
}

// Truncated trailing byte is fatal.
func TestDecodeTruncatedStream(t *testing.T) {
	_, err := DecodeBytes([]byte{0x00, 0x80, 0x05}, 0, 0)
	if !errors.Is(err, ErrTruncatedStream) {
		t.Fatalf("err = %v, want ErrTruncatedStream", err)
	}
}

// Unsupported declared format is fatal.
func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := DecodeBytes([]byte("%format:EVT2\n"), 0, 0)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

// DecodeStream over an io.Reader produces the same result as DecodeBytes.
func TestDecodeStreamMatchesDecodeBytes(t *testing.T) {
	words := []uint16{0x8000, 0x0005, 0x6000, 0x300A, 0x4007}
	raw := wordsToBytes(words)

	viaBytes, err := DecodeBytes(raw, 0, 0)
	if err != nil {
		t.Fatalf("DecodeBytes: unexpected error: %v", err)
	}
	viaStream, err := DecodeStream(bytes.NewReader(raw), 0, 0)
	if err != nil {
		t.Fatalf("DecodeStream: unexpected error: %v", err)
	}
	if viaBytes.CD.Len() != viaStream.CD.Len() {
		t.Fatalf("CD length mismatch: %d vs %d", viaBytes.CD.Len(), viaStream.CD.Len())
	}
	for i := range viaBytes.CD.X {
		if viaBytes.CD.X[i] != viaStream.CD.X[i] {
			t.Errorf("X[%d] mismatch: %d vs %d", i, viaBytes.CD.X[i], viaStream.CD.X[i])
		}
	}
}

// Timestamps within CD and trigger arrays are nondecreasing for a
// well-formed, single-epoch stream.
func TestDecodeMonotoneTimestamps(t *testing.T) {
	words := []uint16{
		0x8000, 0x0000, 0x6000,
		0x2000, // t=0
		0x6001, // time_low=1
		0x2002, // t=1
		0x6002, // time_low=2
		0x2004, // t=2
	}
	res, err := DecodeBytes(wordsToBytes(words), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(res.CD.Timestamp); i++ {
		if res.CD.Timestamp[i] < res.CD.Timestamp[i-1] {
			t.Fatalf("timestamps not nondecreasing at %d: %v", i, res.CD.Timestamp)
		}
	}
	if res.Diagnostics.OutOfOrderEvents != 0 {
		t.Errorf("OutOfOrderEvents = %d, want 0", res.Diagnostics.OutOfOrderEvents)
	}
}

// On a fatal error the partial result still carries what was decoded
// before the abort, per spec.md §7's implementer-discretion note.
func TestDecodePartialResultOnError(t *testing.T) {
	words := []uint16{0x8000, 0x0000, 0x6000, 0x2000, 0x7000}
	res, err := DecodeBytes(wordsToBytes(words), 0, 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if res == nil {
		t.Fatal("expected non-nil partial result")
	}
	if res.CD.Len() != 1 {
		t.Errorf("partial CD.Len() = %d, want 1", res.CD.Len())
	}
	if res.Diagnostics.UnknownEvents != 1 {
		t.Errorf("UnknownEvents = %d, want 1", res.Diagnostics.UnknownEvents)
	}
}
