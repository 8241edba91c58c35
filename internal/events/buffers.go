// Package events holds the columnar output buffers the state machine
// appends to: parallel arrays for change-detection events and for
// trigger events, laid out so a downstream consumer can read any one
// column as a contiguous array without a copy.
package events

// DefaultCapacity is the initial element capacity each column is
// preallocated with. Go's append already grows a preallocated slice
// geometrically, giving amortized O(1) appends without a hand-rolled
// doubling allocator.
const DefaultCapacity = 64 * 1024

// CD holds the four parallel columns of change-detection events:
// x, y, polarity, timestamp. All four slices always have equal
// length.
type CD struct {
	X         []uint16
	Y         []uint16
	Polarity  []uint8
	Timestamp []uint64
}

// NewCD allocates a CD buffer with the given per-column capacity hint.
func NewCD(capacityHint int) *CD {
	return &CD{
		X:         make([]uint16, 0, capacityHint),
		Y:         make([]uint16, 0, capacityHint),
		Polarity:  make([]uint8, 0, capacityHint),
		Timestamp: make([]uint64, 0, capacityHint),
	}
}

// Append adds one CD event to the end of every column.
func (b *CD) Append(x, y uint16, polarity uint8, timestamp uint64) {
	b.X = append(b.X, x)
	b.Y = append(b.Y, y)
	b.Polarity = append(b.Polarity, polarity)
	b.Timestamp = append(b.Timestamp, timestamp)
}

// Len returns the number of events currently buffered.
func (b *CD) Len() int {
	return len(b.X)
}

// Trigger holds the three parallel columns of external trigger
// events: timestamp, id, value.
type Trigger struct {
	Timestamp []uint64
	ID        []uint8
	Value     []uint8
}

// NewTrigger allocates a Trigger buffer with the given per-column
// capacity hint.
func NewTrigger(capacityHint int) *Trigger {
	return &Trigger{
		Timestamp: make([]uint64, 0, capacityHint),
		ID:        make([]uint8, 0, capacityHint),
		Value:     make([]uint8, 0, capacityHint),
	}
}

// Append adds one trigger event to the end of every column.
func (b *Trigger) Append(timestamp uint64, id, value uint8) {
	b.Timestamp = append(b.Timestamp, timestamp)
	b.ID = append(b.ID, id)
	b.Value = append(b.Value, value)
}

// Len returns the number of trigger events currently buffered.
func (b *Trigger) Len() int {
	return len(b.Timestamp)
}
