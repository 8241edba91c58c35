package evt3

import "github.com/muthmann/evt3/internal/events"

// Diagnostics surfaces soft, non-fatal anomalies counted during
// decoding (spec.md §7): none of these abort a session. The one
// exception is UnknownEvents, which records that a session aborted.
type Diagnostics struct {
	// TimeHighLoops is the number of detected TIME_HIGH wraparounds
	// (each one is 2^24 microseconds of event time).
	TimeHighLoops uint32

	// DroppedBeforeY is the number of CD events (ADDR_X or VECT_*)
	// that were discarded because no ADDR_Y or no TIME_HIGH had been
	// seen yet.
	DroppedBeforeY uint64

	// UnknownEvents is 1 if the session aborted on an
	// UnknownEventTypeError, 0 otherwise. It exists so a caller
	// inspecting a partial Result after an error can tell what kind of
	// fatal condition produced it.
	UnknownEvents uint64

	// OutOfOrderEvents counts emitted events (CD or trigger) whose
	// timestamp was lower than the previously emitted event's
	// timestamp. The decoder does not reject these; it only counts
	// them.
	OutOfOrderEvents uint64
}

// Result bundles everything produced by a decode session: sensor
// dimensions (defaulted or taken from the stream header), the
// columnar event buffers, and the diagnostics counters. A Result owns
// its buffers exclusively and is immutable once returned.
type Result struct {
	SensorWidth  int
	SensorHeight int

	CD       *events.CD
	Triggers *events.Trigger

	Diagnostics Diagnostics
}

func newResult(width, height int, cd *events.CD, tr *events.Trigger, diag Diagnostics) *Result {
	return &Result{
		SensorWidth:  width,
		SensorHeight: height,
		CD:           cd,
		Triggers:     tr,
		Diagnostics:  diag,
	}
}
