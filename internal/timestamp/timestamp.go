// Package timestamp reconstructs the 64-bit microsecond EVT 3.0
// timestamp from its TIME_HIGH/TIME_LOW components, including
// TIME_HIGH wraparound detection.
package timestamp

// LoopThreshold is the minimum backward jump in a raw TIME_HIGH
// payload that is treated as a genuine 2^24 microsecond wraparound
// rather than stream jitter. Matches the reference decoder's
// heuristic.
const LoopThreshold = 1 << 11

// Reconstruct computes the accumulated TIME_HIGH counter and loop
// count after observing a new raw TIME_HIGH payload.
//
// prevPayload is the previous raw payload, or nil if newPayload is the
// first TIME_HIGH word ever seen in the session. loops is the loop
// count accumulated so far. The function is pure: identical inputs
// always produce identical outputs, independent of any event words
// interleaved between TIME_HIGH words.
func Reconstruct(prevPayload *uint16, loops uint32, newPayload uint16) (newHigh uint32, newLoops uint32) {
	if prevPayload != nil && newPayload < *prevPayload && uint32(*prevPayload-newPayload) >= LoopThreshold {
		loops++
	}
	return (loops << 12) | uint32(newPayload), loops
}

// Current combines a reconstructed TIME_HIGH counter (units of 4096
// microseconds) with a 12-bit TIME_LOW value into the session's
// microsecond timestamp.
func Current(timeHigh uint32, timeLow uint16) uint64 {
	return (uint64(timeHigh) << 12) | uint64(timeLow)
}
