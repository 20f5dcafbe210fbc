// Package telemetry holds the lock-free counters the trainer updates on
// every game and the dashboard reads on every tick: games played, the
// rolling learner win rate, the current learning rate, and the
// curriculum stage. Float metrics are AtomicFloat64 values and counts
// and the stage are atomic integers, so the trainer can update a metric
// while the dashboard reads it, without a mutex serializing either side.
package telemetry

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// AtomicFloat64 wraps a float64 for lock-free reads, adds, and sets. Adds
// are compare-and-swap loops, not blind read-modify-write: if the value
// changes underneath a caller's AtomicAdd, the caller finds out via
// succeeded=false rather than silently losing an update.
type AtomicFloat64 struct {
	val float64
}

// NewAtomicFloat64 returns a counter initialised to val.
func NewAtomicFloat64(val float64) *AtomicFloat64 {
	return &AtomicFloat64{val: val}
}

// AtomicRead returns the current value, synchronised with main memory.
func (af *AtomicFloat64) AtomicRead() float64 {
	bits := atomic.LoadUint64((*uint64)(unsafe.Pointer(&af.val)))
	return math.Float64frombits(bits)
}

// AtomicAdd adds addend to the counter. succeeded is false if another
// writer changed the value between the read and the compare-and-swap;
// callers that need the add to land should retry.
func (af *AtomicFloat64) AtomicAdd(addend float64) (newVal float64, succeeded bool) {
	old := af.AtomicRead()
	newVal = old + addend
	succeeded = atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal),
	)
	return
}

// AtomicAddRetry repeatedly calls AtomicAdd until it succeeds, for
// callers (the single updater goroutine, mostly) that have no fallback
// action on contention and just want the add to land.
func (af *AtomicFloat64) AtomicAddRetry(addend float64) float64 {
	for {
		if v, ok := af.AtomicAdd(addend); ok {
			return v
		}
	}
}

// AtomicSet overwrites the counter, returning true on success.
func (af *AtomicFloat64) AtomicSet(newVal float64) bool {
	old := af.AtomicRead()
	return atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal),
	)
}
