// Package api
// Author: momentics@gmail.com
//
// Offset-only contract for the lock-free MPSC byte ring buffer coordinator.
// ByteRing hands out byte ranges, not typed items; the caller owns the
// backing storage the offsets index into.

package api

// ByteRing is the coordination contract a producer/consumer pair drives
// directly against caller-owned backing storage. Implementations are
// non-blocking: a refused acquisition returns an error immediately.
type ByteRing interface {
	// Register claims worker slot i for a producer.
	Register(i int) error

	// Unregister releases worker slot i. The producer must be idle.
	Unregister(i int) error

	// Acquire reserves length bytes for worker, returning the offset the
	// reservation starts at.
	Acquire(worker int, length uint64) (uint64, error)

	// Produce publishes the bytes worker wrote into its reservation.
	Produce(worker int) error

	// Consume returns the next eligible contiguous range. len == 0 means
	// nothing is ready yet.
	Consume() (offset uint64, length uint64)

	// Release advances past n consumed bytes.
	Release(n uint64)

	// Capacity returns the configured byte capacity.
	Capacity() uint64
}
