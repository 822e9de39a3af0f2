// File: core/ringbuf/ringbuf.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The coordination core itself: the packed NEXT hand, the WRITTEN tail, the
// END wrap marker, and the producer/consumer protocols that move them. The
// core never touches byte storage — it hands out and accepts back
// [offset, offset+len) ranges into a buffer the caller owns (see
// pool.MessageRing for a storage-bundling wrapper). Grounded on
// original_source/src/ringbuf.c's ringbuf_acquire/produce/consume/release,
// generalized to Go's sync/atomic and to the array-plus-stack worker
// registry described as "variant 2".

package ringbuf

import (
	"sync/atomic"

	"github.com/momentics/ringbuf/api"
)

var _ api.ByteRing = (*Ring)(nil)

// Ring is the lock-free MPSC coordination primitive. All exported methods
// are non-blocking: a full buffer or a registry conflict returns an error
// immediately, never waits.
type Ring struct {
	next     atomic.Uint64 // packed: wrap-lock | wrap-counter | offset
	written  atomic.Uint64 // plain offset, consumer-owned
	end      atomic.Uint64 // offsetMax ("unset") until a wrap records it
	capacity uint64
	reg      *registry
}

// New constructs a ring of the given byte capacity with nworkers producer
// slots. capacity must fit the 32-bit offset field; nworkers must be
// positive.
func New(capacity uint64, nworkers int) (*Ring, error) {
	if capacity == 0 || capacity > offsetMask {
		return nil, ErrInvalidCapacity
	}
	if nworkers <= 0 {
		return nil, ErrInvalidWorkerCount
	}
	r := &Ring{capacity: capacity, reg: newRegistry(nworkers)}
	r.next.Store(packWord(0, 0, false))
	r.written.Store(0)
	r.end.Store(offsetMax)
	return r, nil
}

// SizeOf reports the size of the ring's shared state words: the three
// 64-bit hands (next, written, end) and one 64-bit seen offset per worker.
// It does not count the registry's other per-slot fields or Go object
// overhead; New always allocates the ring on the Go heap.
func SizeOf(nworkers int) (ringBytes, workerBytes int) {
	const wordSize = 8
	ringBytes = 3 * wordSize // next, written, end
	workerBytes = nworkers * wordSize
	return ringBytes, workerBytes
}

// Capacity returns the buffer's configured byte capacity.
func (r *Ring) Capacity() uint64 { return r.capacity }

// Register claims worker slot i for a producer. i must be in
// [0, nworkers) and not already registered.
func (r *Ring) Register(i int) error { return r.reg.Register(i) }

// Unregister releases worker slot i. The producer must be idle.
func (r *Ring) Unregister(i int) error { return r.reg.Unregister(i) }

// stableNext spin-reads next until its wrap-lock bit is clear, backing off
// between polls. Both producers (before attempting their own CAS) and the
// consumer (before computing the ready frontier) need this stable read.
func (r *Ring) stableNext() uint64 {
	spin := 0
	for {
		w := r.next.Load()
		if !lockedOf(w) {
			return w
		}
		spin = backoff(spin)
	}
}

// Acquire reserves len bytes for worker i, returning the starting offset of
// the reservation. It fails with ErrAcquireRefused if granting it would let
// the producer overtake the consumer; that is ordinary back-pressure, not a
// bug. len must be in (0, capacity].
func (r *Ring) Acquire(worker int, length uint64) (uint64, error) {
	if !r.reg.isRegistered(worker) {
		return 0, ErrNotRegistered
	}
	if length == 0 || length > r.capacity {
		return 0, ErrInvalidLength
	}

	for {
		seen := r.stableNext()
		next := offsetOf(seen)
		target := next + length
		written := r.written.Load()

		if next < written && target >= written {
			return 0, ErrAcquireRefused
		}

		var proposed uint64
		var startOffset uint64
		wrapping := false
		preWrapNext := next

		switch {
		case target < r.capacity:
			proposed = packWord(target, wrapOf(seen), false)
			startOffset = next
		case target == r.capacity:
			// Landing exactly on capacity resets NEXT to 0, same as a fresh
			// buffer. If this isn't actually a fresh buffer (next > 0) and
			// the consumer hasn't released anything yet (written == 0), the
			// reset would overtake offset 0's still-unconsumed bytes.
			if next > 0 && written == 0 {
				return 0, ErrAcquireRefused
			}
			proposed = packWord(0, incrWrap(seen), false)
			startOffset = next
		default:
			if length >= written {
				return 0, ErrAcquireRefused
			}
			proposed = packWord(length, incrWrap(seen), true)
			startOffset = 0
			wrapping = true
		}

		if !r.next.CompareAndSwap(seen, proposed) {
			continue
		}

		if wrapping {
			assert(r.end.Load() == offsetMax, "END set while already wrapping")
			assert(written <= preWrapNext, "WRITTEN ahead of pre-wrap NEXT")
			r.end.Store(preWrapNext)
			// Publish this reservation, and only then release the wrap lock:
			// the consumer's stable-read spins on the lock bit, so anything
			// published before the unlock store is guaranteed visible to the
			// first consumer that observes NEXT unlocked.
			r.reg.markActive(worker, startOffset)
			r.next.Store(proposed &^ wrapLockBit)
			return startOffset, nil
		}

		r.reg.markActive(worker, startOffset)
		return startOffset, nil
	}
}

// Produce releases worker's reservation, making the bytes it wrote visible
// to the consumer on its next scan. The caller must have filled exactly the
// range Acquire returned before calling this.
func (r *Ring) Produce(worker int) error {
	if !r.reg.isRegistered(worker) {
		return ErrNotRegistered
	}
	assert(r.reg.seenOff[worker].Load() != offsetMax, "produce without an outstanding reservation")
	r.reg.seenOff[worker].Store(offsetMax)
	return nil
}

// Consume returns the next contiguous eligible range [offset, offset+len).
// len == 0 means nothing is ready. Must be called from a single goroutine;
// the core does not enforce that restriction.
func (r *Ring) Consume() (uint64, uint64) {
	for {
		written := r.written.Load()
		next := offsetOf(r.stableNext())
		if next == written {
			return written, 0
		}

		ready := offsetMax
		r.reg.drainUsed(func(i int, seenOff uint64) {
			switch {
			case seenOff == offsetMax:
				r.reg.retire(i)
			case seenOff >= written:
				if seenOff < ready {
					ready = seenOff
				}
				r.reg.requeueUsed(i)
			default:
				r.reg.requeueUsed(i)
			}
		})

		if next < written {
			end := r.end.Load()
			if end > r.capacity {
				end = r.capacity
			}
			if ready == offsetMax && written == end {
				r.end.Store(offsetMax)
				r.written.Store(0)
				continue
			}
			if end < ready {
				ready = end
			}
			assert(ready >= written, "ready frontier behind WRITTEN after wrap")
		} else if next < ready {
			ready = next
		}

		return written, ready - written
	}
}

// Release advances WRITTEN by n, where n was returned by (or is a prefix
// of what was returned by) the preceding Consume.
func (r *Ring) Release(n uint64) {
	written := r.written.Load()
	next := written + n
	assert(next <= r.capacity, "release overruns capacity")
	if end := r.end.Load(); end != offsetMax {
		assert(next <= end, "release overruns recorded END")
	}
	if next == r.capacity {
		r.written.Store(0)
	} else {
		r.written.Store(next)
	}
}
