// File: pool/message_ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// MessageRing bundles a core/ringbuf.Ring with capacity-sized backing
// storage drawn from the NUMA-aware BufferPool, for callers who want a
// byte-range-in/byte-range-out message ring rather than owning the backing
// array themselves. This is the "owned storage" option from the core's
// design notes; core/ringbuf.Ring itself stays storage-agnostic.

package pool

import (
	"github.com/momentics/ringbuf/api"
	"github.com/momentics/ringbuf/core/ringbuf"
)

// MessageRing pairs a coordination ring with a single capacity-sized
// Buffer. Producers call AcquireWindow to get a []byte window to fill,
// Produce to publish it; the consumer calls ConsumeWindow/Release.
type MessageRing struct {
	core    *ringbuf.Ring
	backing api.Buffer
}

// NewMessageRing allocates backing storage of capacity bytes from pool
// (NUMA-preferred node numaPreferred) and wraps it with a coordination
// ring sized for nworkers producers.
func NewMessageRing(pool api.BufferPool, capacity uint64, nworkers int, numaPreferred int) (*MessageRing, error) {
	core, err := ringbuf.New(capacity, nworkers)
	if err != nil {
		return nil, err
	}
	backing := pool.Get(int(capacity), numaPreferred)
	return &MessageRing{core: core, backing: backing}, nil
}

// Register claims worker slot i for a producer.
func (m *MessageRing) Register(i int) error { return m.core.Register(i) }

// Unregister releases worker slot i.
func (m *MessageRing) Unregister(i int) error { return m.core.Unregister(i) }

// AcquireWindow reserves length bytes for worker and returns the live
// sub-slice of the backing buffer the producer should fill. The slice
// aliases shared storage: only this producer may write it until Produce.
func (m *MessageRing) AcquireWindow(worker int, length uint64) ([]byte, error) {
	offset, err := m.core.Acquire(worker, length)
	if err != nil {
		return nil, err
	}
	full := m.backing.Bytes()
	return full[offset : offset+length : offset+length], nil
}

// Produce publishes the window worker filled.
func (m *MessageRing) Produce(worker int) error { return m.core.Produce(worker) }

// ConsumeWindow returns the next eligible contiguous range as a read-only
// slice of the backing buffer, or nil if nothing is ready. Call
// Release(uint64(len(slice))) once the caller is done with the slice.
func (m *MessageRing) ConsumeWindow() []byte {
	offset, length := m.core.Consume()
	if length == 0 {
		return nil
	}
	full := m.backing.Bytes()
	return full[offset : offset+length]
}

// Release advances past n consumed bytes, matching what ConsumeWindow
// returned (or a prefix of it).
func (m *MessageRing) Release(n uint64) { m.core.Release(n) }

// Capacity returns the ring's configured byte capacity.
func (m *MessageRing) Capacity() uint64 { return m.core.Capacity() }

// Close returns the backing buffer to its pool. The MessageRing must not
// be used afterwards.
func (m *MessageRing) Close() { m.backing.Release() }
