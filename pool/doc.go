// Package pool
// Author: momentics <momentics@gmail.com>
//
// NUMA-aware, lock-free, zero-copy buffer pooling and batching, plus
// MessageRing, which bundles a core/ringbuf.Ring with capacity-sized
// backing storage drawn from these pools.
// See bufferpool.go, batch.go, message_ring.go for implementation details.
package pool
