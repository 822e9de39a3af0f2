// File: core/ringbuf/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for the ring buffer core. Every failure is returned as a
// value; none are retried internally. Assertion failures (invariant
// violations, misuse such as producing without acquiring) are programming
// bugs and panic in debug builds — see assert.go.

package ringbuf

import "errors"

var (
	// ErrInvalidCapacity is returned by New when capacity is zero or does
	// not fit the 32-bit offset range.
	ErrInvalidCapacity = errors.New("ringbuf: capacity exceeds 32-bit offset range")

	// ErrInvalidWorkerCount is returned by New when nworkers is non-positive.
	ErrInvalidWorkerCount = errors.New("ringbuf: worker count must be positive")

	// ErrOutOfWorkers is returned by Register when the requested index is
	// outside [0, nworkers).
	ErrOutOfWorkers = errors.New("ringbuf: worker index out of range")

	// ErrAlreadyRegistered is returned by Register when the index is
	// currently claimed by another producer.
	ErrAlreadyRegistered = errors.New("ringbuf: worker already registered")

	// ErrNotRegistered is returned by Unregister, Acquire, and Produce when
	// the worker handle does not refer to a currently registered producer.
	ErrNotRegistered = errors.New("ringbuf: worker not registered")

	// ErrAcquireRefused is the ordinary back-pressure signal returned by
	// Acquire when granting the reservation would violate the overtake
	// invariant, either at the tail of the buffer or after a forced wrap.
	// It is not an exceptional condition.
	ErrAcquireRefused = errors.New("ringbuf: acquire refused, would overtake consumer")

	// ErrInvalidLength is returned by Acquire when len is not in (0, capacity].
	ErrInvalidLength = errors.New("ringbuf: acquire length out of range")
)
