// File: core/ringbuf/offset.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Packed NEXT word codec: a 64-bit word carries the live offset, an
// ABA-defeating wrap counter, and a single wrap-around lock bit. The three
// fields are never split across separate atomics — the acquisition CAS must
// swap offset and counter together in one compare-and-swap.

package ringbuf

const (
	offsetMask      = 0x00000000ffffffff
	wrapLockBit     = 0x8000000000000000
	wrapCounterMask = 0x7fffffff00000000
	wrapCounterStep = 0x0000000100000000
)

// offsetMax is the sentinel "unset" value for a worker's seen offset and for
// the END marker. No valid offset (masked to 32 bits) can equal it.
const offsetMax = ^uint64(0)

// packWord assembles a NEXT word from an offset, a wrap-counter bit pattern
// (already masked to wrapCounterMask), and the wrap-lock flag.
func packWord(offset uint64, wrapBits uint64, locked bool) uint64 {
	w := offset & offsetMask
	w |= wrapBits & wrapCounterMask
	if locked {
		w |= wrapLockBit
	}
	return w
}

func offsetOf(word uint64) uint64 { return word & offsetMask }

func wrapOf(word uint64) uint64 { return word & wrapCounterMask }

func lockedOf(word uint64) bool { return word&wrapLockBit != 0 }

// incrWrap increments the wrap counter embedded in word, wrapping modulo
// 2^31 within its field. Used on every wrap-around to defeat ABA on the
// acquisition CAS: without it, two wrap-arounds could restore NEXT to a
// value a stalled producer had already observed.
func incrWrap(word uint64) uint64 {
	return (word + wrapCounterStep) & wrapCounterMask
}
