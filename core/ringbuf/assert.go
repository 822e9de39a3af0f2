// File: core/ringbuf/assert.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Debug-only invariant assertions, mirroring the original source's ASSERT()
// macro (utils.h). debugAssertions is true by default and flipped to false
// by the ringbuf_noassert build tag (see assert_noassert.go) for release
// builds that want to skip the branch entirely.

package ringbuf

// assert panics with msg if cond is false. Only misuse (producing without an
// acquired reservation, releasing past capacity or the recorded END) and broken
// invariants trip it — never ordinary back-pressure, which is always a
// returned error instead.
func assert(cond bool, msg string) {
	if debugAssertions && !cond {
		panic("ringbuf: assertion failed: " + msg)
	}
}
