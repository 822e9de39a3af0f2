//go:build ringbuf_noassert

// File: core/ringbuf/assert_noassert.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ringbuf

const debugAssertions = false
