// File: core/ringbuf/probes.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Optional wiring into the ambient control plane: a ring can expose its
// hand positions and registry occupancy as debug probes and metrics,
// without the core itself taking a dependency on how they're consumed.
// Mirrors the registration style of control/platform_linux.go's
// RegisterPlatformProbes.

package ringbuf

import "github.com/momentics/ringbuf/control"

// RegisterProbes installs read-only probes for this ring's hand positions
// and registry occupancy. Safe to call from any goroutine; probes read
// atomics directly and never block the hot path.
func (r *Ring) RegisterProbes(dp *control.DebugProbes, mr *control.MetricsRegistry) {
	if dp != nil {
		dp.RegisterProbe("ringbuf.next", func() any { return offsetOf(r.next.Load()) })
		dp.RegisterProbe("ringbuf.written", func() any { return r.written.Load() })
		dp.RegisterProbe("ringbuf.wrap_counter", func() any { return wrapOf(r.next.Load()) >> 32 })
		dp.RegisterProbe("ringbuf.end", func() any { return r.end.Load() })
	}
	if mr != nil {
		mr.Set("ringbuf.capacity", r.capacity)
		mr.Set("ringbuf.workers", len(r.reg.seenOff))
	}
}
