// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package ringbuf

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestIndexStackPushPopLIFO(t *testing.T) {
	links := make([]atomic.Uint32, 4)
	s := newIndexStack()

	s.push(links, 0)
	s.push(links, 1)
	s.push(links, 2)

	want := []uint32{2, 1, 0}
	for _, w := range want {
		got, ok := s.pop(links)
		if !ok || got != w {
			t.Fatalf("pop = (%d, %v), want (%d, true)", got, ok, w)
		}
	}
	if _, ok := s.pop(links); ok {
		t.Fatal("pop on empty stack returned ok=true")
	}
}

func TestIndexStackConcurrentPushPop(t *testing.T) {
	const n = 64
	links := make([]atomic.Uint32, n)
	s := newIndexStack()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx uint32) {
			defer wg.Done()
			s.push(links, idx)
		}(uint32(i))
	}
	wg.Wait()

	seen := make(map[uint32]bool)
	for {
		idx, ok := s.pop(links)
		if !ok {
			break
		}
		if seen[idx] {
			t.Fatalf("index %d popped twice", idx)
		}
		seen[idx] = true
	}
	if len(seen) != n {
		t.Fatalf("popped %d indices, want %d", len(seen), n)
	}
}

func TestRegistryRegisterLifecycle(t *testing.T) {
	r := newRegistry(4)
	if err := r.Register(2); err != nil {
		t.Fatalf("Register(2): %v", err)
	}
	if !r.isRegistered(2) {
		t.Fatal("isRegistered(2) = false after Register")
	}
	if r.seenOff[2].Load() != offsetMax {
		t.Fatal("seenOff not initialized to offsetMax")
	}
	if err := r.Register(2); err != ErrAlreadyRegistered {
		t.Fatalf("double Register: got %v", err)
	}
	if err := r.Unregister(2); err != nil {
		t.Fatalf("Unregister(2): %v", err)
	}
	if r.isRegistered(2) {
		t.Fatal("isRegistered(2) = true after Unregister")
	}
}

func TestRegistryDrainUsedRetiresIdle(t *testing.T) {
	r := newRegistry(2)
	_ = r.Register(0)
	_ = r.Register(1)

	r.seenOff[0].Store(5)
	r.markActive(0, 5)
	r.seenOff[1].Store(offsetMax)
	r.used.push(r.usedLink, 1)

	var activeSeen []uint64
	r.drainUsed(func(i int, seenOff uint64) {
		if seenOff == offsetMax {
			r.retire(i)
			return
		}
		activeSeen = append(activeSeen, seenOff)
		r.requeueUsed(i)
	})

	if len(activeSeen) != 1 || activeSeen[0] != 5 {
		t.Fatalf("activeSeen = %v, want [5]", activeSeen)
	}
	// Worker 1 was idle and should not reappear on the next drain.
	var againSeen []uint64
	r.drainUsed(func(i int, seenOff uint64) {
		againSeen = append(againSeen, seenOff)
		r.requeueUsed(i)
	})
	if len(againSeen) != 1 || againSeen[0] != 5 {
		t.Fatalf("second drain = %v, want [5] (worker 0 only, worker 1 retired)", againSeen)
	}
}
