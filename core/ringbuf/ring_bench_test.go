// Copyright 2025 momentics@gmail.com
// License: Apache 2.0
//
// Raw throughput benchmarks for the core, independent of backing storage or
// message framing, grounded on original_source/src/t_benchmark.c's
// single-producer ringbuf_test loop.

package ringbuf

import "testing"

const benchMessageLen = 128 // comparable to t_benchmark.c's logline size

func BenchmarkAcquireProduce(b *testing.B) {
	r := mustBenchRing(b, 1<<20, 1)
	_ = r.Register(0)
	b.SetBytes(benchMessageLen)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		off, err := r.Acquire(0, benchMessageLen)
		if err != nil {
			_, l := r.Consume()
			if l > 0 {
				r.Release(l)
			}
			off, err = r.Acquire(0, benchMessageLen)
			if err != nil {
				b.Fatalf("Acquire: %v", err)
			}
		}
		_ = off
		if err := r.Produce(0); err != nil {
			b.Fatalf("Produce: %v", err)
		}
	}
}

func BenchmarkConsumeRelease(b *testing.B) {
	r := mustBenchRing(b, 1<<20, 1)
	_ = r.Register(0)
	b.SetBytes(benchMessageLen)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for {
			if _, err := r.Acquire(0, benchMessageLen); err == nil {
				break
			}
			_, l := r.Consume()
			if l > 0 {
				r.Release(l)
			}
		}
		if err := r.Produce(0); err != nil {
			b.Fatalf("Produce: %v", err)
		}
		_, l := r.Consume()
		if l > 0 {
			r.Release(l)
		}
	}
}

func mustBenchRing(b *testing.B, capacity uint64, nworkers int) *Ring {
	b.Helper()
	r, err := New(capacity, nworkers)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	return r
}
