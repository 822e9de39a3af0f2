// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// High-performance concurrency primitives with NUMA-aware, lock-free, and
// cross-platform support: an Executor and the ThreadPool built on it, backed
// by a per-worker lock-free queue with a shared global fallback queue.
// benchmarks.Run drives its producers and consumer through ThreadPool.Submit
// instead of bare goroutines.
//
// All implementations are cross-platform compatible (Linux/Windows).
package concurrency
