// File: benchmarks/stress.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scenario R: a multi-producer stress driver against pool.MessageRing.
// Each producer generates a length-prefixed, checksummed message (mirroring
// original_source/src/t_stress.c's generate_message/verify_message); the
// single consumer task verifies every message it drains and, when a
// checksum fails, files the raw bytes onto a pending-review backlog instead
// of panicking the run — real stress harnesses keep going and report a
// tally at the end.
//
// Producers and the consumer run as tasks on an internal/concurrency
// ThreadPool rather than bare goroutines: this is the one place in the tree
// that actually wants a managed worker pool (bounded worker count, optional
// NUMA-aware pinning of the pool's own workers, graceful shutdown), as
// opposed to core/ringbuf's coordination primitive, which must stay
// allocation- and goroutine-pool-free to remain a general primitive.
//
// This is a runnable package, not a CLI: callers embed Run in their own
// *testing.B or main(), per the "no CLI" non-goal.

package benchmarks

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/ringbuf/internal/concurrency"
	"github.com/momentics/ringbuf/pool"
)

// Config controls one stress run.
type Config struct {
	Capacity      uint64
	Producers     int
	MessagesEach  int
	PinCPUs       bool // best-effort; failures are ignored
	NUMAPreferred int
}

// Result tallies what a run produced, consumed, and rejected.
type Result struct {
	Produced        uint64
	Consumed        uint64
	ChecksumFailure uint64
}

// pendingReview holds the raw bytes of messages that failed verification,
// for offline inspection after a run. Backed by eapache/queue: an unbounded
// FIFO is the natural shape for "keep whatever didn't verify, in arrival
// order" and the ring core has no interest in owning that backlog itself.
type pendingReview struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newPendingReview() *pendingReview {
	return &pendingReview{q: queue.New()}
}

func (p *pendingReview) push(msg []byte) {
	cp := make([]byte, len(msg))
	copy(cp, msg)
	p.mu.Lock()
	p.q.Add(cp)
	p.mu.Unlock()
}

func (p *pendingReview) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.q.Length()
}

// generateMessage writes a length-prefixed, XOR-checksummed payload into
// buf and returns the number of bytes written: [len byte][len payload
// bytes][checksum byte].
func generateMessage(rnd *rand.Rand, buf []byte) int {
	n := 1 + rnd.Intn(len(buf)-2)
	var cksum byte
	for i := 0; i < n; i++ {
		b := byte('!' + rnd.Intn('~'-'!'))
		buf[1+i] = b
		cksum ^= b
	}
	buf[0] = byte(n)
	buf[1+n] = cksum
	return n + 2
}

// verifyMessage checks the frame at the head of buf and returns the total
// frame length (including the length and checksum bytes), or -1 if the
// checksum does not match.
func verifyMessage(buf []byte) int {
	if len(buf) < 2 {
		return -1
	}
	n := int(buf[0])
	if len(buf) < n+2 {
		return -1
	}
	var cksum byte
	for i := 0; i < n; i++ {
		cksum ^= buf[1+i]
	}
	if buf[1+n] != cksum {
		return -1
	}
	return n + 2
}

// Run drives cfg against a freshly allocated MessageRing and returns the
// tally. It blocks until every producer has sent MessagesEach messages and
// the consumer has drained everything they produced.
func Run(cfg Config) (Result, error) {
	mgr := pool.DefaultManager()
	bp := mgr.GetPool(cfg.NUMAPreferred)
	mr, err := pool.NewMessageRing(bp, cfg.Capacity, cfg.Producers, cfg.NUMAPreferred)
	if err != nil {
		return Result{}, fmt.Errorf("benchmarks: new message ring: %w", err)
	}
	defer mr.Close()

	for i := 0; i < cfg.Producers; i++ {
		if err := mr.Register(i); err != nil {
			return Result{}, fmt.Errorf("benchmarks: register worker %d: %w", i, err)
		}
	}

	var produced, consumed, failures atomic.Uint64
	backlog := newPendingReview()

	numaNode := -1
	if cfg.PinCPUs {
		numaNode = cfg.NUMAPreferred
	}
	tp := concurrency.NewThreadPool(cfg.Producers+1, numaNode)
	defer tp.Close()

	var wg sync.WaitGroup
	for w := 0; w < cfg.Producers; w++ {
		wg.Add(1)
		worker := w
		if err := tp.Submit(func() {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(int64(worker) + 1))
			scratch := make([]byte, 255)
			for i := 0; i < cfg.MessagesEach; i++ {
				n := generateMessage(rnd, scratch)
				for {
					window, err := mr.AcquireWindow(worker, uint64(n))
					if err != nil {
						runtime.Gosched()
						continue
					}
					copy(window, scratch[:n])
					if err := mr.Produce(worker); err != nil {
						return
					}
					produced.Add(1)
					break
				}
			}
		}); err != nil {
			wg.Done()
			return Result{}, fmt.Errorf("benchmarks: submit producer %d: %w", w, err)
		}
	}

	var producersDone atomic.Bool
	consumerDone := make(chan struct{})
	if err := tp.Submit(func() {
		defer close(consumerDone)
		emptyStreak := 0
		for {
			view := mr.ConsumeWindow()
			if view == nil {
				if producersDone.Load() {
					emptyStreak++
					if emptyStreak > 2 {
						return
					}
				}
				runtime.Gosched()
				continue
			}
			emptyStreak = 0
			rem := view
			total := uint64(len(view))
			for len(rem) > 0 {
				frameLen := verifyMessage(rem)
				if frameLen < 0 {
					failures.Add(1)
					backlog.push(rem)
					break
				}
				consumed.Add(1)
				rem = rem[frameLen:]
			}
			mr.Release(total)
		}
	}); err != nil {
		return Result{}, fmt.Errorf("benchmarks: submit consumer: %w", err)
	}

	wg.Wait()
	producersDone.Store(true)
	<-consumerDone

	return Result{
		Produced:        produced.Load(),
		Consumed:        consumed.Load(),
		ChecksumFailure: failures.Load(),
	}, nil
}
