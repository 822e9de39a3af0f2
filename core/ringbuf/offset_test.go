// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package ringbuf

import "testing"

func TestPackWordRoundtrip(t *testing.T) {
	w := packWord(12345, 7*wrapCounterStep, true)
	if got := offsetOf(w); got != 12345 {
		t.Errorf("offsetOf = %d, want 12345", got)
	}
	if !lockedOf(w) {
		t.Error("lockedOf = false, want true")
	}
	if got := wrapOf(w); got != 7*wrapCounterStep {
		t.Errorf("wrapOf = %#x, want %#x", got, 7*wrapCounterStep)
	}
}

func TestIncrWrapWrapsModulo31Bits(t *testing.T) {
	w := packWord(0, wrapCounterMask, false) // counter field all ones
	next := incrWrap(w)
	if next != 0 {
		t.Errorf("incrWrap at max = %#x, want 0 (wraps modulo field width)", next)
	}
}

func TestOffsetMaxIsUnreachableOffset(t *testing.T) {
	if offsetOf(offsetMax) == 0 {
		t.Fatal("sanity: offsetMax masked to zero, codec broken")
	}
}
