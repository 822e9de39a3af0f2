// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package benchmarks

import (
	"math/rand"
	"testing"
)

func TestRunSmallStress(t *testing.T) {
	res, err := Run(Config{
		Capacity:     4096,
		Producers:    4,
		MessagesEach: 500,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Produced != uint64(4*500) {
		t.Errorf("Produced = %d, want %d", res.Produced, 4*500)
	}
	if res.Consumed != res.Produced {
		t.Errorf("Consumed = %d, want %d (all produced messages)", res.Consumed, res.Produced)
	}
	if res.ChecksumFailure != 0 {
		t.Errorf("ChecksumFailure = %d, want 0", res.ChecksumFailure)
	}
}

func TestGenerateVerifyMessageRoundtrip(t *testing.T) {
	buf := make([]byte, 64)
	for seed := 0; seed < 20; seed++ {
		rnd := rand.New(rand.NewSource(int64(seed)))
		total := generateMessage(rnd, buf)
		got := verifyMessage(buf[:total])
		if got != total {
			t.Fatalf("seed %d: verifyMessage = %d, want %d", seed, got, total)
		}
	}
	// Corrupt the checksum byte and confirm verification fails.
	total := generateMessage(rand.New(rand.NewSource(1)), buf)
	buf[total-1] ^= 0xff
	if got := verifyMessage(buf[:total]); got != -1 {
		t.Fatalf("corrupted frame verified as %d, want -1", got)
	}
}
