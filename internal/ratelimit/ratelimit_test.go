package ratelimit

import (
	"testing"
	"time"
)

func TestAllow_BurstThenDenied(t *testing.T) {
	l := New(1, 3)

	for i := range 3 {
		if !l.Allow("caller") {
			t.Fatalf("request %d within burst should be allowed", i)
		}
	}
	if l.Allow("caller") {
		t.Error("request beyond burst should be denied")
	}
}

func TestAllow_CallersAreIndependent(t *testing.T) {
	l := New(1, 1)

	if !l.Allow("a") {
		t.Fatal("first request for caller a should pass")
	}
	if l.Allow("a") {
		t.Error("second request for caller a should be denied")
	}
	if !l.Allow("b") {
		t.Error("caller b must not share caller a's bucket")
	}
}

func TestAllow_RefillsOverTime(t *testing.T) {
	l := New(50, 1) // one token every 20ms

	if !l.Allow("caller") {
		t.Fatal("first request should pass")
	}
	if l.Allow("caller") {
		t.Fatal("bucket should be empty")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("caller") {
		t.Error("bucket should have refilled")
	}
}

func TestCleanup_EvictsIdleCallers(t *testing.T) {
	l := New(1, 1)
	l.idleTTL = 10 * time.Millisecond

	l.Allow("idle")
	time.Sleep(25 * time.Millisecond)
	l.Cleanup()

	if n := l.Len(); n != 0 {
		t.Errorf("expected idle caller evicted, still tracking %d", n)
	}
}
