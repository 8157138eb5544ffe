package queue

import (
	"testing"
	"time"
)

func TestSetPausedIdempotent(t *testing.T) {
	s := newSignals()
	if !s.setPaused(true) {
		t.Fatalf("first pause should change state")
	}
	if s.setPaused(true) {
		t.Fatalf("second pause is a no-op")
	}
	if !s.setPaused(false) {
		t.Fatalf("resume should change state")
	}
	if s.setPaused(false) {
		t.Fatalf("second resume is a no-op")
	}
}

func TestWaitNotPausedWakesOnResume(t *testing.T) {
	s := newSignals()
	s.setPaused(true)

	woke := make(chan bool, 1)
	go func() { woke <- s.waitNotPaused() }()

	select {
	case <-woke:
		t.Fatalf("waiter should block while paused")
	case <-time.After(20 * time.Millisecond):
	}

	s.setPaused(false)
	select {
	case terminated := <-woke:
		if terminated {
			t.Fatalf("resume wake should not report termination")
		}
	case <-time.After(time.Second):
		t.Fatalf("waiter did not wake on resume")
	}
}

func TestTerminateReleasesBothGates(t *testing.T) {
	s := newSignals()
	s.setPaused(true) // empty is true as well

	pausedWake := make(chan bool, 1)
	emptyWake := make(chan bool, 1)
	go func() { pausedWake <- s.waitNotPaused() }()
	go func() { emptyWake <- s.waitNotEmpty() }()

	time.Sleep(10 * time.Millisecond)
	s.terminate()

	for _, ch := range []chan bool{pausedWake, emptyWake} {
		select {
		case terminated := <-ch:
			if !terminated {
				t.Fatalf("wake after terminate must report termination")
			}
		case <-time.After(time.Second):
			t.Fatalf("terminate did not release a gate")
		}
	}
}

func TestMarkEmptyGenerationRace(t *testing.T) {
	s := newSignals()
	s.markNotEmpty()

	// Worker snapshots the generation, peeks nothing... and meanwhile a
	// fresh append commits. The stale empty-claim must lose.
	gen := s.generation()
	s.markNotEmpty()
	if s.markEmptyIfStale(gen) {
		t.Fatalf("stale generation must not mark empty")
	}
	if s.waitNotEmpty() {
		t.Fatalf("queue should still be non-empty")
	}

	// With no interleaved append the claim sticks.
	gen = s.generation()
	if !s.markEmptyIfStale(gen) {
		t.Fatalf("current generation should mark empty")
	}
}

func TestTermChanClosesOnce(t *testing.T) {
	s := newSignals()
	select {
	case <-s.termChan():
		t.Fatalf("term chan closed too early")
	default:
	}
	s.terminate()
	s.terminate() // second call is a no-op
	select {
	case <-s.termChan():
	default:
		t.Fatalf("term chan should be closed after terminate")
	}
}
