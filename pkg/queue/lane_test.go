package queue

import (
	"sync"
	"testing"
	"time"
)

func TestLaneRunsOpsInOrder(t *testing.T) {
	l := newLane()
	defer l.Close()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 100; i++ {
		i := i
		if err := l.Submit(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	l.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 100 {
		t.Fatalf("want 100 ops, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("out of order at %d: %d", i, v)
		}
	}
}

func TestLaneFlushWaitsForBacklog(t *testing.T) {
	l := newLane()
	defer l.Close()

	done := false
	_ = l.Submit(func() {
		time.Sleep(30 * time.Millisecond)
		done = true
	})
	l.Flush()
	if !done {
		t.Fatalf("flush returned before backlog completed")
	}
}

func TestLaneCloseDrainsThenRejects(t *testing.T) {
	l := newLane()

	ran := 0
	for i := 0; i < 10; i++ {
		_ = l.Submit(func() { ran++ })
	}
	l.Close()
	if ran != 10 {
		t.Fatalf("close must drain the backlog, ran %d", ran)
	}
	if err := l.Submit(func() {}); err != errLaneClosed {
		t.Fatalf("submit after close: want errLaneClosed, got %v", err)
	}
	// Flush after close returns immediately.
	l.Flush()
	// Close is safe to repeat.
	l.Close()
}
