package queue

import "sync"

// signals holds the three observable booleans coordinating the producer lane,
// pausers, and the worker: empty, paused, terminating. One mutex guards them;
// waiters re-validate their condition after every wake, so a stale or
// spurious wake is harmless.
//
// The not-empty generation counter closes the lost-wakeup race between the
// worker declaring the queue empty and the lane committing a fresh append:
// the worker captures the generation before its peek and only marks empty if
// no markNotEmpty happened in between.
type signals struct {
	mu          sync.Mutex
	paused      bool
	empty       bool
	terminating bool
	gen         uint64

	changed chan struct{} // closed and replaced on every mutation
	term    chan struct{} // closed once when terminating is set
}

func newSignals() *signals {
	return &signals{
		empty:   true,
		changed: make(chan struct{}),
		term:    make(chan struct{}),
	}
}

func (s *signals) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// setPaused flips the paused signal. Reports whether the value changed;
// repeated Pause or Resume calls are no-ops.
func (s *signals) setPaused(v bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused == v {
		return false
	}
	s.paused = v
	s.broadcastLocked()
	return true
}

func (s *signals) isPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// markNotEmpty records that a committed append made the queue non-empty.
func (s *signals) markNotEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.empty {
		s.empty = false
		s.broadcastLocked()
	}
}

// generation returns the current not-empty generation.
func (s *signals) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// markEmptyIfStale sets empty only if no markNotEmpty happened since the
// caller captured gen. Returns false when a fresh append won the race.
func (s *signals) markEmptyIfStale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	if !s.empty {
		s.empty = true
		s.broadcastLocked()
	}
	return true
}

// terminate sets the terminating signal exactly once and wakes every waiter.
func (s *signals) terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminating {
		return
	}
	s.terminating = true
	close(s.term)
	s.broadcastLocked()
}

func (s *signals) terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminating
}

// termChan is closed when terminating is set; for interruptible sleeps.
func (s *signals) termChan() <-chan struct{} { return s.term }

// waitNotPaused blocks until paused is false. Returns true if terminating was
// set instead.
func (s *signals) waitNotPaused() (terminated bool) {
	s.mu.Lock()
	for {
		if s.terminating {
			s.mu.Unlock()
			return true
		}
		if !s.paused {
			s.mu.Unlock()
			return false
		}
		ch := s.changed
		s.mu.Unlock()
		<-ch
		s.mu.Lock()
	}
}

// waitNotEmpty blocks until empty is false. Returns true if terminating was
// set instead.
func (s *signals) waitNotEmpty() (terminated bool) {
	s.mu.Lock()
	for {
		if s.terminating {
			s.mu.Unlock()
			return true
		}
		if !s.empty {
			s.mu.Unlock()
			return false
		}
		ch := s.changed
		s.mu.Unlock()
		<-ch
		s.mu.Lock()
	}
}
