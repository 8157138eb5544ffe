package queue

import (
	"errors"
	"sync"
)

// errLaneClosed reports a submit after the lane stopped accepting work.
var errLaneClosed = errors.New("queue: insert lane closed")

// lane is the single-consumer serializer for appends, filters, and clears.
// Submit never blocks the caller; ops run on one goroutine in submission
// order, so appends can never race across callers. Close drains the backlog
// before stopping, which is what makes halt lose nothing.
type lane struct {
	mu     sync.Mutex
	ops    []func()
	notify chan struct{} // closed and replaced when ops or closed change
	closed bool
	done   chan struct{} // closed when the runner exits
}

func newLane() *lane {
	l := &lane{
		notify: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *lane) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.ops) == 0 {
			if l.closed {
				l.mu.Unlock()
				return
			}
			ch := l.notify
			l.mu.Unlock()
			<-ch
			l.mu.Lock()
		}
		op := l.ops[0]
		l.ops = l.ops[1:]
		l.mu.Unlock()
		op()
	}
}

func (l *lane) wakeLocked() {
	close(l.notify)
	l.notify = make(chan struct{})
}

// Submit schedules op to run on the lane, in submission order.
func (l *lane) Submit(op func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return errLaneClosed
	}
	l.ops = append(l.ops, op)
	l.wakeLocked()
	return nil
}

// Flush blocks until every op submitted before it has completed. After Close
// it returns immediately: the backlog was drained during shutdown.
func (l *lane) Flush() {
	flushed := make(chan struct{})
	if err := l.Submit(func() { close(flushed) }); err != nil {
		return
	}
	<-flushed
}

// Close stops accepting new ops, waits for the backlog to drain, and stops
// the runner. Safe to call more than once.
func (l *lane) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		l.wakeLocked()
	}
	l.mu.Unlock()
	<-l.done
}
