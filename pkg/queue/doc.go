// Package queue implements a durable, crash-safe, strictly ordered background
// action queue for client applications that must reliably hand a sequence of
// operations to a backend despite network failures, suspension, and process
// restarts.
//
// # Overview
//
// Every enqueued action is persisted to an embedded Pebble store before any
// execution attempt, executed one at a time in submission order by the
// caller's Delegate, and deleted from the durable log only after the Delegate
// reports success. The guarantee is at-least-once, strictly ordered.
//
// Three components cooperate:
//   - an insert lane: a single-consumer goroutine turning arbitrary-thread
//     Enqueue calls into strictly ordered appends, returning to callers
//     immediately
//   - a worker loop: one background goroutine draining the log in order and
//     invoking the Delegate
//   - lifecycle state: three observable signals (empty, paused, terminating)
//     that are the sole synchronization surface between producers, pausers,
//     and the worker
//
// Usage
//
//	q, err := queue.Open("uploads", delegate, queue.Options{})
//	if err != nil { /* handle */ }
//	defer q.Close()
//
//	_ = q.Enqueue(encodedAction)
//
// A Delegate returning ResultFailurePause pauses the queue with the failed
// action left at the head; Resume (or an auto-resume trigger) retries it.
// ResultFailureRetry keeps the action at the head and retries after a fixed
// backoff, so transient failures cannot busy-loop.
//
// Payloads are opaque bytes. Encode and decode belong to the caller.
package queue
