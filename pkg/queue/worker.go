package queue

import (
	"errors"
	"time"

	"github.com/earljwagner/IPOfflineQueue/internal/journal"
	"github.com/earljwagner/IPOfflineQueue/pkg/log"
)

// runWorker drains the journal in order, one delegate callback in flight at a
// time. States: draining, waiting-paused, waiting-empty, halted. Every wait
// re-validates its condition after waking, and terminating short-circuits
// each wait point.
func (q *Queue) runWorker() {
	q.workerGID.Store(curGoroutineID())
	defer close(q.workerDone)

	for {
		if q.sig.terminated() {
			q.logger.Debug("worker halted")
			return
		}
		if q.sig.waitNotPaused() {
			q.logger.Debug("worker halted")
			return
		}
		if q.sig.waitNotEmpty() {
			q.logger.Debug("worker halted")
			return
		}

		gen := q.sig.generation()
		rec, ok, err := q.jrnl.First()
		if err != nil && !errors.Is(err, journal.ErrCorruptRecord) {
			q.fatal("peek", err)
		}
		if !ok {
			// The queue drained before we got here. Declare empty unless a
			// fresh append committed since the generation snapshot.
			q.sig.markEmptyIfStale(gen)
			continue
		}
		if q.sig.isPaused() {
			// Paused while we were waiting for work: abandon this record
			// without deleting so order is preserved across the pause.
			continue
		}
		if errors.Is(err, journal.ErrCorruptRecord) {
			// Skip-and-log: an undecodable head would wedge the queue
			// forever if left in place.
			q.logger.Error("dropping corrupt record", log.Uint64("seq", rec.Seq))
			if derr := q.jrnl.Delete(rec.Seq); derr != nil {
				q.fatal("delete corrupt record", derr)
			}
			continue
		}

		switch q.execute(rec.Payload) {
		case ResultSuccess:
			if err := q.jrnl.Delete(rec.Seq); err != nil {
				q.fatal("delete", err)
			}
		case ResultFailureRetry:
			q.logger.Info("action failed, retrying after backoff",
				log.Uint64("seq", rec.Seq), log.Dur("backoff", q.retryBackoff))
			select {
			case <-time.After(q.retryBackoff):
			case <-q.sig.termChan():
			}
		default:
			// ResultFailurePause and any unknown value: keep the record at
			// the head for retry after resume.
			q.logger.Info("action failed, pausing queue", log.Uint64("seq", rec.Seq))
			q.sig.setPaused(true)
		}
	}
}

// execute invokes the delegate synchronously, inside the keepalive span when
// one was injected.
func (q *Queue) execute(payload []byte) Result {
	if q.keepalive != nil {
		end := q.keepalive.Begin(q.name)
		defer end()
	}
	return q.delegate.Execute(payload)
}
