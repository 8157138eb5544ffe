package queue

import (
	"time"

	"github.com/earljwagner/IPOfflineQueue/internal/registry"
)

// Pause stops the worker from starting new delegate callbacks. An in-flight
// callback finishes; the signal is observed at the worker's next wait point.
// Idempotent.
func (q *Queue) Pause() {
	if q.sig.setPaused(true) {
		q.logger.Info("paused")
	}
}

// Resume lets the worker drain again. Idempotent.
func (q *Queue) Resume() {
	if q.sig.setPaused(false) {
		q.logger.Info("resumed")
	}
}

// AutoResume resumes only if the queue is currently paused and the delegate
// approves (see AutoResumeApprover; no gate means approval). Call it from
// external triggers such as app-foregrounded.
func (q *Queue) AutoResume() {
	if !q.sig.isPaused() {
		return
	}
	if gate, ok := q.delegate.(AutoResumeApprover); ok && !gate.ShouldAutoResume() {
		q.logger.Debug("auto-resume vetoed by delegate")
		return
	}
	q.Resume()
}

// SetAutoResumeInterval installs a repeating timer calling AutoResume every
// interval. A second call replaces the previous timer; zero or negative
// cancels it. At most one timer is active per queue.
func (q *Queue) SetAutoResumeInterval(interval time.Duration) {
	q.timerMu.Lock()
	defer q.timerMu.Unlock()
	if q.timerStop != nil {
		close(q.timerStop)
		q.timerStop = nil
	}
	if interval <= 0 {
		return
	}
	stop := make(chan struct{})
	q.timerStop = stop
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				q.AutoResume()
			}
		}
	}()
}

// SetRespondToReachabilityChanges subscribes the queue to the injected
// reachability monitor: when connectivity returns, AutoResume runs. Enabling
// without a monitor configured is a no-op. Disabling detaches.
func (q *Queue) SetRespondToReachabilityChanges(respond bool) {
	q.reachMu.Lock()
	defer q.reachMu.Unlock()
	if !respond {
		if q.reachCancel != nil {
			q.reachCancel()
			q.reachCancel = nil
		}
		return
	}
	if q.reach == nil || q.reachCancel != nil {
		return
	}
	q.reachCancel = q.reach.Subscribe(func(reachable bool) {
		if reachable {
			q.AutoResume()
		}
	})
}

// Close halts the queue: detach external triggers, drain scheduled inserts
// so nothing is lost, stop the worker, release the store, and free the name.
// It never interrupts an in-flight callback; the worker finishes its current
// iteration first. Idempotent; concurrent calls return after teardown
// completes. Calling Close from inside the Delegate callback is allowed and
// returns immediately while teardown finishes in the background.
func (q *Queue) Close() error {
	reentrant := curGoroutineID() == q.workerGID.Load()
	q.haltOnce.Do(func() {
		q.logger.Info("halting")
		q.SetRespondToReachabilityChanges(false)
		q.SetAutoResumeInterval(0)
		q.lane.Close()
		q.sig.terminate()
		finish := func() {
			<-q.workerDone
			q.closeErr = q.db.Close()
			registry.Unregister(q.name, q.instID)
			q.logger.Info("halted")
			close(q.closedCh)
		}
		if reentrant {
			go finish()
		} else {
			finish()
		}
	})
	if reentrant {
		return nil
	}
	<-q.closedCh
	return q.closeErr
}
