package journal

import (
	"errors"
	"fmt"
	"time"

	pebblestore "github.com/earljwagner/IPOfflineQueue/internal/storage/pebble"
)

// ErrRetryExhausted reports that a write kept hitting transient contention
// past the retry budget. Fatal for the owning queue.
var ErrRetryExhausted = errors.New("journal: store busy, retry budget exhausted")

// retryPolicy implements the contention schedule: one immediate retry, then
// one retry after shortDelay, then budget retries at interval.
type retryPolicy struct {
	shortDelay time.Duration
	interval   time.Duration
	budget     int
	sleep      func(time.Duration)
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		shortDelay: 50 * time.Millisecond,
		interval:   time.Second,
		budget:     10,
		sleep:      time.Sleep,
	}
}

// do runs op, retrying per the schedule while the error classifies as busy.
// Non-busy errors are returned as-is on first occurrence.
func (p retryPolicy) do(op func() error) error {
	err := op()
	if err == nil || !pebblestore.IsBusy(err) {
		return err
	}
	// immediate retry
	if err = op(); err == nil || !pebblestore.IsBusy(err) {
		return err
	}
	p.sleep(p.shortDelay)
	if err = op(); err == nil || !pebblestore.IsBusy(err) {
		return err
	}
	for i := 0; i < p.budget; i++ {
		p.sleep(p.interval)
		if err = op(); err == nil || !pebblestore.IsBusy(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
}
