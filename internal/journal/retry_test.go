package journal

import (
	"errors"
	"fmt"
	"testing"
	"time"

	pebblestore "github.com/earljwagner/IPOfflineQueue/internal/storage/pebble"
)

func testPolicy(slept *[]time.Duration) retryPolicy {
	return retryPolicy{
		shortDelay: 50 * time.Millisecond,
		interval:   time.Second,
		budget:     3,
		sleep:      func(d time.Duration) { *slept = append(*slept, d) },
	}
}

func busyN(n int) func() error {
	calls := 0
	return func() error {
		calls++
		if calls <= n {
			return fmt.Errorf("commit: %w", pebblestore.ErrBusy)
		}
		return nil
	}
}

func TestRetrySucceedsImmediately(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)
	if err := p.do(busyN(0)); err != nil {
		t.Fatalf("do: %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("no sleeps expected, got %v", slept)
	}
}

func TestRetryImmediateThenShortDelay(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)
	// busy twice: first attempt + immediate retry fail, short-delay retry wins
	if err := p.do(busyN(2)); err != nil {
		t.Fatalf("do: %v", err)
	}
	if len(slept) != 1 || slept[0] != p.shortDelay {
		t.Fatalf("want one short delay, got %v", slept)
	}
}

func TestRetryIntervalSchedule(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)
	// busy through short delay plus one interval retry
	if err := p.do(busyN(4)); err != nil {
		t.Fatalf("do: %v", err)
	}
	want := []time.Duration{p.shortDelay, p.interval}
	if len(slept) != len(want) {
		t.Fatalf("want sleeps %v, got %v", want, slept)
	}
}

func TestRetryBudgetExhaustion(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)
	err := p.do(func() error { return pebblestore.ErrBusy })
	if !errors.Is(err, ErrRetryExhausted) {
		t.Fatalf("want ErrRetryExhausted, got %v", err)
	}
	// shortDelay + budget interval sleeps
	if len(slept) != 1+p.budget {
		t.Fatalf("want %d sleeps, got %d", 1+p.budget, len(slept))
	}
}

func TestRetryPassesThroughNonBusyErrors(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)
	boom := errors.New("disk on fire")
	if err := p.do(func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("non-busy error should pass through, got %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("non-busy errors are not retried")
	}
}
