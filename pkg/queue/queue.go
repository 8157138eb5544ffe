package queue

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/earljwagner/IPOfflineQueue/internal/config"
	"github.com/earljwagner/IPOfflineQueue/internal/journal"
	"github.com/earljwagner/IPOfflineQueue/internal/registry"
	pebblestore "github.com/earljwagner/IPOfflineQueue/internal/storage/pebble"
	"github.com/earljwagner/IPOfflineQueue/pkg/id"
	"github.com/earljwagner/IPOfflineQueue/pkg/log"
)

var (
	// ErrClosed reports an operation on a halted queue.
	ErrClosed = errors.New("queue: closed")
	// ErrDuplicateName reports a second live queue over an in-use name.
	ErrDuplicateName = registry.ErrDuplicateName
)

var idgen = id.NewGenerator()

// Options configures a Queue. The zero value is usable.
type Options struct {
	// DataDir is the base directory holding queue stores. Defaults to the
	// per-OS cache directory.
	DataDir string
	// Fsync controls WAL sync policy. Defaults to FsyncModeAlways: an
	// enqueue is durable before the lane marks it pending.
	Fsync pebblestore.FsyncMode
	// RetryBackoff is the wait before re-executing the head action after
	// ResultFailureRetry. Defaults to one second.
	RetryBackoff time.Duration
	// RetryBudget bounds the one-second retries the store takes on
	// persistent write contention before the queue gives up. Zero selects
	// the journal default.
	RetryBudget int
	// Logger receives structured queue events. Defaults to a console logger
	// gated at warn level.
	Logger log.Logger
	// Keepalive, when set, spans every Delegate callback.
	Keepalive Keepalive
	// Reachability, when set, can trigger auto-resume on connectivity
	// changes; see SetRespondToReachabilityChanges.
	Reachability ReachabilityMonitor
}

// Queue is one named, persisted, ordered collection of pending actions plus
// its worker goroutine and state signals.
type Queue struct {
	name     string
	instID   id.ID
	delegate Delegate
	logger   log.Logger

	db   *pebblestore.DB
	jrnl *journal.Journal

	sig  *signals
	lane *lane

	keepalive    Keepalive
	retryBackoff time.Duration

	workerDone chan struct{}
	workerGID  atomic.Uint64

	// lifecycle controller state
	timerMu   sync.Mutex
	timerStop chan struct{}

	reach       ReachabilityMonitor
	reachMu     sync.Mutex
	reachCancel func()

	haltOnce sync.Once
	closedCh chan struct{}
	closeErr error
}

// Open constructs the queue named name: it resolves the store path
// deterministically from the name, claims the name in the process-wide
// registry, opens (or reuses) the persisted store, and starts the insert lane
// and worker. A second live instance over the same name fails with
// ErrDuplicateName.
func Open(name string, delegate Delegate, opts Options) (*Queue, error) {
	if name == "" {
		return nil, errors.New("queue: name is required")
	}
	if delegate == nil {
		return nil, errors.New("queue: delegate is required")
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = config.DefaultCacheDir()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewLogger(log.WithLevel(log.WarnLevel))
	}
	fsync := opts.Fsync
	if fsync == pebblestore.FsyncModeUnspecified {
		fsync = pebblestore.FsyncModeAlways
	}
	backoff := opts.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	instID := idgen.Next()
	if err := registry.Register(name, instID); err != nil {
		return nil, fmt.Errorf("queue %q: %w", name, err)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		registry.Unregister(name, instID)
		return nil, err
	}
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: config.StorePath(dataDir, name),
		Fsync:   fsync,
	})
	if err != nil {
		registry.Unregister(name, instID)
		return nil, fmt.Errorf("queue %q: open store: %w", name, err)
	}
	jrnl, err := journal.Open(db, journal.Options{RetryBudget: opts.RetryBudget})
	if err != nil {
		_ = db.Close()
		registry.Unregister(name, instID)
		return nil, fmt.Errorf("queue %q: open journal: %w", name, err)
	}

	q := &Queue{
		name:         name,
		instID:       instID,
		delegate:     delegate,
		logger:       logger.With(log.Component("queue"), log.Str("name", name), log.Str("instance", instID.String())),
		db:           db,
		jrnl:         jrnl,
		sig:          newSignals(),
		keepalive:    opts.Keepalive,
		retryBackoff: backoff,
		reach:        opts.Reachability,
		workerDone:   make(chan struct{}),
		closedCh:     make(chan struct{}),
	}

	// Records that survived a restart must wake the worker immediately.
	if n, err := jrnl.Len(); err == nil && n > 0 {
		q.sig.markNotEmpty()
		q.logger.Info("recovered pending actions", log.Int("count", n))
	}

	q.lane = newLane()
	go q.runWorker()

	q.logger.Info("queue opened", log.Uint64("last_seq", jrnl.LastSeq()))
	return q, nil
}

// Name returns the queue's name.
func (q *Queue) Name() string { return q.name }

// Enqueue persists payload for later execution. It schedules the append on
// the single-consumer lane and returns without waiting for durability;
// appends commit in scheduling order. Use SyncInserts to wait.
func (q *Queue) Enqueue(payload []byte) error {
	p := append([]byte(nil), payload...)
	err := q.lane.Submit(func() {
		if _, err := q.jrnl.Append(p); err != nil {
			q.fatal("append", err)
		}
		q.sig.markNotEmpty()
	})
	if err != nil {
		return ErrClosed
	}
	return nil
}

// Filter scans all stored records in ascending order on the insert lane and
// deletes those the predicate marks VerdictDelete. Best-effort by design:
// there is no mutual exclusion against the worker, so a record may finish
// executing concurrently with the scan. Intended for dropping redundant
// not-yet-executed idempotent duplicates.
func (q *Queue) Filter(pred func(payload []byte) Verdict) error {
	if pred == nil {
		return errors.New("queue: nil filter predicate")
	}
	err := q.lane.Submit(func() {
		recs, err := q.jrnl.ScanAll()
		if err != nil {
			q.logger.Warn("filter scan failed", log.Err(err))
			return
		}
		removed := 0
		for _, rec := range recs {
			if pred(rec.Payload) != VerdictDelete {
				continue
			}
			if err := q.jrnl.Delete(rec.Seq); err != nil {
				q.logger.Warn("filter delete failed", log.Uint64("seq", rec.Seq), log.Err(err))
				continue
			}
			removed++
		}
		if removed > 0 {
			q.logger.Info("filter removed records", log.Int("count", removed))
		}
	})
	if err != nil {
		return ErrClosed
	}
	return nil
}

// Clear removes every stored record. Runs on the insert lane so it cannot
// interleave with appends.
func (q *Queue) Clear() error {
	err := q.lane.Submit(func() {
		if err := q.jrnl.Clear(); err != nil {
			q.fatal("clear", err)
		}
	})
	if err != nil {
		return ErrClosed
	}
	return nil
}

// Len reports the number of persisted, not-yet-completed actions.
func (q *Queue) Len() (int, error) {
	select {
	case <-q.closedCh:
		return 0, ErrClosed
	default:
	}
	return q.jrnl.Len()
}

// SyncInserts blocks until every enqueue scheduled before the call is
// durable. Call it when the host application is about to suspend.
func (q *Queue) SyncInserts() {
	q.lane.Flush()
}

// fatal surfaces an unrecoverable storage failure. A store that cannot
// commit cannot preserve ordering or durability, so degraded operation is
// refused: log, then crash.
func (q *Queue) fatal(op string, err error) {
	q.logger.Error("unrecoverable storage failure", log.Str("op", op), log.Err(err))
	panic(fmt.Sprintf("offlinequeue %q: %s: %v", q.name, op, err))
}
