package journal

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/earljwagner/IPOfflineQueue/internal/storage/pebble"
)

// ErrCorruptRecord reports a stored record whose checksum no longer matches.
var ErrCorruptRecord = errors.New("journal: corrupt record")

// Record is one persisted entry: a strictly increasing sequence number and an
// opaque payload whose encoding belongs to the caller.
type Record struct {
	Seq     uint64
	Payload []byte
}

// Journal provides ordered append/read/delete over one queue store.
type Journal struct {
	db    *pebblestore.DB
	retry retryPolicy

	mu      sync.Mutex
	lastSeq uint64
}

// Options tunes a Journal. The zero value selects the defaults.
type Options struct {
	// RetryBudget bounds the one-second retries taken when the store keeps
	// reporting contention, after the immediate and short-delay retries.
	// Zero selects the default of 10.
	RetryBudget int
}

// Open initializes a Journal and restores lastSeq from metadata if present.
// An absent metadata key means a fresh store; an existing one means records
// written before a restart are served again in order.
func Open(db *pebblestore.DB, opts Options) (*Journal, error) {
	j := &Journal{db: db, retry: defaultRetryPolicy()}
	if opts.RetryBudget > 0 {
		j.retry.budget = opts.RetryBudget
	}
	meta, err := db.Get(MetaKey())
	switch {
	case err == nil:
		if len(meta) < 8 {
			return nil, ErrCorruptRecord
		}
		j.lastSeq = binary.BigEndian.Uint64(meta[:8])
	case errors.Is(err, pebble.ErrNotFound):
		// fresh store
	default:
		return nil, err
	}
	return j, nil
}

// Append persists the payload under the next sequence number, committing the
// record and updated metadata atomically. Returns the assigned sequence.
func (j *Journal) Append(payload []byte) (uint64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	seq := j.lastSeq + 1
	val := EncodeRecord(payload)
	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], seq)

	err := j.retry.do(func() error {
		b := j.db.NewBatch()
		defer b.Close()
		if err := b.Set(RecKey(seq), val, nil); err != nil {
			return err
		}
		if err := b.Set(MetaKey(), meta[:], nil); err != nil {
			return err
		}
		return j.db.CommitBatch(context.Background(), b)
	})
	if err != nil {
		return 0, err
	}
	j.lastSeq = seq
	return seq, nil
}

// First returns the lowest-sequence record. ok is false when the journal holds
// no records. A record whose checksum fails returns its sequence together with
// ErrCorruptRecord so the caller can decide what to do with the slot.
func (j *Journal) First() (Record, bool, error) {
	lo, hi := RecRange()
	iter, err := j.db.NewIter(&pebble.IterOptions{LowerBound: lo, UpperBound: hi})
	if err != nil {
		return Record{}, false, err
	}
	defer iter.Close()

	for ok := iter.First(); ok; ok = iter.Next() {
		seq, okKey := SeqFromRecKey(iter.Key())
		if !okKey {
			// Foreign key shape inside the record range. Not a record the
			// journal wrote; passing over it must not report emptiness.
			continue
		}
		payload, okVal := DecodeRecord(iter.Value())
		if !okVal {
			return Record{Seq: seq}, true, ErrCorruptRecord
		}
		return Record{Seq: seq, Payload: payload}, true, nil
	}
	return Record{}, false, iter.Error()
}

// Delete removes the record with the given sequence number.
func (j *Journal) Delete(seq uint64) error {
	return j.retry.do(func() error {
		return j.db.Delete(RecKey(seq))
	})
}

// ScanAll returns every decodable record in ascending sequence order. Records
// with checksum failures are passed over; First surfaces them to the worker.
func (j *Journal) ScanAll() ([]Record, error) {
	lo, hi := RecRange()
	iter, err := j.db.NewIter(&pebble.IterOptions{LowerBound: lo, UpperBound: hi})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []Record
	for ok := iter.First(); ok; ok = iter.Next() {
		seq, ok2 := SeqFromRecKey(iter.Key())
		if !ok2 {
			continue
		}
		payload, ok2 := DecodeRecord(iter.Value())
		if !ok2 {
			continue
		}
		out = append(out, Record{Seq: seq, Payload: payload})
	}
	return out, iter.Error()
}

// Len counts the stored records.
func (j *Journal) Len() (int, error) {
	lo, hi := RecRange()
	iter, err := j.db.NewIter(&pebble.IterOptions{LowerBound: lo, UpperBound: hi})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	n := 0
	for ok := iter.First(); ok; ok = iter.Next() {
		n++
	}
	return n, iter.Error()
}

// Clear removes all records in one batch. lastSeq is preserved so sequence
// numbers stay strictly increasing for the life of the store.
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	lo, hi := RecRange()
	return j.retry.do(func() error {
		b := j.db.NewBatch()
		defer b.Close()
		if err := b.DeleteRange(lo, hi, nil); err != nil {
			return err
		}
		return j.db.CommitBatch(context.Background(), b)
	})
}

// LastSeq returns the highest sequence number ever assigned.
func (j *Journal) LastSeq() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastSeq
}
