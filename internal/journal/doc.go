// Package journal implements the durable log store backing one named queue.
//
// # Overview
//
// A journal is an ordered, persisted sequence of opaque byte records over one
// Pebble store. Keys are lexicographically ordered for range scans:
//   - q/meta            (journal metadata: lastSeq)
//   - q/rec/{seq_be8}   (records)
//
// Records are stored as: payload | crc32c(payload). Sequence numbers are
// strictly increasing, assigned at append, and never reused; Clear removes
// all records but leaves lastSeq alone.
//
// API surface (internal)
//
//	j, _ := journal.Open(db, journal.Options{})
//	seq, _ := j.Append([]byte("payload"))   // committed atomically with meta
//	rec, ok, _ := j.First()                 // lowest-seq record, if any
//	_ = j.Delete(rec.Seq)
//	recs, _ := j.ScanAll()                  // ascending
//	_ = j.Clear()
//
// # Contention
//
// Writes run under a retry schedule for transient "store busy" conditions:
// one immediate retry, one retry after a short fixed delay, then bounded
// retries at one-second intervals. Exhausting the budget returns
// ErrRetryExhausted, which is fatal for the owning queue: a store that cannot
// commit cannot preserve ordering or durability.
package journal
