// Package pebblestore provides a thin wrapper around Pebble with fsync policy,
// batches, and transient-contention classification for the journal's retry
// schedule.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "/path/to/queue-store",
//	    Fsync:   pebblestore.FsyncModeAlways,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	// Atomic updates with batches
//	b := db.NewBatch()
//	_ = b.Set([]byte("k"), []byte("v"), nil)
//	_ = db.CommitBatch(context.Background(), b)
//	b.Close()
//
// Opening an existing directory reuses it, so records written before a crash
// are visible again after reopen. Pebble's own directory lock rejects a second
// process opening the same store.
package pebblestore
