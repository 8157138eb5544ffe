package journal

import "encoding/binary"

// Keyspace within one queue store.
const (
	metaKeyStr = "q/meta"
	recPrefix  = "q/rec/"
)

// MetaKey returns the journal metadata key (lastSeq).
func MetaKey() []byte { return []byte(metaKeyStr) }

// RecKey returns the record key for a sequence number.
// Format: q/rec/{seq_be8}
func RecKey(seq uint64) []byte {
	key := make([]byte, len(recPrefix)+8)
	copy(key, recPrefix)
	binary.BigEndian.PutUint64(key[len(recPrefix):], seq)
	return key
}

// RecRange returns the [lo, hi) bounds covering all record keys.
func RecRange() (lo, hi []byte) {
	lo = []byte(recPrefix)
	hi = make([]byte, len(recPrefix)+1)
	copy(hi, recPrefix)
	hi[len(recPrefix)] = 0xFF
	return lo, hi
}

// SeqFromRecKey extracts the sequence number from a record key.
func SeqFromRecKey(key []byte) (uint64, bool) {
	if len(key) != len(recPrefix)+8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[len(recPrefix):]), true
}
