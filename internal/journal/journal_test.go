package journal

import (
	"fmt"
	"testing"

	pebblestore "github.com/earljwagner/IPOfflineQueue/internal/storage/pebble"
)

func openTestJournal(t *testing.T) (*Journal, *pebblestore.DB, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	j, err := Open(db, Options{})
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	return j, db, dir
}

func TestAppendAssignsAscendingSeqs(t *testing.T) {
	j, _, _ := openTestJournal(t)
	var prev uint64
	for i := 0; i < 5; i++ {
		seq, err := j.Append([]byte(fmt.Sprintf("p%d", i)))
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if seq <= prev {
			t.Fatalf("seq %d not ascending after %d", seq, prev)
		}
		prev = seq
	}
}

func TestFirstReturnsLowestSeq(t *testing.T) {
	j, _, _ := openTestJournal(t)
	s1, _ := j.Append([]byte("a"))
	_, _ = j.Append([]byte("b"))

	rec, ok, err := j.First()
	if err != nil || !ok {
		t.Fatalf("first: ok=%v err=%v", ok, err)
	}
	if rec.Seq != s1 || string(rec.Payload) != "a" {
		t.Fatalf("want head (%d, a), got (%d, %q)", s1, rec.Seq, rec.Payload)
	}

	if err := j.Delete(s1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rec, ok, err = j.First()
	if err != nil || !ok || string(rec.Payload) != "b" {
		t.Fatalf("head after delete should be b: %v %v %q", ok, err, rec.Payload)
	}
}

func TestFirstEmpty(t *testing.T) {
	j, _, _ := openTestJournal(t)
	_, ok, err := j.First()
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if ok {
		t.Fatalf("empty journal should report no head")
	}
}

func TestScanAllAscending(t *testing.T) {
	j, _, _ := openTestJournal(t)
	want := []string{"one", "two", "three"}
	for _, p := range want {
		if _, err := j.Append([]byte(p)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	recs, err := j.ScanAll()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(recs) != len(want) {
		t.Fatalf("want %d records, got %d", len(want), len(recs))
	}
	for i, rec := range recs {
		if string(rec.Payload) != want[i] {
			t.Fatalf("record %d: want %q got %q", i, want[i], rec.Payload)
		}
		if i > 0 && recs[i-1].Seq >= rec.Seq {
			t.Fatalf("scan not ascending at %d", i)
		}
	}
}

func TestClearKeepsLastSeq(t *testing.T) {
	j, _, _ := openTestJournal(t)
	_, _ = j.Append([]byte("x"))
	s2, _ := j.Append([]byte("y"))

	if err := j.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, _ := j.Len(); n != 0 {
		t.Fatalf("want empty after clear, got %d", n)
	}
	s3, err := j.Append([]byte("z"))
	if err != nil {
		t.Fatalf("append after clear: %v", err)
	}
	if s3 <= s2 {
		t.Fatalf("seq must keep increasing across Clear: %d <= %d", s3, s2)
	}
}

func TestReopenRestoresRecordsAndSeq(t *testing.T) {
	dir := t.TempDir()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	j, err := Open(db, Options{})
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	var last uint64
	for i := 0; i < 3; i++ {
		last, _ = j.Append([]byte{byte('a' + i)})
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db2, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("reopen pebble: %v", err)
	}
	defer db2.Close()
	j2, err := Open(db2, Options{})
	if err != nil {
		t.Fatalf("reopen journal: %v", err)
	}
	recs, err := j2.ScanAll()
	if err != nil || len(recs) != 3 {
		t.Fatalf("want 3 records after reopen, got %d (%v)", len(recs), err)
	}
	if j2.LastSeq() != last {
		t.Fatalf("lastSeq not restored: want %d got %d", last, j2.LastSeq())
	}
	seq, err := j2.Append([]byte("d"))
	if err != nil || seq != last+1 {
		t.Fatalf("append after reopen: seq=%d err=%v", seq, err)
	}
}

func TestOpenHonorsRetryBudget(t *testing.T) {
	dir := t.TempDir()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	j, err := Open(db, Options{RetryBudget: 3})
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	if j.retry.budget != 3 {
		t.Fatalf("retry budget not applied: got %d", j.retry.budget)
	}

	jd, err := Open(db, Options{})
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	if jd.retry.budget != defaultRetryPolicy().budget {
		t.Fatalf("zero budget must select the default, got %d", jd.retry.budget)
	}
}

func TestFirstSkipsMalformedKeys(t *testing.T) {
	j, db, _ := openTestJournal(t)

	// A foreign key planted inside the record range must not make the
	// journal report emptiness while real records follow it. Two zero bytes
	// keep it short of a record key and sorted ahead of every real one.
	stray := append([]byte(recPrefix), 0x00, 0x00)
	if err := db.Set(stray, []byte("junk")); err != nil {
		t.Fatalf("plant: %v", err)
	}
	seq, err := j.Append([]byte("real"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	rec, ok, err := j.First()
	if err != nil || !ok {
		t.Fatalf("first: ok=%v err=%v", ok, err)
	}
	if rec.Seq != seq || string(rec.Payload) != "real" {
		t.Fatalf("want (%d, real), got (%d, %q)", seq, rec.Seq, rec.Payload)
	}
}

func TestCorruptRecordSurfacesSeq(t *testing.T) {
	j, db, _ := openTestJournal(t)
	seq, _ := j.Append([]byte("good"))

	// Overwrite the stored value with garbage that fails the checksum.
	if err := db.Set(RecKey(seq), []byte("garbage-no-crc")); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	rec, ok, err := j.First()
	if !ok {
		t.Fatalf("record should still be present")
	}
	if err != ErrCorruptRecord {
		t.Fatalf("want ErrCorruptRecord, got %v", err)
	}
	if rec.Seq != seq {
		t.Fatalf("corrupt record should carry its seq for deletion")
	}

	// ScanAll passes over it.
	recs, err := j.ScanAll()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("scan should skip corrupt records, got %d", len(recs))
	}
}
