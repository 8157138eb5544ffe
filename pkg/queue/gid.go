package queue

import (
	"bytes"
	"runtime"
	"strconv"
)

// curGoroutineID parses the current goroutine's id from runtime.Stack. Its
// only use is letting Close detect that it was invoked re-entrantly from the
// Delegate callback, where blocking on the worker would self-deadlock.
func curGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Header shape: "goroutine 123 [running]:"
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
