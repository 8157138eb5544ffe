// Package id provides a 128-bit, lexicographically sortable identifier.
//
// The ID is 16 bytes big-endian: [8 bytes ms_timestamp][8 bytes sequence],
// so byte-wise comparison preserves chronological order and IDs generated
// within the same millisecond remain strictly increasing by sequence. The
// Generator pins to the last seen millisecond if the system clock regresses.
//
// Queue instances use these as their identity in the process-wide registry
// and in log fields.
package id
