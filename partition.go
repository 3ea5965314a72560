package main

import "bytes"

// nextRecordStart snaps target forward to a record boundary: target itself
// when it is 0, otherwise the byte just past the next '\n' at or after
// target, or the end of buf when no newline remains.
func nextRecordStart(buf []byte, target int) int {
	if target == 0 {
		return 0
	}
	if target >= len(buf) {
		return len(buf)
	}
	i := bytes.IndexByte(buf[target:], '\n')
	if i == -1 {
		return len(buf)
	}
	return target + i + 1
}

// partitionRecords splits buf into workers record-aligned sub-slices of
// roughly equal size. The slices never overlap and in order reconstruct buf
// exactly; a worker whose proportional share falls entirely inside one line
// gets a zero-length slice.
func partitionRecords(buf []byte, workers int) [][]byte {
	parts := make([][]byte, workers)
	prev := 0
	for i := 1; i <= workers; i++ {
		next := nextRecordStart(buf, len(buf)*i/workers)
		parts[i-1] = buf[prev:next]
		prev = next
	}
	return parts
}
