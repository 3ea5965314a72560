package main

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mappedFile is a read-only view over a whole file. The data slice is shared
// by every worker and never mutated, so concurrent reads need no locking.
type mappedFile struct {
	data   []byte
	mapped bool
}

func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	// mmap rejects zero-length mappings
	if st.Size() == 0 {
		return &mappedFile{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap %q: %w", path, err)
	}
	_ = unix.Madvise(data, unix.MADV_WILLNEED)
	return &mappedFile{data: data, mapped: true}, nil
}

func (m *mappedFile) Close() error {
	if !m.mapped {
		return nil
	}
	m.mapped = false
	return unix.Munmap(m.data)
}

// truncateRecords returns the prefix of buf that ends with the record
// containing byte offset maxBytes: everything up to and including the first
// '\n' at or after maxBytes. maxBytes < 0 selects the whole buffer, as does
// any offset at or past the last newline.
func truncateRecords(buf []byte, maxBytes int64) []byte {
	if maxBytes < 0 || maxBytes >= int64(len(buf)) {
		return buf
	}
	i := bytes.IndexByte(buf[maxBytes:], '\n')
	if i == -1 {
		return buf
	}
	return buf[:int(maxBytes)+i+1]
}
