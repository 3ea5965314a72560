package main

import (
	"bytes"
	"fmt"

	"github.com/zeebo/xxh3"
)

// Variant 2: open-addressing table with xxh3 hashing and a word-at-a-time
// delimiter scan. Probing verifies raw key bytes on every hash hit, so two
// keys colliding on the 64-bit hash stay separate entries.

func summarizeV2(path string, maxBytes int64, workers int) (string, error) {
	return summarizePath(path, maxBytes, workers, scanSliceV2)
}

const openTableInitialSize = 1 << 14 // slots; doubles at half load

type openTable struct {
	entries []*SummaryEntry // nil marks a free slot
	mask    uint64
	count   int
}

func newOpenTable() *openTable {
	return &openTable{
		entries: make([]*SummaryEntry, openTableInitialSize),
		mask:    openTableInitialSize - 1,
	}
}

// lookup returns the entry for key, inserting a fresh one on first sight.
func (t *openTable) lookup(key []byte) *SummaryEntry {
	h := xxh3.Hash(key)
	for i := h & t.mask; ; i = (i + 1) & t.mask {
		e := t.entries[i]
		if e == nil {
			e = newSummaryEntry(key)
			t.entries[i] = e
			t.count++
			if t.count*2 > len(t.entries) {
				t.grow()
			}
			return e
		}
		if bytes.Equal(e.key, key) {
			return e
		}
	}
}

func (t *openTable) grow() {
	old := t.entries
	t.entries = make([]*SummaryEntry, 2*len(old))
	t.mask = uint64(len(t.entries) - 1)
	for _, e := range old {
		if e == nil {
			continue
		}
		i := xxh3.Hash(e.key) & t.mask
		for t.entries[i] != nil {
			i = (i + 1) & t.mask
		}
		t.entries[i] = e
	}
}

func (t *openTable) drainSorted() Summary {
	entries := make([]*SummaryEntry, 0, t.count)
	for _, e := range t.entries {
		if e != nil {
			entries = append(entries, e)
		}
	}
	return sortedSummary(entries)
}

func scanSliceV2(slice []byte) (Summary, error) {
	t := newOpenTable()

	i := 0
	for i < len(slice) {
		if slice[i] == '\n' {
			i++
			continue
		}
		if slice[i] == ';' {
			return Summary{}, fmt.Errorf("%w at offset %d", ErrLeadingDelimiter, i)
		}
		j := swarSemicolonIndex(slice[i:])
		if j == -1 {
			return Summary{}, fmt.Errorf("%w in record at offset %d", ErrMissingDelimiter, i)
		}
		key := slice[i : i+j]
		value, next, err := parseValue(slice, i+j+1)
		if err != nil {
			return Summary{}, err
		}
		i, err = expectTerminator(slice, next)
		if err != nil {
			return Summary{}, err
		}

		t.lookup(key).update(value)
	}

	return t.drainSorted(), nil
}
