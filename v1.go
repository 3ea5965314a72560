package main

import (
	"bytes"
	"fmt"
	"unsafe"

	"github.com/dolthub/swiss"
)

// Variant 1: swiss table keyed by a zero-copy string view of the key bytes.
// The mapped buffer outlives every table, so the views stay valid and no key
// is ever copied, not even on insert.

func summarizeV1(path string, maxBytes int64, workers int) (string, error) {
	return summarizePath(path, maxBytes, workers, scanSliceV1)
}

func bytesString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

func scanSliceV1(slice []byte) (Summary, error) {
	m := swiss.NewMap[string, *SummaryEntry](1024)

	i := 0
	for i < len(slice) {
		if slice[i] == '\n' {
			i++
			continue
		}
		if slice[i] == ';' {
			return Summary{}, fmt.Errorf("%w at offset %d", ErrLeadingDelimiter, i)
		}
		j := bytes.IndexByte(slice[i:], ';')
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

		k := bytesString(key)
		if e, ok := m.Get(k); ok {
			e.update(value)
		} else {
			e = newSummaryEntry(key)
			e.update(value)
			m.Put(k, e)
		}
	}

	entries := make([]*SummaryEntry, 0, m.Count())
	m.Iter(func(_ string, e *SummaryEntry) bool {
		entries = append(entries, e)
		return false
	})
	return sortedSummary(entries), nil
}
