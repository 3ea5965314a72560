package main

import (
	"bytes"
	"fmt"
)

// Variant 0: ordinary Go map keyed by the key string. The string(key)
// conversion in the lookup does not allocate; only a first sighting of a key
// pays for the copy.

func summarizeV0(path string, maxBytes int64, workers int) (string, error) {
	return summarizePath(path, maxBytes, workers, scanSliceV0)
}

func scanSliceV0(slice []byte) (Summary, error) {
	m := make(map[string]*SummaryEntry, 1024)

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

		if e, ok := m[string(key)]; ok {
			e.update(value)
		} else {
			e = newSummaryEntry(key)
			e.update(value)
			m[string(key)] = e
		}
	}

	entries := make([]*SummaryEntry, 0, len(m))
	for _, e := range m {
		entries = append(entries, e)
	}
	return sortedSummary(entries), nil
}
