package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// summarizeSliceFunc scans one record-aligned slice into a sorted summary.
// Each variant supplies its own scan/table strategy.
type summarizeSliceFunc func(slice []byte) (Summary, error)

// summarizeBuffer runs the parallel pipeline over an already truncated
// buffer: partition into one slice per worker, scan every slice with a
// private table, then fold the sorted per-worker summaries into one. The
// first scan error aborts the whole call.
func summarizeBuffer(buf []byte, workers int, scan summarizeSliceFunc) (string, error) {
	if workers < 1 {
		return "", fmt.Errorf("worker count must be at least 1, got %d", workers)
	}

	parts := partitionRecords(buf, workers)
	summaries := make([]Summary, workers)
	var eg errgroup.Group
	for i := range parts {
		i, part := i, parts[i]
		eg.Go(func() error {
			summary, err := scan(part)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", fmt.Errorf("failed to summarize: %w", err)
	}

	total := summaries[0]
	for _, s := range summaries[1:] {
		total = mergeSummaries(total, s)
	}
	return total.String(), nil
}

func summarizePath(path string, maxBytes int64, workers int, scan summarizeSliceFunc) (string, error) {
	m, err := openMapped(path)
	if err != nil {
		return "", err
	}
	defer m.Close()
	return summarizeBuffer(truncateRecords(m.data, maxBytes), workers, scan)
}
