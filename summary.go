package main

import (
	"bytes"
	"math"
	"sort"
	"strconv"
)

// SummaryEntry holds the running aggregate for one key. The key slice is a
// view into the mapped file and is never copied; the mapping must stay alive
// until the entry has been formatted.
type SummaryEntry struct {
	key   []byte
	min   int64
	max   int64
	sum   int64
	count int64
}

func newSummaryEntry(key []byte) *SummaryEntry {
	return &SummaryEntry{key: key, min: math.MaxInt64, max: math.MinInt64}
}

func (e *SummaryEntry) update(v int64) {
	if v < e.min {
		e.min = v
	}
	if v > e.max {
		e.max = v
	}
	e.sum += v
	e.count++
}

// Summary is a sequence of entries sorted ascending by raw key bytes.
type Summary struct {
	entries []*SummaryEntry
}

func sortedSummary(entries []*SummaryEntry) Summary {
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})
	return Summary{entries: entries}
}

// mergeSummaries combines two sorted summaries into one in a single linear
// pass. Entries move into the result; a is not safe to reuse afterwards.
// The operation is associative and commutative, so any reduction order over
// the per-worker summaries produces the same table.
func mergeSummaries(a, b Summary) Summary {
	merged := make([]*SummaryEntry, 0, len(a.entries)+len(b.entries))
	i, j := 0, 0
	for i < len(a.entries) && j < len(b.entries) {
		ea, eb := a.entries[i], b.entries[j]
		switch bytes.Compare(ea.key, eb.key) {
		case -1:
			merged = append(merged, ea)
			i++
		case 1:
			merged = append(merged, eb)
			j++
		default:
			if eb.min < ea.min {
				ea.min = eb.min
			}
			if eb.max > ea.max {
				ea.max = eb.max
			}
			ea.sum += eb.sum
			ea.count += eb.count
			merged = append(merged, ea)
			i++
			j++
		}
	}
	merged = append(merged, a.entries[i:]...)
	merged = append(merged, b.entries[j:]...)
	return Summary{entries: merged}
}

// meanTimesTen rounds sum/count to the nearest integer with half-way ties
// away from zero, using integer arithmetic only. Both sum and the result are
// scaled by ten.
func meanTimesTen(sum, count int64) int64 {
	neg := sum < 0
	if neg {
		sum = -sum
	}
	m := sum / count
	if (sum%count)*2 >= count {
		m++
	}
	if neg {
		m = -m
	}
	return m
}

// appendFixed renders a scaled-by-ten value with exactly one fractional
// digit. The sign applies to the whole number: -3 renders as -0.3 and an
// exact zero never carries a sign.
func appendFixed(dst []byte, v int64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	dst = strconv.AppendInt(dst, v/10, 10)
	return append(dst, '.', byte('0'+v%10))
}

// String renders the summary in its canonical form:
// {key=min/mean/max, ...}\n with keys in ascending byte order.
func (s Summary) String() string {
	out := make([]byte, 0, 3+24*len(s.entries))
	out = append(out, '{')
	for i, e := range s.entries {
		if i != 0 {
			out = append(out, ',', ' ')
		}
		out = append(out, e.key...)
		out = append(out, '=')
		out = appendFixed(out, e.min)
		out = append(out, '/')
		out = appendFixed(out, meanTimesTen(e.sum, e.count))
		out = append(out, '/')
		out = appendFixed(out, e.max)
	}
	out = append(out, '}', '\n')
	return string(out)
}
