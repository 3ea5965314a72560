package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestTruncateRecords(t *testing.T) {
	buf := []byte("A;1.0\nB;2.0\nC;3.0\n")
	cases := []struct {
		maxBytes int64
		want     string
	}{
		{-1, "A;1.0\nB;2.0\nC;3.0\n"},
		{0, "A;1.0\n"},
		{5, "A;1.0\n"},
		{6, "A;1.0\nB;2.0\n"},
		// mid-line cutoffs complete the record they land in
		{8, "A;1.0\nB;2.0\n"},
		{17, "A;1.0\nB;2.0\nC;3.0\n"},
		{18, "A;1.0\nB;2.0\nC;3.0\n"},
		{100, "A;1.0\nB;2.0\nC;3.0\n"},
	}
	for _, c := range cases {
		if got := truncateRecords(buf, c.maxBytes); string(got) != c.want {
			t.Fatalf("truncateRecords(%d) = %q, want %q", c.maxBytes, got, c.want)
		}
	}

	// cutoff inside a final record with no trailing newline
	tail := []byte("A;1.0\nB;2.0")
	if got := truncateRecords(tail, 8); string(got) != string(tail) {
		t.Fatalf("truncateRecords(8) = %q, want whole buffer", got)
	}
}

func TestOpenMapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	content := []byte("Kunming;19.8\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	m, err := openMapped(path)
	if err != nil {
		t.Fatalf("failed to map file: %v", err)
	}
	if !bytes.Equal(m.data, content) {
		t.Fatalf("mapped data = %q, want %q", m.data, content)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("failed to unmap file: %v", err)
	}
	// Close is idempotent
	if err := m.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
}

func TestOpenMappedEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	m, err := openMapped(path)
	if err != nil {
		t.Fatalf("failed to open empty file: %v", err)
	}
	if len(m.data) != 0 {
		t.Fatalf("expected empty buffer, got %d bytes", len(m.data))
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestOpenMappedMissingFile(t *testing.T) {
	if _, err := openMapped(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
