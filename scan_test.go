package main

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		next int
	}{
		{"19.8", 198, 4},
		{"-5.5", -55, 4},
		{"0.0", 0, 3},
		{"-0.3", -3, 4},
		{"123.4", 1234, 5},
		{"7.0\nrest", 70, 3},
	}
	for _, c := range cases {
		got, next, err := parseValue([]byte(c.in), 0)
		if err != nil {
			t.Fatalf("parseValue(%q) failed: %v", c.in, err)
		}
		if got != c.want || next != c.next {
			t.Fatalf("parseValue(%q) = (%d, %d), want (%d, %d)", c.in, got, next, c.want, c.next)
		}
	}
}

func TestParseValueMalformed(t *testing.T) {
	for _, in := range []string{"", "-", "x", ".5", "12", "1x.2", "1.", "1.x", "-."} {
		_, _, err := parseValue([]byte(in), 0)
		if !errors.Is(err, ErrMalformedValue) {
			t.Fatalf("parseValue(%q) = %v, want ErrMalformedValue", in, err)
		}
	}
}

func TestExpectTerminator(t *testing.T) {
	if next, err := expectTerminator([]byte("1.5"), 3); err != nil || next != 3 {
		t.Fatalf("end of slice should terminate a record, got (%d, %v)", next, err)
	}
	if next, err := expectTerminator([]byte("1.5\nA"), 3); err != nil || next != 4 {
		t.Fatalf("newline should terminate a record, got (%d, %v)", next, err)
	}
	if _, err := expectTerminator([]byte("1.55"), 3); !errors.Is(err, ErrMalformedValue) {
		t.Fatalf("second fractional digit should be ErrMalformedValue, got %v", err)
	}
	if _, err := expectTerminator([]byte("1.5;"), 3); !errors.Is(err, ErrMissingTerminator) {
		t.Fatalf("stray byte should be ErrMissingTerminator, got %v", err)
	}
}

func TestSwarSemicolonIndex(t *testing.T) {
	inputs := []string{
		"",
		";",
		"abc",
		"abc;def",
		"averylongkeywithnosemicolonanywhere",
		"0123456;",
		"01234567;tail",
		"0123456789abcdef;tail",
		"aaaaaaaa;bb",
		"aaaaaaaabbbbbbb;",
		";;start",
	}
	for _, in := range inputs {
		b := []byte(in)
		want := bytes.IndexByte(b, ';')
		if got := swarSemicolonIndex(b); got != want {
			t.Fatalf("swarSemicolonIndex(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestScanSliceErrors(t *testing.T) {
	scans := map[string]summarizeSliceFunc{
		"v0": scanSliceV0,
		"v1": scanSliceV1,
		"v2": scanSliceV2,
	}
	cases := []struct {
		in   string
		want error
	}{
		{";1.0\n", ErrLeadingDelimiter},
		{"A;1.0\nBC", ErrMissingDelimiter},
		{"A;x.0\n", ErrMalformedValue},
		{"A;1.23\n", ErrMalformedValue},
		{"A;12\n", ErrMalformedValue},
		{"A;1.0x\n", ErrMissingTerminator},
	}
	for name, scan := range scans {
		for _, c := range cases {
			_, err := scan([]byte(c.in))
			if !errors.Is(err, c.want) {
				t.Fatalf("%s: scan(%q) = %v, want %v", name, c.in, err, c.want)
			}
		}
	}
}

func TestScanSliceSkipsLeadingNewline(t *testing.T) {
	// a partition boundary may hand a worker a slice whose first byte is the
	// tail newline of the previous record
	summary, err := scanSliceV2([]byte("\nA;1.0\n"))
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(summary.entries) != 1 || string(summary.entries[0].key) != "A" {
		t.Fatalf("unexpected summary: %s", summary)
	}
}
