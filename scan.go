package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

// The input grammar is trusted strictly: any violation fails the whole run
// rather than skipping the record, since a silently dropped record would
// corrupt the aggregates without detection.
var (
	ErrMissingDelimiter  = errors.New("missing delimiter")
	ErrLeadingDelimiter  = errors.New("record starts with delimiter")
	ErrMalformedValue    = errors.New("malformed value")
	ErrMissingTerminator = errors.New("missing record terminator")
)

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// parseValue reads a signed decimal with exactly one fractional digit
// starting at offset i and returns it as a fixed-point integer scaled by
// ten, together with the offset just past the fractional digit. Summing
// scaled integers keeps repeated addition and mean rounding exact.
func parseValue(slice []byte, i int) (int64, int, error) {
	neg := false
	if i < len(slice) && slice[i] == '-' {
		neg = true
		i++
	}
	if i >= len(slice) || !isDigit(slice[i]) {
		return 0, i, fmt.Errorf("%w: expected digit at offset %d", ErrMalformedValue, i)
	}
	v := int64(slice[i] - '0')
	i++
	for {
		if i >= len(slice) {
			return 0, i, fmt.Errorf("%w: value ends before fraction at offset %d", ErrMalformedValue, i)
		}
		b := slice[i]
		if b == '.' {
			i++
			break
		}
		if !isDigit(b) {
			return 0, i, fmt.Errorf("%w: unexpected byte %q at offset %d", ErrMalformedValue, b, i)
		}
		v = v*10 + int64(b-'0')
		i++
	}
	if i >= len(slice) || !isDigit(slice[i]) {
		return 0, i, fmt.Errorf("%w: expected fractional digit at offset %d", ErrMalformedValue, i)
	}
	v = v*10 + int64(slice[i]-'0')
	i++
	if neg {
		v = -v
	}
	return v, i, nil
}

// expectTerminator checks that a record ends at offset i, either with a
// newline or with the end of the slice, and returns the offset of the next
// record.
func expectTerminator(slice []byte, i int) (int, error) {
	if i >= len(slice) {
		return i, nil
	}
	b := slice[i]
	switch {
	case b == '\n':
		return i + 1, nil
	case isDigit(b):
		return i, fmt.Errorf("%w: more than one fractional digit at offset %d", ErrMalformedValue, i)
	default:
		return i, fmt.Errorf("%w: unexpected byte %q at offset %d", ErrMissingTerminator, b, i)
	}
}

const (
	swarOnes  = 0x0101010101010101
	swarHighs = 0x8080808080808080
	swarSemis = 0x3b3b3b3b3b3b3b3b
)

// semicolonMask sets the high bit of every byte in w that equals ';'.
func semicolonMask(w uint64) uint64 {
	x := w ^ swarSemis
	return (x - swarOnes) & ^x & swarHighs
}

// swarSemicolonIndex returns the index of the first ';' in b, or -1. It
// scans eight bytes per step and is exactly equivalent to a byte loop.
func swarSemicolonIndex(b []byte) int {
	i := 0
	for ; i+8 <= len(b); i += 8 {
		if m := semicolonMask(binary.LittleEndian.Uint64(b[i:])); m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	for ; i < len(b); i++ {
		if b[i] == ';' {
			return i
		}
	}
	return -1
}
