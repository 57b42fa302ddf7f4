// Copyright 2026, the Byteseek contributors.

package matcher

import (
	"fmt"
	"math/bits"

	"github.com/byteseek/byteseek/reader"
)

// allBitmask matches bytes in which every 1-bit of the mask is set.
type allBitmask struct {
	mask     byte
	inverted bool
}

// AllBitmask returns a matcher accepting bytes b with b & mask ==
// mask.  A zero mask accepts everything.
func AllBitmask(mask byte) ByteMatcher {
	return &allBitmask{mask: mask}
}

// InvertedAllBitmask returns the complement of AllBitmask(mask).
func InvertedAllBitmask(mask byte) ByteMatcher {
	return &allBitmask{mask: mask, inverted: true}
}

func (m *allBitmask) Matches(b byte) bool {
	return (b&m.mask == m.mask) != m.inverted
}

func (m *allBitmask) MatchesAt(src []byte, pos int) bool {
	return pos >= 0 && pos < len(src) && m.Matches(src[pos])
}

func (m *allBitmask) MatchesNoBoundsCheck(src []byte, pos int) bool {
	return m.Matches(src[pos])
}

func (m *allBitmask) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchByteAt(m, r, pos)
}

func (m *allBitmask) MatchingBytes() []byte {
	return enumerate(m.Matches)
}

func (m *allBitmask) NumMatchingBytes() int {
	// Bytes matching have the mask bits fixed and the rest free.
	n := 1 << (8 - bits.OnesCount8(m.mask))
	if m.inverted {
		return 256 - n
	}
	return n
}

func (m *allBitmask) Regex(pretty bool) string {
	if m.inverted {
		return fmt.Sprintf("^&%s", hexByte(m.mask))
	}
	return fmt.Sprintf("&%s", hexByte(m.mask))
}

// anyBitmask matches bytes sharing at least one 1-bit with the mask.
type anyBitmask struct {
	mask     byte
	inverted bool
}

// AnyBitmask returns a matcher accepting bytes b with b & mask != 0.
// A zero mask accepts nothing.
func AnyBitmask(mask byte) ByteMatcher {
	return &anyBitmask{mask: mask}
}

// InvertedAnyBitmask returns the complement of AnyBitmask(mask).
func InvertedAnyBitmask(mask byte) ByteMatcher {
	return &anyBitmask{mask: mask, inverted: true}
}

func (m *anyBitmask) Matches(b byte) bool {
	return (b&m.mask != 0) != m.inverted
}

func (m *anyBitmask) MatchesAt(src []byte, pos int) bool {
	return pos >= 0 && pos < len(src) && m.Matches(src[pos])
}

func (m *anyBitmask) MatchesNoBoundsCheck(src []byte, pos int) bool {
	return m.Matches(src[pos])
}

func (m *anyBitmask) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchByteAt(m, r, pos)
}

func (m *anyBitmask) MatchingBytes() []byte {
	return enumerate(m.Matches)
}

func (m *anyBitmask) NumMatchingBytes() int {
	// Non-matching bytes have all mask bits clear.
	n := 256 - 1<<(8-bits.OnesCount8(m.mask))
	if m.inverted {
		return 256 - n
	}
	return n
}

func (m *anyBitmask) Regex(pretty bool) string {
	if m.inverted {
		return fmt.Sprintf("^~%s", hexByte(m.mask))
	}
	return fmt.Sprintf("~%s", hexByte(m.mask))
}
