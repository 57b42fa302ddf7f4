// Copyright 2026, the Byteseek contributors.

package matcher

import (
	"fmt"

	"github.com/byteseek/byteseek/reader"
)

// rangeMatcher matches a contiguous range of byte values, optionally
// inverted.
type rangeMatcher struct {
	lo, hi   byte
	inverted bool
}

// Range returns a matcher for the inclusive range [lo, hi].
// Arguments in either order describe the same range.
func Range(lo, hi byte) ByteMatcher {
	return newRange(lo, hi, false)
}

// InvertedRange returns a matcher for every byte outside [lo, hi].
func InvertedRange(lo, hi byte) ByteMatcher {
	return newRange(lo, hi, true)
}

func newRange(lo, hi byte, inverted bool) *rangeMatcher {
	if lo > hi {
		lo, hi = hi, lo
	}
	return &rangeMatcher{lo: lo, hi: hi, inverted: inverted}
}

func (m *rangeMatcher) Matches(b byte) bool {
	return (b >= m.lo && b <= m.hi) != m.inverted
}

func (m *rangeMatcher) MatchesAt(src []byte, pos int) bool {
	return pos >= 0 && pos < len(src) && m.Matches(src[pos])
}

func (m *rangeMatcher) MatchesNoBoundsCheck(src []byte, pos int) bool {
	return m.Matches(src[pos])
}

func (m *rangeMatcher) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchByteAt(m, r, pos)
}

func (m *rangeMatcher) MatchingBytes() []byte {
	return enumerate(m.Matches)
}

func (m *rangeMatcher) NumMatchingBytes() int {
	n := int(m.hi) - int(m.lo) + 1
	if m.inverted {
		return 256 - n
	}
	return n
}

func (m *rangeMatcher) Regex(pretty bool) string {
	caret := ""
	if m.inverted {
		caret = "^"
	}
	if pretty {
		return fmt.Sprintf("[%s%s - %s]", caret, hexByte(m.lo), hexByte(m.hi))
	}
	return fmt.Sprintf("[%s%s-%s]", caret, hexByte(m.lo), hexByte(m.hi))
}
