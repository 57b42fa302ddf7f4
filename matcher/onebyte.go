// Copyright 2026, the Byteseek contributors.

package matcher

import (
	"github.com/byteseek/byteseek/reader"
)

// oneByte matches exactly one byte value.  The 256 possible matchers
// are interned; Byte always hands out the shared instance.
type oneByte struct {
	value byte
}

var oneByteMatchers = makeOneByteMatchers()

func makeOneByteMatchers() [256]*oneByte {
	var m [256]*oneByte
	for i := 0; i < 256; i++ {
		m[i] = &oneByte{value: byte(i)}
	}
	return m
}

// Byte returns the matcher for a single byte value.
func Byte(b byte) ByteMatcher {
	return oneByteMatchers[b]
}

func (m *oneByte) Matches(b byte) bool { return b == m.value }

func (m *oneByte) MatchesAt(src []byte, pos int) bool {
	return pos >= 0 && pos < len(src) && src[pos] == m.value
}

func (m *oneByte) MatchesNoBoundsCheck(src []byte, pos int) bool {
	return src[pos] == m.value
}

func (m *oneByte) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchByteAt(m, r, pos)
}

func (m *oneByte) MatchingBytes() []byte { return []byte{m.value} }

func (m *oneByte) NumMatchingBytes() int { return 1 }

func (m *oneByte) Regex(pretty bool) string { return hexByte(m.value) }
