// Copyright 2026, the Byteseek contributors.

package matcher

import (
	"math/bits"
	"strings"

	"github.com/byteseek/byteseek/reader"
)

// wildBitAll matches bytes equal to a value on the significant bits
// of a mask, with the mask's 0-bits as don't-cares.
type wildBitAll struct {
	value    byte
	wildMask byte
}

// WildBitAll returns a matcher accepting bytes that agree with value
// on every 1-bit of wildMask.  The 0-bits of wildMask don't care.
func WildBitAll(value, wildMask byte) ByteMatcher {
	return &wildBitAll{value: value, wildMask: wildMask}
}

func (m *wildBitAll) Matches(b byte) bool {
	return (b^m.value)&m.wildMask == 0
}

func (m *wildBitAll) MatchesAt(src []byte, pos int) bool {
	return pos >= 0 && pos < len(src) && m.Matches(src[pos])
}

func (m *wildBitAll) MatchesNoBoundsCheck(src []byte, pos int) bool {
	return m.Matches(src[pos])
}

func (m *wildBitAll) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchByteAt(m, r, pos)
}

func (m *wildBitAll) MatchingBytes() []byte {
	return enumerate(m.Matches)
}

func (m *wildBitAll) NumMatchingBytes() int {
	return 1 << (8 - bits.OnesCount8(m.wildMask))
}

func (m *wildBitAll) Regex(pretty bool) string {
	return wildBitForm(m.value, m.wildMask)
}

// wildBitAny matches bytes agreeing with a value on at least one
// significant bit of a mask, optionally inverted.
type wildBitAny struct {
	value    byte
	wildMask byte
	inverted bool
}

// WildBitAny returns a matcher accepting bytes that agree with value
// on at least one 1-bit of wildMask.  With a zero wildMask there are
// no significant bits to disagree on, and every byte matches.
func WildBitAny(value, wildMask byte) ByteMatcher {
	return &wildBitAny{value: value, wildMask: wildMask}
}

// InvertedWildBitAny returns the complement of WildBitAny.
func InvertedWildBitAny(value, wildMask byte) ByteMatcher {
	return &wildBitAny{value: value, wildMask: wildMask, inverted: true}
}

func (m *wildBitAny) Matches(b byte) bool {
	// A byte fails only by disagreeing with the value on every
	// significant bit.
	match := (b^m.value)&m.wildMask != m.wildMask || m.wildMask == 0
	return match != m.inverted
}

func (m *wildBitAny) MatchesAt(src []byte, pos int) bool {
	return pos >= 0 && pos < len(src) && m.Matches(src[pos])
}

func (m *wildBitAny) MatchesNoBoundsCheck(src []byte, pos int) bool {
	return m.Matches(src[pos])
}

func (m *wildBitAny) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchByteAt(m, r, pos)
}

func (m *wildBitAny) MatchingBytes() []byte {
	return enumerate(m.Matches)
}

func (m *wildBitAny) NumMatchingBytes() int {
	// Bytes failing the non-inverted matcher disagree on every
	// significant bit, leaving only the wild bits free.
	n := 256
	if m.wildMask != 0 {
		n = 256 - 1<<(8-bits.OnesCount8(m.wildMask))
	}
	if m.inverted {
		return 256 - n
	}
	return n
}

func (m *wildBitAny) Regex(pretty bool) string {
	caret := ""
	if m.inverted {
		caret = "^"
	}
	return caret + "~" + wildBitForm(m.value, m.wildMask)
}

// wildBitForm spells a value with don't-care bits as binary,
// most-significant bit first, with '_' in the wild positions.
func wildBitForm(value, wildMask byte) string {
	var sb strings.Builder
	sb.WriteString("0i")
	for i := 7; i >= 0; i-- {
		bit := byte(1) << i
		switch {
		case wildMask&bit == 0:
			sb.WriteByte('_')
		case value&bit != 0:
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
