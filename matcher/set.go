// Copyright 2026, the Byteseek contributors.

package matcher

import (
	"errors"
	"strings"

	"github.com/golang-collections/go-datastructures/bitarray"

	"github.com/byteseek/byteseek/reader"
)

// setMatcher matches membership of an arbitrary set of byte values,
// held as a 256-bit array, optionally inverted.
type setMatcher struct {
	bits     bitarray.BitArray
	members  int
	inverted bool
}

// Set returns a matcher for the given byte values.  At least one
// value is required; duplicates are collapsed.
func Set(values ...byte) (ByteMatcher, error) {
	return newSet(values, false)
}

// InvertedSet returns a matcher for every byte not among the given
// values.
func InvertedSet(values ...byte) (ByteMatcher, error) {
	return newSet(values, true)
}

func newSet(values []byte, inverted bool) (*setMatcher, error) {
	if len(values) == 0 {
		return nil, errors.New("empty byte set")
	}
	bits := bitarray.NewBitArray(256)
	members := 0
	for _, v := range values {
		if !getBit(bits, uint64(v)) {
			members++
		}
		if err := bits.SetBit(uint64(v)); err != nil {
			return nil, err
		}
	}
	return &setMatcher{bits: bits, members: members, inverted: inverted}, nil
}

// getBit reads a bit that is in range by construction.
func getBit(bits bitarray.BitArray, k uint64) bool {
	f, err := bits.GetBit(k)
	if err != nil {
		panic(err)
	}
	return f
}

func (m *setMatcher) Matches(b byte) bool {
	return getBit(m.bits, uint64(b)) != m.inverted
}

func (m *setMatcher) MatchesAt(src []byte, pos int) bool {
	return pos >= 0 && pos < len(src) && m.Matches(src[pos])
}

func (m *setMatcher) MatchesNoBoundsCheck(src []byte, pos int) bool {
	return m.Matches(src[pos])
}

func (m *setMatcher) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchByteAt(m, r, pos)
}

func (m *setMatcher) MatchingBytes() []byte {
	return enumerate(m.Matches)
}

func (m *setMatcher) NumMatchingBytes() int {
	if m.inverted {
		return 256 - m.members
	}
	return m.members
}

func (m *setMatcher) Regex(pretty bool) string {
	var sb strings.Builder
	sb.WriteByte('[')
	if m.inverted {
		sb.WriteByte('^')
	}
	sep := ""
	for i := 0; i < 256; i++ {
		if getBit(m.bits, uint64(i)) {
			sb.WriteString(sep)
			sb.WriteString(hexByte(byte(i)))
			sep = " "
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
