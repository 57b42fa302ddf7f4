// Copyright 2026, the Byteseek contributors.

package matcher

import (
	"errors"
	"fmt"

	"github.com/byteseek/byteseek/reader"
)

// byteSequence is the specialized sequence in which every position
// matches exactly one byte.  It stores a shared byte array with
// (start, end) slicing; views share the array and never copy.
type byteSequence struct {
	array      []byte
	start, end int
	hash       uint32
}

// Sequence returns a matcher for the exact byte sequence.  The
// values are copied into a fresh owned array.
func Sequence(values []byte) (SequenceMatcher, error) {
	if len(values) == 0 {
		return nil, errors.New("empty byte sequence")
	}
	owned := make([]byte, len(values))
	copy(owned, values)
	return newByteSequence(owned, 0, len(owned)), nil
}

func newByteSequence(array []byte, start, end int) *byteSequence {
	s := &byteSequence{array: array, start: start, end: end}
	s.hash = regexHash(sequenceRegex(s, false))
	return s
}

// SequenceFrom specializes a general sequence matcher into a byte
// sequence.  Every position must match exactly one byte.
func SequenceFrom(s SequenceMatcher) (SequenceMatcher, error) {
	switch s.(type) {
	case *byteSequence, *reverseByteSequence:
		return s, nil
	}
	values := make([]byte, s.Len())
	for i := range values {
		m := s.MatcherAt(i)
		if m.NumMatchingBytes() != 1 {
			return nil, fmt.Errorf("cannot build byte sequence: position %d matches more than one byte", i)
		}
		values[i] = m.MatchingBytes()[0]
	}
	return newByteSequence(values, 0, len(values)), nil
}

func (s *byteSequence) Len() int { return s.end - s.start }

func (s *byteSequence) MatcherAt(i int) ByteMatcher {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("position %d of sequence length %d", i, s.Len()))
	}
	return Byte(s.array[s.start+i])
}

func (s *byteSequence) MatchesAt(src []byte, pos int) bool {
	if pos < 0 || pos+s.Len() > len(src) {
		return false
	}
	return s.MatchesNoBoundsCheck(src, pos)
}

func (s *byteSequence) MatchesNoBoundsCheck(src []byte, pos int) bool {
	for i, j := s.start, pos; i < s.end; i, j = i+1, j+1 {
		if src[j] != s.array[i] {
			return false
		}
	}
	return true
}

func (s *byteSequence) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchesSequenceReader(s, r, pos)
}

func (s *byteSequence) Subsequence(begin, end int) SequenceMatcher {
	length := s.Len()
	checkSubsequence(begin, end, length)
	if begin == 0 && end == length {
		return s
	}
	if end-begin == 1 {
		return One(Byte(s.array[s.start+begin]))
	}
	return newByteSequence(s.array, s.start+begin, s.start+end)
}

func (s *byteSequence) Reverse() SequenceMatcher {
	return newReverseByteSequence(s.array, s.start, s.end)
}

func (s *byteSequence) Repeat(n int) SequenceMatcher {
	if n < 1 {
		panic(fmt.Sprintf("repeat count %d not positive", n))
	}
	if n == 1 {
		return s
	}
	length := s.Len()
	values := make([]byte, 0, n*length)
	for i := 0; i < n; i++ {
		values = append(values, s.array[s.start:s.end]...)
	}
	return newByteSequence(values, 0, len(values))
}

func (s *byteSequence) Regex(pretty bool) string {
	return sequenceRegex(s, pretty)
}

func (s *byteSequence) Equal(other SequenceMatcher) bool {
	return sequencesEqual(s, other)
}

func (s *byteSequence) Hash() uint32 { return s.hash }

// reverseByteSequence is the reversed view over a byte sequence's
// shared array.
type reverseByteSequence struct {
	array      []byte
	start, end int
	hash       uint32
}

func newReverseByteSequence(array []byte, start, end int) *reverseByteSequence {
	s := &reverseByteSequence{array: array, start: start, end: end}
	s.hash = regexHash(sequenceRegex(s, false))
	return s
}

func (s *reverseByteSequence) Len() int { return s.end - s.start }

func (s *reverseByteSequence) MatcherAt(i int) ByteMatcher {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("position %d of sequence length %d", i, s.Len()))
	}
	return Byte(s.array[s.end-1-i])
}

func (s *reverseByteSequence) MatchesAt(src []byte, pos int) bool {
	if pos < 0 || pos+s.Len() > len(src) {
		return false
	}
	return s.MatchesNoBoundsCheck(src, pos)
}

func (s *reverseByteSequence) MatchesNoBoundsCheck(src []byte, pos int) bool {
	for i, j := s.end-1, pos; i >= s.start; i, j = i-1, j+1 {
		if src[j] != s.array[i] {
			return false
		}
	}
	return true
}

func (s *reverseByteSequence) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchesSequenceReader(s, r, pos)
}

func (s *reverseByteSequence) Subsequence(begin, end int) SequenceMatcher {
	length := s.Len()
	checkSubsequence(begin, end, length)
	if begin == 0 && end == length {
		return s
	}
	if end-begin == 1 {
		return One(Byte(s.array[s.end-1-begin]))
	}
	return newReverseByteSequence(s.array, s.end-end, s.end-begin)
}

func (s *reverseByteSequence) Reverse() SequenceMatcher {
	return newByteSequence(s.array, s.start, s.end)
}

func (s *reverseByteSequence) Repeat(n int) SequenceMatcher {
	if n < 1 {
		panic(fmt.Sprintf("repeat count %d not positive", n))
	}
	if n == 1 {
		return s
	}
	length := s.Len()
	values := make([]byte, 0, n*length)
	for i := 0; i < n; i++ {
		for j := s.end - 1; j >= s.start; j-- {
			values = append(values, s.array[j])
		}
	}
	return newByteSequence(values, 0, len(values))
}

func (s *reverseByteSequence) Regex(pretty bool) string {
	return sequenceRegex(s, pretty)
}

func (s *reverseByteSequence) Equal(other SequenceMatcher) bool {
	return sequencesEqual(s, other)
}

func (s *reverseByteSequence) Hash() uint32 { return s.hash }
