// Copyright 2026, the Byteseek contributors.

package matcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chmduquesne/rollinghash/buzhash32"

	"github.com/byteseek/byteseek/reader"
)

// A SequenceMatcher is an immutable ordered run of byte matchers.
// Subsequence and Reverse are views sharing the backing storage;
// Repeat copies.  Equality is content based and the hash is computed
// once at construction.
type SequenceMatcher interface {

	// Len returns the number of positions in the sequence.
	Len() int

	// MatcherAt returns the byte matcher for position i.
	MatcherAt(i int) ByteMatcher

	// MatchesAt reports whether the sequence matches src at pos.
	// A sequence that would run off either end of src does not
	// match.
	MatchesAt(src []byte, pos int) bool

	// MatchesNoBoundsCheck is MatchesAt without the bounds check.
	// Callers guarantee pos >= 0 and pos+Len() <= len(src).
	MatchesNoBoundsCheck(src []byte, pos int) bool

	// MatchesReader reports whether the sequence matches the
	// reader at pos, crossing window boundaries as needed.  A
	// source ending mid-sequence is a non-match, not an error.
	MatchesReader(r reader.WindowReader, pos int64) (bool, error)

	// Subsequence returns the view over positions [begin, end).
	Subsequence(begin, end int) SequenceMatcher

	// Reverse returns the reversed view over the same storage.
	Reverse() SequenceMatcher

	// Repeat returns the sequence repeated n times: a fresh matcher
	// when n > 1, the receiver itself when n == 1.  n must be
	// positive.
	Repeat(n int) SequenceMatcher

	// Regex returns the canonical textual form.
	Regex(pretty bool) string

	// Equal reports whether other has the same length and the same
	// canonical form (Regex(false)) as this matcher.  Positions that
	// accept the same bytes through different forms, such as
	// Byte(0x41) and a one-member Set(0x41), are not equal.
	Equal(other SequenceMatcher) bool

	// Hash returns the content hash cached at construction.
	Hash() uint32
}

// regexHash computes the content hash of a matcher from its
// canonical form.
func regexHash(regex string) uint32 {
	h := buzhash32.New()
	h.Write([]byte(regex))
	return h.Sum32()
}

// sequenceRegex joins the per-position forms.
func sequenceRegex(s SequenceMatcher, pretty bool) string {
	var sb strings.Builder
	for i := 0; i < s.Len(); i++ {
		if pretty && i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.MatcherAt(i).Regex(pretty))
	}
	return sb.String()
}

// sequencesEqual compares two sequence matchers by content.
func sequencesEqual(a, b SequenceMatcher) bool {
	if b == nil || a.Len() != b.Len() {
		return false
	}
	return a.Regex(false) == b.Regex(false)
}

// matchesSequenceReader walks the windows covering the sequence.  A
// nil window (end of source) mid-sequence means no match.
func matchesSequenceReader(s SequenceMatcher, r reader.WindowReader, pos int64) (bool, error) {
	if pos < 0 {
		return false, nil
	}
	length := s.Len()
	matched := 0
	for matched < length {
		w, err := r.Window(pos + int64(matched))
		if err != nil {
			return false, err
		}
		if w == nil {
			return false, nil
		}
		array, err := w.Array()
		if err != nil {
			return false, err
		}
		offset := int(pos + int64(matched) - w.Position())
		avail := w.Length() - offset
		if avail <= 0 {
			return false, nil
		}
		n := length - matched
		if n > avail {
			n = avail
		}
		for i := 0; i < n; i++ {
			if !s.MatcherAt(matched+i).Matches(array[offset+i]) {
				return false, nil
			}
		}
		matched += n
	}
	return true, nil
}

// checkSubsequence panics on an invalid view range; the bounds are a
// programming error, matching slice semantics.
func checkSubsequence(begin, end, length int) {
	if begin < 0 || end > length || begin >= end {
		panic(fmt.Sprintf("subsequence [%d, %d) of sequence length %d", begin, end, length))
	}
}

// singleSequence adapts one byte matcher to the sequence interface.
type singleSequence struct {
	m    ByteMatcher
	hash uint32
}

// One returns the length-1 sequence matching m.
func One(m ByteMatcher) SequenceMatcher {
	return &singleSequence{m: m, hash: regexHash(m.Regex(false))}
}

func (s *singleSequence) Len() int { return 1 }

func (s *singleSequence) MatcherAt(i int) ByteMatcher {
	if i != 0 {
		panic(fmt.Sprintf("position %d of sequence length 1", i))
	}
	return s.m
}

func (s *singleSequence) MatchesAt(src []byte, pos int) bool {
	return s.m.MatchesAt(src, pos)
}

func (s *singleSequence) MatchesNoBoundsCheck(src []byte, pos int) bool {
	return s.m.MatchesNoBoundsCheck(src, pos)
}

func (s *singleSequence) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return s.m.MatchesReader(r, pos)
}

func (s *singleSequence) Subsequence(begin, end int) SequenceMatcher {
	checkSubsequence(begin, end, 1)
	return s
}

func (s *singleSequence) Reverse() SequenceMatcher { return s }

func (s *singleSequence) Repeat(n int) SequenceMatcher {
	if n < 1 {
		panic(fmt.Sprintf("repeat count %d not positive", n))
	}
	if n == 1 {
		return s
	}
	ms := make([]ByteMatcher, n)
	for i := range ms {
		ms[i] = s.m
	}
	seq, err := Matchers(ms...)
	if err != nil {
		panic(err)
	}
	return seq
}

func (s *singleSequence) Regex(pretty bool) string { return s.m.Regex(pretty) }

func (s *singleSequence) Equal(other SequenceMatcher) bool {
	return sequencesEqual(s, other)
}

func (s *singleSequence) Hash() uint32 { return s.hash }

// matcherSequence is the general sequence over arbitrary byte
// matchers, with (start, end) slicing and a direction flag so views
// share the backing slice.
type matcherSequence struct {
	matchers   []ByteMatcher
	start, end int
	reversed   bool
	hash       uint32
}

// Matchers returns a sequence over the given byte matchers.  The
// list is copied; at least one matcher is required.
func Matchers(ms ...ByteMatcher) (SequenceMatcher, error) {
	if len(ms) == 0 {
		return nil, errors.New("empty matcher sequence")
	}
	for i, m := range ms {
		if m == nil {
			return nil, fmt.Errorf("nil matcher at position %d", i)
		}
	}
	owned := make([]ByteMatcher, len(ms))
	copy(owned, ms)
	return newMatcherSequence(owned, 0, len(owned), false), nil
}

func newMatcherSequence(ms []ByteMatcher, start, end int, reversed bool) *matcherSequence {
	s := &matcherSequence{matchers: ms, start: start, end: end, reversed: reversed}
	s.hash = regexHash(sequenceRegex(s, false))
	return s
}

func (s *matcherSequence) Len() int { return s.end - s.start }

func (s *matcherSequence) MatcherAt(i int) ByteMatcher {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("position %d of sequence length %d", i, s.Len()))
	}
	if s.reversed {
		return s.matchers[s.end-1-i]
	}
	return s.matchers[s.start+i]
}

func (s *matcherSequence) MatchesAt(src []byte, pos int) bool {
	if pos < 0 || pos+s.Len() > len(src) {
		return false
	}
	return s.MatchesNoBoundsCheck(src, pos)
}

func (s *matcherSequence) MatchesNoBoundsCheck(src []byte, pos int) bool {
	if s.reversed {
		for i, j := s.end-1, pos; i >= s.start; i, j = i-1, j+1 {
			if !s.matchers[i].Matches(src[j]) {
				return false
			}
		}
		return true
	}
	for i, j := s.start, pos; i < s.end; i, j = i+1, j+1 {
		if !s.matchers[i].Matches(src[j]) {
			return false
		}
	}
	return true
}

func (s *matcherSequence) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchesSequenceReader(s, r, pos)
}

func (s *matcherSequence) Subsequence(begin, end int) SequenceMatcher {
	length := s.Len()
	checkSubsequence(begin, end, length)
	if begin == 0 && end == length {
		return s
	}
	if end-begin == 1 {
		return One(s.MatcherAt(begin))
	}
	if s.reversed {
		return newMatcherSequence(s.matchers, s.end-end, s.end-begin, true)
	}
	return newMatcherSequence(s.matchers, s.start+begin, s.start+end, false)
}

func (s *matcherSequence) Reverse() SequenceMatcher {
	return newMatcherSequence(s.matchers, s.start, s.end, !s.reversed)
}

func (s *matcherSequence) Repeat(n int) SequenceMatcher {
	if n < 1 {
		panic(fmt.Sprintf("repeat count %d not positive", n))
	}
	if n == 1 {
		return s
	}
	length := s.Len()
	ms := make([]ByteMatcher, 0, n*length)
	for i := 0; i < n; i++ {
		for j := 0; j < length; j++ {
			ms = append(ms, s.MatcherAt(j))
		}
	}
	return newMatcherSequence(ms, 0, len(ms), false)
}

func (s *matcherSequence) Regex(pretty bool) string {
	return sequenceRegex(s, pretty)
}

func (s *matcherSequence) Equal(other SequenceMatcher) bool {
	return sequencesEqual(s, other)
}

func (s *matcherSequence) Hash() uint32 { return s.hash }
