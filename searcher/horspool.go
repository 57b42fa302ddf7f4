// Copyright 2026, the Byteseek contributors.

package searcher

import (
	"sync"

	"github.com/byteseek/byteseek/matcher"
	"github.com/byteseek/byteseek/reader"
)

// horspoolTable holds the frozen byte-shift index for one direction.
type horspoolTable struct {
	shifts [256]int
}

// Horspool searches with Boyer-Moore-Horspool shifts generalized to
// byte matchers: each position contributes every byte it matches to
// the shift table, so shifts stay safe for sets and ranges at the
// cost of smaller shifts for permissive patterns.
type Horspool struct {
	seq      matcher.SequenceMatcher
	drv      driver
	forward  func() *horspoolTable
	backward func() *horspoolTable
}

// NewHorspool returns a Horspool searcher for the sequence.
func NewHorspool(seq matcher.SequenceMatcher) *Horspool {
	s := &Horspool{seq: seq}
	s.drv = driver{seq: seq, arr: s}
	s.forward = sync.OnceValue(s.buildForward)
	s.backward = sync.OnceValue(s.buildBackward)
	return s
}

func (s *Horspool) buildForward() *horspoolTable {
	length := s.seq.Len()
	t := &horspoolTable{}
	for i := range t.shifts {
		t.shifts[i] = length
	}
	// The final position is left out so a byte occurring only
	// there still shifts the full pattern length after the match
	// attempt.
	for i := 0; i < length-1; i++ {
		shift := length - 1 - i
		for _, b := range s.seq.MatcherAt(i).MatchingBytes() {
			if shift < t.shifts[b] {
				t.shifts[b] = shift
			}
		}
	}
	return t
}

func (s *Horspool) buildBackward() *horspoolTable {
	length := s.seq.Len()
	t := &horspoolTable{}
	for i := range t.shifts {
		t.shifts[i] = length
	}
	for i := length - 1; i > 0; i-- {
		shift := i
		for _, b := range s.seq.MatcherAt(i).MatchingBytes() {
			if shift < t.shifts[b] {
				t.shifts[b] = shift
			}
		}
	}
	return t
}

func (s *Horspool) SearchForwards(src []byte, from, to int) int {
	length := s.seq.Len()
	from, to, ok := clipForwards(len(src), length, from, to)
	if !ok {
		return NotFound
	}
	t := s.forward()
	last := s.seq.MatcherAt(length - 1)

	k := from
	for k <= to {
		b := src[k+length-1]
		if last.Matches(b) && s.seq.MatchesNoBoundsCheck(src, k) {
			return k
		}
		k += t.shifts[b]
	}
	return NotFound
}

func (s *Horspool) SearchBackwards(src []byte, from, to int) int {
	length := s.seq.Len()
	from, to, ok := clipBackwards(len(src), length, from, to)
	if !ok {
		return NotFound
	}
	t := s.backward()
	first := s.seq.MatcherAt(0)

	k := from
	for k >= to {
		b := src[k]
		if first.Matches(b) && s.seq.MatchesNoBoundsCheck(src, k) {
			return k
		}
		k -= t.shifts[b]
	}
	return NotFound
}

func (s *Horspool) SearchReaderForwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderForwards(r, from, to)
}

func (s *Horspool) SearchReaderBackwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderBackwards(r, from, to)
}

func (s *Horspool) PrepareForwards() { s.forward() }

func (s *Horspool) PrepareBackwards() { s.backward() }
