// Copyright 2026, the Byteseek contributors.

package searcher

import (
	"sync"

	"github.com/byteseek/byteseek/matcher"
	"github.com/byteseek/byteseek/reader"
)

// shiftOrWord is the number of pattern positions tracked in the
// bit-parallel state.  Longer patterns match on this prefix and
// verify the remainder explicitly.
const shiftOrWord = 63

// shiftOrTable is the frozen bit-parallel index for one direction.
// Bit i of masks[b] is clear when the tracked pattern position i
// matches byte b.
type shiftOrTable struct {
	masks   [256]uint64
	tracked int
	whole   bool
}

// ShiftOr is the bit-parallel searcher.  It serves every pattern, so
// it is also the universal fallback for searchers with preconditions
// their pattern cannot meet.
type ShiftOr struct {
	seq      matcher.SequenceMatcher
	drv      driver
	forward  func() *shiftOrTable
	backward func() *shiftOrTable
}

// NewShiftOr returns a Shift-Or searcher for the sequence.
func NewShiftOr(seq matcher.SequenceMatcher) *ShiftOr {
	s := &ShiftOr{seq: seq}
	s.drv = driver{seq: seq, arr: s}
	s.forward = sync.OnceValue(s.buildForward)
	s.backward = sync.OnceValue(s.buildBackward)
	return s
}

// buildForward indexes the first tracked positions of the pattern.
func (s *ShiftOr) buildForward() *shiftOrTable {
	length := s.seq.Len()
	tracked := length
	if tracked > shiftOrWord {
		tracked = shiftOrWord
	}
	t := &shiftOrTable{tracked: tracked, whole: tracked == length}
	for i := range t.masks {
		t.masks[i] = ^uint64(0)
	}
	for i := 0; i < tracked; i++ {
		bit := uint64(1) << i
		for _, b := range s.seq.MatcherAt(i).MatchingBytes() {
			t.masks[b] &^= bit
		}
	}
	return t
}

// buildBackward indexes the reversed prefix, so a descending scan
// recognizes the pattern's first tracked positions.
func (s *ShiftOr) buildBackward() *shiftOrTable {
	length := s.seq.Len()
	tracked := length
	if tracked > shiftOrWord {
		tracked = shiftOrWord
	}
	t := &shiftOrTable{tracked: tracked, whole: tracked == length}
	for i := range t.masks {
		t.masks[i] = ^uint64(0)
	}
	for i := 0; i < tracked; i++ {
		bit := uint64(1) << i
		for _, b := range s.seq.MatcherAt(tracked-1-i).MatchingBytes() {
			t.masks[b] &^= bit
		}
	}
	return t
}

func (s *ShiftOr) SearchForwards(src []byte, from, to int) int {
	length := s.seq.Len()
	from, to, ok := clipForwards(len(src), length, from, to)
	if !ok {
		return NotFound
	}
	t := s.forward()
	matchBit := uint64(1) << (t.tracked - 1)

	state := ^uint64(0)
	end := to + t.tracked - 1
	for i := from; i <= end; i++ {
		state = (state << 1) | t.masks[src[i]]
		if state&matchBit == 0 {
			start := i - t.tracked + 1
			if start < from || start > to {
				continue
			}
			if t.whole || s.seq.MatchesNoBoundsCheck(src, start) {
				return start
			}
		}
	}
	return NotFound
}

func (s *ShiftOr) SearchBackwards(src []byte, from, to int) int {
	length := s.seq.Len()
	from, to, ok := clipBackwards(len(src), length, from, to)
	if !ok {
		return NotFound
	}
	t := s.backward()
	matchBit := uint64(1) << (t.tracked - 1)

	state := ^uint64(0)
	for i := from + t.tracked - 1; i >= to; i-- {
		state = (state << 1) | t.masks[src[i]]
		if state&matchBit == 0 {
			start := i
			if start > from {
				continue
			}
			if t.whole || s.seq.MatchesNoBoundsCheck(src, start) {
				return start
			}
		}
	}
	return NotFound
}

func (s *ShiftOr) SearchReaderForwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderForwards(r, from, to)
}

func (s *ShiftOr) SearchReaderBackwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderBackwards(r, from, to)
}

func (s *ShiftOr) PrepareForwards() { s.forward() }

func (s *ShiftOr) PrepareBackwards() { s.backward() }
