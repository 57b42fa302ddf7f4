// Copyright 2026, the Byteseek contributors.

package searcher

import (
	"sync"

	"github.com/byteseek/byteseek/matcher"
	"github.com/byteseek/byteseek/reader"
)

// hashShiftTable is the frozen q-gram shift index for one direction.
// A zero shift marks a q-gram that can sit at the anchor position of
// a match, signalling verification instead of a jump.
type hashShiftTable struct {
	shifts []int
	mask   uint32
	q      int
}

// SignedHash shifts on hashed q-grams.  The forward scan anchors on
// the final q-gram of each alignment; the shift table records, per
// hash bucket, how far the pattern end lies beyond the last pattern
// position producing a gram in that bucket.  Collisions only ever
// shorten shifts, so hashing stays safe.  Patterns the index cannot
// serve are handled by a Shift-Or fallback, chosen once at
// preparation and frozen.
type SignedHash struct {
	seq      matcher.SequenceMatcher
	q        int
	drv      driver
	forward  func() *hashShiftTable
	backward func() *hashShiftTable
	fallback func() *ShiftOr
}

// NewSignedHash2 returns a 2-gram hash searcher for the sequence.
func NewSignedHash2(seq matcher.SequenceMatcher) *SignedHash {
	return newSignedHash(seq, 2)
}

// NewSignedHash3 returns a 3-gram hash searcher for the sequence.
func NewSignedHash3(seq matcher.SequenceMatcher) *SignedHash {
	return newSignedHash(seq, 3)
}

func newSignedHash(seq matcher.SequenceMatcher, q int) *SignedHash {
	s := &SignedHash{seq: seq, q: q}
	s.drv = driver{seq: seq, arr: s}
	s.forward = sync.OnceValue(func() *hashShiftTable { return s.buildTable(true) })
	s.backward = sync.OnceValue(func() *hashShiftTable { return s.buildTable(false) })
	s.fallback = sync.OnceValue(func() *ShiftOr { return NewShiftOr(s.seq) })
	return s
}

// buildTable constructs the shift table, or returns nil when the
// pattern cannot be served and the fallback takes over.
func (s *SignedHash) buildTable(forwards bool) *hashShiftTable {
	if !qgramServable(s.seq, s.q) {
		return nil
	}
	length := s.seq.Len()
	size := tableSizeFor(countQgrams(s.seq, s.q))
	t := &hashShiftTable{shifts: make([]int, size), mask: uint32(size - 1), q: s.q}

	defaultShift := length - s.q + 1
	for i := range t.shifts {
		t.shifts[i] = defaultShift
	}

	qh := newQgramHasher(t.mask)
	gram := make([]byte, s.q)
	if forwards {
		// Ascending positions write descending shifts, so a
		// colliding bucket keeps its smallest (safe) shift.
		for pos := 0; pos+s.q <= length; pos++ {
			shift := length - s.q - pos
			enumerateQgrams(s.seq, pos, s.q, gram, func(g []byte) {
				t.shifts[qh.hash(g)] = shift
			})
		}
	} else {
		for pos := length - s.q; pos >= 0; pos-- {
			shift := pos
			enumerateQgrams(s.seq, pos, s.q, gram, func(g []byte) {
				t.shifts[qh.hash(g)] = shift
			})
		}
	}
	return t
}

func (s *SignedHash) SearchForwards(src []byte, from, to int) int {
	t := s.forward()
	if t == nil {
		return s.fallback().SearchForwards(src, from, to)
	}
	length := s.seq.Len()
	from, to, ok := clipForwards(len(src), length, from, to)
	if !ok {
		return NotFound
	}
	qh := newQgramHasher(t.mask)

	k := from
	for k <= to {
		gramStart := k + length - s.q
		shift := t.shifts[qh.hash(src[gramStart:gramStart+s.q])]
		if shift > 0 {
			k += shift
			continue
		}
		if s.seq.MatchesNoBoundsCheck(src, k) {
			return k
		}
		k++
	}
	return NotFound
}

func (s *SignedHash) SearchBackwards(src []byte, from, to int) int {
	t := s.backward()
	if t == nil {
		return s.fallback().SearchBackwards(src, from, to)
	}
	length := s.seq.Len()
	from, to, ok := clipBackwards(len(src), length, from, to)
	if !ok {
		return NotFound
	}
	qh := newQgramHasher(t.mask)

	k := from
	for k >= to {
		shift := t.shifts[qh.hash(src[k:k+s.q])]
		if shift > 0 {
			k -= shift
			continue
		}
		if s.seq.MatchesNoBoundsCheck(src, k) {
			return k
		}
		k--
	}
	return NotFound
}

func (s *SignedHash) SearchReaderForwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderForwards(r, from, to)
}

func (s *SignedHash) SearchReaderBackwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderBackwards(r, from, to)
}

func (s *SignedHash) PrepareForwards() {
	if s.forward() == nil {
		s.fallback().PrepareForwards()
	}
}

func (s *SignedHash) PrepareBackwards() {
	if s.backward() == nil {
		s.fallback().PrepareBackwards()
	}
}
