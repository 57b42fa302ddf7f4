// Copyright 2026, the Byteseek contributors.

package searcher

import (
	"sync"

	"github.com/willf/bloom"

	"github.com/byteseek/byteseek/matcher"
	"github.com/byteseek/byteseek/reader"
)

// qgramFilterQ is the gram width of the filter searcher.
const qgramFilterQ = 2

// qgramFilterTable holds the frozen pattern sketch: a Bloom filter
// of every q-gram the pattern can produce at any position.  False
// positives only cost verification work; false negatives cannot
// happen, so skips remain safe.
type qgramFilterTable struct {
	filter *bloom.BloomFilter
}

// QgramFilter searches by skipping alignments whose text q-grams
// cannot all occur in the pattern.  An alignment is verified with
// the sequence matcher only after each of its sampled q-grams passes
// the pattern sketch.  Patterns the filter cannot serve use a
// Shift-Or fallback, chosen once at preparation and frozen.
type QgramFilter struct {
	seq      matcher.SequenceMatcher
	drv      driver
	table    func() *qgramFilterTable
	fallback func() *ShiftOr
}

// NewQgramFilter returns a q-gram filter searcher for the sequence.
func NewQgramFilter(seq matcher.SequenceMatcher) *QgramFilter {
	s := &QgramFilter{seq: seq}
	s.drv = driver{seq: seq, arr: s}
	s.table = sync.OnceValue(s.buildTable)
	s.fallback = sync.OnceValue(func() *ShiftOr { return NewShiftOr(s.seq) })
	return s
}

func (s *QgramFilter) buildTable() *qgramFilterTable {
	if !qgramServable(s.seq, qgramFilterQ) {
		return nil
	}
	n := countQgrams(s.seq, qgramFilterQ)
	filter := bloom.NewWithEstimates(uint(n), 0.01)
	gram := make([]byte, qgramFilterQ)
	for pos := 0; pos+qgramFilterQ <= s.seq.Len(); pos++ {
		enumerateQgrams(s.seq, pos, qgramFilterQ, gram, func(g []byte) {
			filter.Add(g)
		})
	}
	return &qgramFilterTable{filter: filter}
}

func (s *QgramFilter) SearchForwards(src []byte, from, to int) int {
	t := s.table()
	if t == nil {
		return s.fallback().SearchForwards(src, from, to)
	}
	length := s.seq.Len()
	from, to, ok := clipForwards(len(src), length, from, to)
	if !ok {
		return NotFound
	}

	k := from
scan:
	for k <= to {
		// Sample grams from the end of the alignment back in
		// steps of q.  A gram absent from the pattern rules
		// out every alignment containing it, letting the scan
		// jump past it.
		for j := length - qgramFilterQ; j >= 0; j -= qgramFilterQ {
			if !t.filter.Test(src[k+j : k+j+qgramFilterQ]) {
				k += j + 1
				continue scan
			}
		}
		if s.seq.MatchesNoBoundsCheck(src, k) {
			return k
		}
		k++
	}
	return NotFound
}

func (s *QgramFilter) SearchBackwards(src []byte, from, to int) int {
	t := s.table()
	if t == nil {
		return s.fallback().SearchBackwards(src, from, to)
	}
	length := s.seq.Len()
	from, to, ok := clipBackwards(len(src), length, from, to)
	if !ok {
		return NotFound
	}

	k := from
scan:
	for k >= to {
		for j := 0; j+qgramFilterQ <= length; j += qgramFilterQ {
			if !t.filter.Test(src[k+j : k+j+qgramFilterQ]) {
				k += j + qgramFilterQ - length - 1
				continue scan
			}
		}
		if s.seq.MatchesNoBoundsCheck(src, k) {
			return k
		}
		k--
	}
	return NotFound
}

func (s *QgramFilter) SearchReaderForwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderForwards(r, from, to)
}

func (s *QgramFilter) SearchReaderBackwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderBackwards(r, from, to)
}

func (s *QgramFilter) PrepareForwards() {
	if s.table() == nil {
		s.fallback().PrepareForwards()
	}
}

func (s *QgramFilter) PrepareBackwards() {
	if s.table() == nil {
		s.fallback().PrepareBackwards()
	}
}
