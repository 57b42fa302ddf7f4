// Copyright 2026, the Byteseek contributors.

// Package searcher provides forward and backward searching of a
// sequence matcher over byte slices and window readers.  The family
// includes a naive matcher-driven searcher, bit-parallel Shift-Or,
// Horspool shifting on matching-byte sets, q-gram hash shift tables,
// and a q-gram Bloom-filter skipping searcher.
//
// Searchers that index q-grams need patterns at least q long and
// with enough distinct structure to produce useful shifts; when a
// pattern cannot be served, the searcher transparently falls back to
// Shift-Or.  Fallback selection and index construction happen once,
// on first use or an explicit Prepare call, and the result is frozen
// and immutable afterwards, so a prepared searcher may be shared
// between goroutines.
//
// All searches on readers are a window-by-window loop: the window's
// array is searched over bounds clipped so the pattern cannot run
// off the window, and the last pattern-length-minus-one positions of
// each window are verified through the reader, which crosses the
// boundary transparently.

package searcher

import (
	"github.com/byteseek/byteseek/matcher"
	"github.com/byteseek/byteseek/reader"
)

// A Searcher finds a sequence matcher in byte slices and window
// readers.  Negative results mean not found.
type Searcher interface {

	// SearchForwards returns the first position in [from, to] at
	// which the pattern matches src, or -1.
	SearchForwards(src []byte, from, to int) int

	// SearchBackwards returns the last position in [to, from] at
	// which the pattern matches src, scanning from `from` down
	// toward `to`, or -1.
	SearchBackwards(src []byte, from, to int) int

	// SearchReaderForwards is SearchForwards over a window
	// reader.
	SearchReaderForwards(r reader.WindowReader, from, to int64) (int64, error)

	// SearchReaderBackwards is SearchBackwards over a window
	// reader.
	SearchReaderBackwards(r reader.WindowReader, from, to int64) (int64, error)

	// PrepareForwards eagerly builds the forward search index.
	PrepareForwards()

	// PrepareBackwards eagerly builds the backward search index.
	PrepareBackwards()
}

// NotFound is the negative result of all searches.
const NotFound = -1

// clipForwards normalizes forward array-search bounds.  It returns
// the effective bounds and false when the range cannot contain a
// match.
func clipForwards(srcLen, patLen, from, to int) (int, int, bool) {
	if from < 0 {
		from = 0
	}
	last := srcLen - patLen
	if to > last {
		to = last
	}
	if from > to {
		return 0, 0, false
	}
	return from, to, true
}

// clipBackwards normalizes backward array-search bounds (from is the
// high bound, to the low bound).
func clipBackwards(srcLen, patLen, from, to int) (int, int, bool) {
	if to < 0 {
		to = 0
	}
	last := srcLen - patLen
	if from > last {
		from = last
	}
	if from < to {
		return 0, 0, false
	}
	return from, to, true
}

// driver implements the reader searches shared by every searcher in
// terms of its array searches.
type driver struct {
	seq matcher.SequenceMatcher
	arr Searcher
}

func (d *driver) searchReaderForwards(r reader.WindowReader, from, to int64) (int64, error) {
	if from < 0 {
		from = 0
	}
	if from > to {
		return NotFound, nil
	}
	patLen := d.seq.Len()

	pos := from
	for pos <= to {
		w, err := r.Window(pos)
		if err != nil {
			return NotFound, err
		}
		if w == nil {
			return NotFound, nil
		}
		array, err := w.Array()
		if err != nil {
			return NotFound, err
		}
		winStart := w.Position()
		winLen := w.Length()

		// Positions where the whole pattern fits inside this
		// window are searched over the array.
		arrFrom := int(pos - winStart)
		lastFull := winLen - patLen
		arrTo := lastFull
		if rel := to - winStart; rel < int64(arrTo) {
			arrTo = int(rel)
		}
		if arrFrom <= arrTo {
			if k := d.arr.SearchForwards(array[:winLen], arrFrom, arrTo); k >= 0 {
				return winStart + int64(k), nil
			}
		}

		// The final pattern-length-minus-one positions may
		// straddle into the next window; the sequence matcher
		// crosses the boundary through the reader.
		strFrom := lastFull + 1
		if strFrom < arrFrom {
			strFrom = arrFrom
		}
		strTo := winLen - 1
		if rel := to - winStart; rel < int64(strTo) {
			strTo = int(rel)
		}
		for j := strFrom; j <= strTo; j++ {
			ok, err := d.seq.MatchesReader(r, winStart+int64(j))
			if err != nil {
				return NotFound, err
			}
			if ok {
				return winStart + int64(j), nil
			}
		}

		pos = winStart + int64(winLen)
	}
	return NotFound, nil
}

func (d *driver) searchReaderBackwards(r reader.WindowReader, from, to int64) (int64, error) {
	if to < 0 {
		to = 0
	}
	if from < to {
		return NotFound, nil
	}
	patLen := d.seq.Len()

	// Clip the start position so the pattern can fit before the
	// end of the source.
	length, err := r.Length()
	if err != nil {
		return NotFound, err
	}
	if last := length - int64(patLen); from > last {
		from = last
	}
	if from < to {
		return NotFound, nil
	}

	pos := from
	for pos >= to {
		w, err := r.Window(pos)
		if err != nil {
			return NotFound, err
		}
		if w == nil {
			return NotFound, nil
		}
		array, err := w.Array()
		if err != nil {
			return NotFound, err
		}
		winStart := w.Position()
		winLen := w.Length()
		lastFull := winLen - patLen

		// Higher positions first: the straddling tail of the
		// window before the fully-contained region.
		strHi := int(pos - winStart)
		strLo := lastFull + 1
		if rel := to - winStart; rel > int64(strLo) {
			strLo = int(rel)
		}
		for j := strHi; j >= strLo; j-- {
			if j <= lastFull {
				break
			}
			ok, err := d.seq.MatchesReader(r, winStart+int64(j))
			if err != nil {
				return NotFound, err
			}
			if ok {
				return winStart + int64(j), nil
			}
		}

		arrHi := int(pos - winStart)
		if arrHi > lastFull {
			arrHi = lastFull
		}
		arrLo := 0
		if rel := to - winStart; rel > 0 {
			arrLo = int(rel)
		}
		if arrHi >= arrLo {
			if k := d.arr.SearchBackwards(array[:winLen], arrHi, arrLo); k >= 0 {
				return winStart + int64(k), nil
			}
		}

		if winStart == 0 {
			break
		}
		pos = winStart - 1
	}
	return NotFound, nil
}

// MatcherSearcher tests every position with the sequence matcher.
// It is the correctness baseline for the cleverer searchers and the
// workhorse for single-position patterns.
type MatcherSearcher struct {
	seq matcher.SequenceMatcher
	drv driver
}

// NewMatcherSearcher returns a naive searcher for the sequence.
func NewMatcherSearcher(seq matcher.SequenceMatcher) *MatcherSearcher {
	s := &MatcherSearcher{seq: seq}
	s.drv = driver{seq: seq, arr: s}
	return s
}

func (s *MatcherSearcher) SearchForwards(src []byte, from, to int) int {
	from, to, ok := clipForwards(len(src), s.seq.Len(), from, to)
	if !ok {
		return NotFound
	}
	for k := from; k <= to; k++ {
		if s.seq.MatchesNoBoundsCheck(src, k) {
			return k
		}
	}
	return NotFound
}

func (s *MatcherSearcher) SearchBackwards(src []byte, from, to int) int {
	from, to, ok := clipBackwards(len(src), s.seq.Len(), from, to)
	if !ok {
		return NotFound
	}
	for k := from; k >= to; k-- {
		if s.seq.MatchesNoBoundsCheck(src, k) {
			return k
		}
	}
	return NotFound
}

func (s *MatcherSearcher) SearchReaderForwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderForwards(r, from, to)
}

func (s *MatcherSearcher) SearchReaderBackwards(r reader.WindowReader, from, to int64) (int64, error) {
	return s.drv.searchReaderBackwards(r, from, to)
}

// PrepareForwards is a no-op; the naive searcher has no index.
func (s *MatcherSearcher) PrepareForwards() {}

// PrepareBackwards is a no-op; the naive searcher has no index.
func (s *MatcherSearcher) PrepareBackwards() {}
