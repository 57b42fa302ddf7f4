// Copyright 2026, the Byteseek contributors.

package searcher

import (
	"github.com/chmduquesne/rollinghash"
	"github.com/chmduquesne/rollinghash/buzhash32"

	"github.com/byteseek/byteseek/matcher"
	"github.com/byteseek/byteseek/utils"
)

const (
	// maxQgramPermutations bounds how many q-grams a pattern may
	// expand to across its byte-matcher sets before q-gram
	// indexing is abandoned in favor of the fallback searcher.
	maxQgramPermutations = 1 << 16

	// minDistinctPairs is the least adjacent-pair diversity a
	// concrete byte pattern needs before q-gram shifts are worth
	// anything.  A constant pattern has one distinct pair and
	// would degenerate to shift-by-one with an index on top.
	minDistinctPairs = 2

	// Hash table sizing for the shift tables.
	minTableSize = 256
	maxTableSize = 1 << 16
)

// singleBytes returns the concrete bytes of a pattern in which every
// position matches exactly one byte, or false.
func singleBytes(seq matcher.SequenceMatcher) ([]byte, bool) {
	values := make([]byte, seq.Len())
	for i := range values {
		m := seq.MatcherAt(i)
		if m.NumMatchingBytes() != 1 {
			return nil, false
		}
		values[i] = m.MatchingBytes()[0]
	}
	return values, true
}

// qgramServable decides whether a q-gram index can serve the
// pattern.  Patterns shorter than q, patterns whose sets expand to
// too many q-grams, and concrete patterns with degenerate pair
// diversity all go to the fallback searcher instead.
func qgramServable(seq matcher.SequenceMatcher, q int) bool {
	length := seq.Len()
	if length < q {
		return false
	}
	if countQgrams(seq, q) > maxQgramPermutations {
		return false
	}
	if values, ok := singleBytes(seq); ok {
		need := minDistinctPairs
		if need > length-1 {
			need = length - 1
		}
		wk := make([]int, utils.PairSpace)
		if utils.CountDistinctPairs(values, wk) < need {
			return false
		}
	}
	return true
}

// countQgrams totals the q-gram expansions over every position,
// capping at one past the permutation limit.
func countQgrams(seq matcher.SequenceMatcher, q int) int {
	total := 0
	for pos := 0; pos+q <= seq.Len(); pos++ {
		n := 1
		for i := 0; i < q; i++ {
			n *= seq.MatcherAt(pos + i).NumMatchingBytes()
			if n > maxQgramPermutations {
				return maxQgramPermutations + 1
			}
		}
		total += n
		if total > maxQgramPermutations {
			return maxQgramPermutations + 1
		}
	}
	return total
}

// enumerateQgrams calls fn with every q-gram the pattern can produce
// at the given position.  The gram buffer is reused between calls.
func enumerateQgrams(seq matcher.SequenceMatcher, pos, q int, gram []byte, fn func(gram []byte)) {
	var expand func(i int)
	expand = func(i int) {
		if i == q {
			fn(gram)
			return
		}
		for _, b := range seq.MatcherAt(pos + i).MatchingBytes() {
			gram[i] = b
			expand(i + 1)
		}
	}
	expand(0)
}

// qgramHasher hashes q-grams for index construction and scanning.
// One hasher serves one search call; it is not shared.
type qgramHasher struct {
	h    rollinghash.Hash32
	mask uint32
}

func newQgramHasher(mask uint32) *qgramHasher {
	return &qgramHasher{h: buzhash32.New(), mask: mask}
}

func (qh *qgramHasher) hash(gram []byte) uint32 {
	qh.h.Reset()
	qh.h.Write(gram)
	return qh.h.Sum32() & qh.mask
}

// tableSizeFor picks a power-of-two table size proportionate to the
// number of grams indexed, within the configured limits.
func tableSizeFor(grams int) int {
	size := minTableSize
	for size < 4*grams && size < maxTableSize {
		size <<= 1
	}
	return size
}
