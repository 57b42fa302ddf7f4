// Copyright 2026, the Byteseek contributors.

// Package matcher provides the byte-matcher algebra and the sequence
// matchers built from it.  A byte matcher is an immutable predicate
// over a single byte value, equivalent to a subset of {0..255}.  A
// sequence matcher is an immutable ordered run of byte matchers that
// can be matched against a byte slice or a window reader, with
// subsequence and reverse available as cheap views over shared
// backing arrays.
//
// All matchers may be shared freely between goroutines once
// constructed.

package matcher

import (
	"errors"
	"fmt"

	"github.com/byteseek/byteseek/reader"
)

// A ByteMatcher is an immutable predicate over one byte.
type ByteMatcher interface {

	// Matches reports whether the byte is in the matcher's set.
	Matches(b byte) bool

	// MatchesAt reports whether the byte at pos in src matches.
	// Positions outside src do not match.
	MatchesAt(src []byte, pos int) bool

	// MatchesNoBoundsCheck is MatchesAt without the bounds check.
	// Callers guarantee 0 <= pos < len(src); it exists for search
	// loops that have already established the bounds.
	MatchesNoBoundsCheck(src []byte, pos int) bool

	// MatchesReader reports whether the byte at the given
	// position of the reader matches.  Positions past the end of
	// the source do not match.
	MatchesReader(r reader.WindowReader, pos int64) (bool, error)

	// MatchingBytes enumerates the matcher's set in ascending
	// order.
	MatchingBytes() []byte

	// NumMatchingBytes returns the size of the matcher's set.
	NumMatchingBytes() int

	// Regex returns the canonical textual form of the matcher.
	// It is stable within a release and intended for diagnostics,
	// not persistence.
	Regex(pretty bool) string
}

// matchByteAt implements MatchesReader for single-byte matchers.
func matchByteAt(m ByteMatcher, r reader.WindowReader, pos int64) (bool, error) {
	b, err := r.Byte(pos)
	if err != nil {
		if errors.Is(err, reader.ErrNoByteAtPosition) {
			return false, nil
		}
		return false, err
	}
	return m.Matches(b), nil
}

// enumerate collects the bytes accepted by a predicate, ascending.
func enumerate(accepts func(b byte) bool) []byte {
	var out []byte
	for i := 0; i < 256; i++ {
		if accepts(byte(i)) {
			out = append(out, byte(i))
		}
	}
	return out
}

// hexByte formats one byte the way all matcher regexes spell byte
// values.
func hexByte(b byte) string {
	return fmt.Sprintf("%02x", b)
}

// anyMatcher matches every byte.
type anyMatcher struct{}

var anySingleton = anyMatcher{}

// Any returns the universal matcher.
func Any() ByteMatcher { return anySingleton }

func (anyMatcher) Matches(b byte) bool { return true }

func (anyMatcher) MatchesAt(src []byte, pos int) bool {
	return pos >= 0 && pos < len(src)
}

func (anyMatcher) MatchesNoBoundsCheck(src []byte, pos int) bool { return true }

func (m anyMatcher) MatchesReader(r reader.WindowReader, pos int64) (bool, error) {
	return matchByteAt(m, r, pos)
}

func (anyMatcher) MatchingBytes() []byte {
	return enumerate(func(byte) bool { return true })
}

func (anyMatcher) NumMatchingBytes() int { return 256 }

func (anyMatcher) Regex(pretty bool) string { return "." }
