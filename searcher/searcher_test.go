// Copyright 2026, the Byteseek contributors.

package searcher

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/byteseek/byteseek/cache"
	"github.com/byteseek/byteseek/matcher"
	"github.com/byteseek/byteseek/reader"
)

// allSearchers builds every searcher in the family for a sequence.
func allSearchers(t *testing.T, seq matcher.SequenceMatcher) map[string]Searcher {
	t.Helper()
	return map[string]Searcher{
		"matcher":      NewMatcherSearcher(seq),
		"shift-or":     NewShiftOr(seq),
		"horspool":     NewHorspool(seq),
		"signed-hash2": NewSignedHash2(seq),
		"signed-hash3": NewSignedHash3(seq),
		"qgram-filter": NewQgramFilter(seq),
	}
}

func mustSeq(t *testing.T, values string) matcher.SequenceMatcher {
	t.Helper()
	s, err := matcher.Sequence([]byte(values))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSearchForwardsBasic(t *testing.T) {
	t.Parallel()

	seq := mustSeq(t, "ABCDEF")
	hit := []byte("xxABCDEFyy")
	miss := []byte("xxABCEFFyy")

	for name, s := range allSearchers(t, seq) {
		if k := s.SearchForwards(hit, 0, 9); k != 2 {
			t.Errorf("%s: found at %d, want 2", name, k)
		}
		if k := s.SearchForwards(miss, 0, 9); k >= 0 {
			t.Errorf("%s: false match at %d", name, k)
		}
	}
}

func TestSearchBackwardsBasic(t *testing.T) {
	t.Parallel()

	seq := mustSeq(t, "AB")
	src := []byte("ABxxABxx")

	for name, s := range allSearchers(t, seq) {
		if k := s.SearchBackwards(src, len(src)-1, 0); k != 4 {
			t.Errorf("%s: backwards found %d, want 4", name, k)
		}
		// Bounded below the last occurrence.
		if k := s.SearchBackwards(src, 3, 0); k != 0 {
			t.Errorf("%s: bounded backwards found %d, want 0", name, k)
		}
	}
}

func TestSearchBoundsRespected(t *testing.T) {
	t.Parallel()

	seq := mustSeq(t, "AB")
	src := []byte("ABxxABxxAB")

	for name, s := range allSearchers(t, seq) {
		// from > to finds nothing without reading.
		if k := s.SearchForwards(src, 5, 2); k != NotFound {
			t.Errorf("%s: from > to returned %d", name, k)
		}
		// Matches before from are skipped.
		if k := s.SearchForwards(src, 1, 9); k != 4 {
			t.Errorf("%s: from-bounded forward %d, want 4", name, k)
		}
		// Matches after to are skipped.
		if k := s.SearchForwards(src, 5, 7); k != NotFound {
			t.Errorf("%s: to-bounded forward %d, want none", name, k)
		}
		// A span exactly the pattern length tests one position.
		if k := s.SearchForwards(src, 4, 4); k != 4 {
			t.Errorf("%s: single-position span %d, want 4", name, k)
		}
	}
}

// TestSearchAgreesWithNaive drives every algorithm over random text
// and compares all match positions against the naive searcher.
func TestSearchAgreesWithNaive(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("ABCD")
	text := make([]byte, 2000)
	for i := range text {
		text[i] = alphabet[rng.Intn(len(alphabet))]
	}

	patterns := [][]byte{
		[]byte("A"),
		[]byte("AB"),
		[]byte("ABC"),
		[]byte("DCBA"),
		[]byte("ABCDABCD"),
		text[100:117],
		text[1990:2000],
	}

	for _, pat := range patterns {
		seq := mustSeq(t, string(pat))
		naive := NewMatcherSearcher(seq)

		var want []int
		from := 0
		for {
			k := naive.SearchForwards(text, from, len(text)-1)
			if k < 0 {
				break
			}
			want = append(want, k)
			from = k + 1
		}

		for name, s := range allSearchers(t, seq) {
			var got []int
			from := 0
			for {
				k := s.SearchForwards(text, from, len(text)-1)
				if k < 0 {
					break
				}
				got = append(got, k)
				from = k + 1
			}
			if len(got) != len(want) {
				t.Fatalf("%s %q: %d matches, want %d", name, pat, len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("%s %q: match %d at %d, want %d", name, pat, i, got[i], want[i])
				}
			}

			// Backwards agrees with the last forward match.
			back := s.SearchBackwards(text, len(text)-1, 0)
			wantBack := NotFound
			if len(want) > 0 {
				wantBack = want[len(want)-1]
			}
			if back != wantBack {
				t.Fatalf("%s %q: backwards %d, want %d", name, pat, back, wantBack)
			}
		}
	}
}

// TestQgramFallback checks that q-gram searchers serve patterns
// shorter than their gram width through the Shift-Or fallback.
func TestQgramFallback(t *testing.T) {
	t.Parallel()

	text := make([]byte, 10*1024)
	rng := rand.New(rand.NewSource(3))
	rng.Read(text)
	// Plant the byte at known first and last positions.
	for i := range text {
		if text[i] == 0x7f {
			text[i] = 0x00
		}
	}
	text[1234] = 0x7f
	text[9876] = 0x7f

	seq, err := matcher.Sequence([]byte{0x7f})
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range []Searcher{NewSignedHash2(seq), NewSignedHash3(seq), NewQgramFilter(seq)} {
		s.PrepareForwards()
		s.PrepareBackwards()
		if k := s.SearchForwards(text, 0, len(text)-1); k != 1234 {
			t.Errorf("forward found %d, want 1234", k)
		}
		if k := s.SearchBackwards(text, len(text)-1, 0); k != 9876 {
			t.Errorf("backward found %d, want 9876", k)
		}
	}
}

// TestDegeneratePatternFallsBack checks that a constant pattern is
// still searched correctly through the fallback path.
func TestDegeneratePatternFallsBack(t *testing.T) {
	t.Parallel()

	seq := mustSeq(t, "AAAA")
	src := []byte("xxxAAAAAxxx")

	for name, s := range allSearchers(t, seq) {
		if k := s.SearchForwards(src, 0, len(src)-1); k != 3 {
			t.Errorf("%s: found %d, want 3", name, k)
		}
		if k := s.SearchBackwards(src, len(src)-1, 0); k != 4 {
			t.Errorf("%s: backwards found %d, want 4", name, k)
		}
	}
}

func TestGeneralMatcherSearch(t *testing.T) {
	t.Parallel()

	// Digits followed by 'Z': matcher sets rather than bytes.
	seq, err := matcher.Matchers(matcher.Range(0x30, 0x39), matcher.Range(0x30, 0x39), matcher.Byte('Z'))
	if err != nil {
		t.Fatal(err)
	}
	src := []byte("ab12Zcd99Zef")

	for name, s := range allSearchers(t, seq) {
		if k := s.SearchForwards(src, 0, len(src)-1); k != 2 {
			t.Errorf("%s: found %d, want 2", name, k)
		}
		if k := s.SearchBackwards(src, len(src)-1, 0); k != 7 {
			t.Errorf("%s: backwards found %d, want 7", name, k)
		}
	}
}

func TestSearchReader(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("x"), 1000)
	copy(data[497:], "NEEDLE") // straddles many small window sizes
	copy(data[700:], "NEEDLE")
	seq := mustSeq(t, "NEEDLE")

	for _, ws := range []int{32, 127, 500, 512, 4096} {
		lru, err := cache.NewLeastRecent(4)
		if err != nil {
			t.Fatal(err)
		}
		r, err := reader.NewBytesReader(data, ws, lru)
		if err != nil {
			t.Fatal(err)
		}

		for name, s := range allSearchers(t, seq) {
			k, err := s.SearchReaderForwards(r, 0, 999)
			if err != nil {
				t.Fatal(err)
			}
			if k != 497 {
				t.Errorf("%s ws=%d: forward %d, want 497", name, ws, k)
			}

			k, err = s.SearchReaderForwards(r, 498, 999)
			if err != nil {
				t.Fatal(err)
			}
			if k != 700 {
				t.Errorf("%s ws=%d: second forward %d, want 700", name, ws, k)
			}

			k, err = s.SearchReaderBackwards(r, 999, 0)
			if err != nil {
				t.Fatal(err)
			}
			if k != 700 {
				t.Errorf("%s ws=%d: backward %d, want 700", name, ws, k)
			}

			k, err = s.SearchReaderBackwards(r, 699, 0)
			if err != nil {
				t.Fatal(err)
			}
			if k != 497 {
				t.Errorf("%s ws=%d: bounded backward %d, want 497", name, ws, k)
			}

			// from > to without reading.
			k, err = s.SearchReaderForwards(r, 10, 5)
			if err != nil || k != NotFound {
				t.Errorf("%s ws=%d: from > to gave %d %v", name, ws, k, err)
			}
		}
		r.Close()
	}
}

func TestSearchReaderStream(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("ab"), 5000)
	copy(data[9000:], "NEEDLE")
	seq := mustSeq(t, "NEEDLE")

	r, err := reader.NewStreamReader(bytes.NewReader(data), 256, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	s := NewHorspool(seq)
	k, err := s.SearchReaderForwards(r, 0, int64(len(data)-1))
	if err != nil {
		t.Fatal(err)
	}
	if k != 9000 {
		t.Errorf("stream forward %d, want 9000", k)
	}

	k, err = s.SearchReaderBackwards(r, int64(len(data)-1), 0)
	if err != nil {
		t.Fatal(err)
	}
	if k != 9000 {
		t.Errorf("stream backward %d, want 9000", k)
	}
}

func TestPrepareFreezesSelection(t *testing.T) {
	t.Parallel()

	seq := mustSeq(t, "A")
	s := NewSignedHash2(seq)

	// Preparation picks the fallback exactly once; later searches
	// reuse it.
	s.PrepareForwards()
	if s.forward() != nil {
		t.Fatal("single-byte pattern should select the fallback")
	}
	fb := s.fallback()
	src := []byte("xxAxx")
	if k := s.SearchForwards(src, 0, 4); k != 2 {
		t.Errorf("found %d, want 2", k)
	}
	if k := s.SearchForwards(src, 0, 4); k != 2 {
		t.Errorf("second search found %d, want 2", k)
	}
	if s.fallback() != fb {
		t.Error("fallback searcher was rebuilt")
	}
}
