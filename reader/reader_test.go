// Copyright 2026, the Byteseek contributors.

package reader

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/byteseek/byteseek/cache"
)

// testData returns deterministic pseudo-random bytes.
func testData(n int) []byte {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, n)
	rng.Read(data)
	return data
}

// checkReaderBytes verifies that every byte of the reader matches
// the origin, and that window positions and lengths obey the
// alignment contract.
func checkReaderBytes(t *testing.T, r WindowReader, origin []byte) {
	t.Helper()

	ws := int64(r.WindowSize())
	for pos := 0; pos < len(origin); pos++ {
		b, err := r.Byte(int64(pos))
		if err != nil {
			t.Fatalf("byte at %d: %v", pos, err)
		}
		if b != origin[pos] {
			t.Fatalf("byte at %d: %02x, want %02x", pos, b, origin[pos])
		}

		w, err := r.Window(int64(pos))
		if err != nil {
			t.Fatal(err)
		}
		if want := int64(pos) - int64(pos)%ws; w.Position() != want {
			t.Fatalf("window position %d for byte %d, want %d", w.Position(), pos, want)
		}
		if int64(pos) >= w.Position()+int64(w.Length()) {
			t.Fatalf("window at %d does not cover byte %d", w.Position(), pos)
		}
	}

	if _, err := r.Byte(int64(len(origin))); !errors.Is(err, ErrNoByteAtPosition) {
		t.Errorf("byte past end: %v", err)
	}
	w, err := r.Window(int64(len(origin)))
	if err != nil || w != nil {
		t.Errorf("window past end: %v %v", w, err)
	}

	length, err := r.Length()
	if err != nil || length != int64(len(origin)) {
		t.Errorf("length %d %v, want %d", length, err, len(origin))
	}
}

func TestBytesReader(t *testing.T) {
	t.Parallel()

	data := testData(300)
	for _, ws := range []int{1, 7, 32, 300, 512} {
		r, err := NewBytesReader(data, ws, nil)
		if err != nil {
			t.Fatal(err)
		}
		checkReaderBytes(t, r, data)
		r.Close()
	}
}

func TestFileReader(t *testing.T) {
	t.Parallel()

	data := testData(1000)
	fname := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(fname, data, 0600); err != nil {
		t.Fatal(err)
	}

	for _, ws := range []int{32, 127, 512, 1000, 4096} {
		lru, err := cache.NewLeastRecent(3)
		if err != nil {
			t.Fatal(err)
		}
		r, err := NewFileReader(fname, ws, lru)
		if err != nil {
			t.Fatal(err)
		}
		checkReaderBytes(t, r, data)

		if err := r.Close(); err != nil {
			t.Fatal(err)
		}
		// Close is idempotent and further reads fail closed.
		if err := r.Close(); err != nil {
			t.Fatal(err)
		}
		if _, err := r.Byte(0); !errors.Is(err, ErrReaderClosed) {
			t.Errorf("read after close: %v", err)
		}
	}
}

func TestReadAtAcrossWindows(t *testing.T) {
	t.Parallel()

	data := testData(256)
	r, err := NewBytesReader(data, 16, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	dst := make([]byte, 100)
	n, err := r.ReadAt(10, dst)
	if err != nil {
		t.Fatal(err)
	}
	if n != 100 || !bytes.Equal(dst, data[10:110]) {
		t.Errorf("read %d bytes across windows", n)
	}

	// Short read at the end of the source.
	n, err = r.ReadAt(250, dst)
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 || !bytes.Equal(dst[:n], data[250:]) {
		t.Errorf("read %d at tail", n)
	}

	// Past the end.
	if _, err := r.ReadAt(256, dst); !errors.Is(err, io.EOF) {
		t.Errorf("read past end: %v", err)
	}
}

func TestStreamReaderRandomAccess(t *testing.T) {
	t.Parallel()

	data := testData(700)
	r, err := NewStreamReader(bytes.NewReader(data), 64, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	// A request far ahead of the stream position produces and
	// caches everything in between.
	b, err := r.Byte(500)
	if err != nil {
		t.Fatal(err)
	}
	if b != data[500] {
		t.Fatalf("byte at 500: %02x, want %02x", b, data[500])
	}

	// Earlier positions come from the cache.
	for _, pos := range []int64{0, 63, 64, 250, 499} {
		b, err := r.Byte(pos)
		if err != nil {
			t.Fatal(err)
		}
		if b != data[pos] {
			t.Fatalf("byte at %d: %02x, want %02x", pos, b, data[pos])
		}
	}

	length, err := r.Length()
	if err != nil || length != 700 {
		t.Fatalf("length %d %v", length, err)
	}

	// Everything is still readable after the drain.
	checkReaderBytes(t, r, data)
}

func TestStreamReaderDroppedWindow(t *testing.T) {
	t.Parallel()

	data := testData(300)
	// A cache that retains nothing makes revisiting impossible.
	r, err := NewStreamReader(bytes.NewReader(data), 64, cache.NewNone())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if _, err := r.Byte(200); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Byte(0); !errors.Is(err, ErrWindowDropped) {
		t.Errorf("revisit with no cache: %v", err)
	}
}

func TestStreamReaderWithTempFileSpill(t *testing.T) {
	t.Parallel()

	data := testData(10000)
	spill, err := cache.NewTempFile(512, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer spill.Clear()

	r, err := NewStreamReader(bytes.NewReader(data), 512, spill)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	// Windows spill to the temp file in stream order; revisiting
	// reads them back as soft windows.
	checkReaderBytes(t, r, data)
}
