// Copyright 2026, the Byteseek contributors.

package cache

import (
	"bytes"
	"testing"

	"github.com/byteseek/byteseek/window"
)

// hardWindow builds a test window at the given position.
func hardWindow(t *testing.T, position int64, data []byte) window.Window {
	t.Helper()
	w, err := window.NewHardWindow(data, position, len(data))
	if err != nil {
		t.Fatal(err)
	}
	return w
}

// freeRecorder records window-free notifications, and can probe the
// cache it observes during the callback.
type freeRecorder struct {
	freed       []int64
	presentAt   []bool
	probedCache Cache
}

func (f *freeRecorder) WindowFree(w window.Window, from Cache) {
	f.freed = append(f.freed, w.Position())
	if f.probedCache != nil {
		f.presentAt = append(f.presentAt, f.probedCache.Window(w.Position()) != nil)
	}
}

func TestNoneCache(t *testing.T) {
	t.Parallel()

	c := NewNone()
	rec := &freeRecorder{}
	c.Subscribe(rec)

	w := hardWindow(t, 0, []byte("abcd"))
	if err := c.Add(w); err != nil {
		t.Fatal(err)
	}
	if c.Window(0) != nil {
		t.Error("none cache retained a window")
	}
	if len(rec.freed) != 1 || rec.freed[0] != 0 {
		t.Errorf("freed %v, want [0]", rec.freed)
	}
	if n := c.Read(0, 0, make([]byte, 4)); n != 0 {
		t.Errorf("read %d from none cache", n)
	}
}

func TestAllCache(t *testing.T) {
	t.Parallel()

	c := NewAll()
	for pos := int64(0); pos < 40; pos += 4 {
		c.Add(hardWindow(t, pos, []byte("abcd")))
	}
	for pos := int64(0); pos < 40; pos += 4 {
		if c.Window(pos) == nil {
			t.Errorf("window %d missing", pos)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if c.Window(0) != nil {
		t.Error("window survived clear")
	}
}

func TestLeastRecentEviction(t *testing.T) {
	t.Parallel()

	c, err := NewLeastRecent(2)
	if err != nil {
		t.Fatal(err)
	}
	rec := &freeRecorder{probedCache: c}
	c.Subscribe(rec)

	c.Add(hardWindow(t, 0, []byte("aaaa")))
	c.Add(hardWindow(t, 4, []byte("bbbb")))

	// Touch 0 so 4 is the least recently used.
	if c.Window(0) == nil {
		t.Fatal("window 0 missing")
	}

	c.Add(hardWindow(t, 8, []byte("cccc")))

	if len(rec.freed) != 1 || rec.freed[0] != 4 {
		t.Fatalf("freed %v, want [4]", rec.freed)
	}
	// The eviction notification must arrive while the window is
	// still retrievable from the cache.
	if !rec.presentAt[0] {
		t.Error("window already removed during the free notification")
	}
	if c.Window(4) != nil {
		t.Error("evicted window still cached")
	}
	if c.Window(0) == nil || c.Window(8) == nil {
		t.Error("retained windows missing")
	}
}

func TestMostRecentEviction(t *testing.T) {
	t.Parallel()

	c, err := NewMostRecent(2)
	if err != nil {
		t.Fatal(err)
	}
	rec := &freeRecorder{}
	c.Subscribe(rec)

	c.Add(hardWindow(t, 0, []byte("aaaa")))
	c.Add(hardWindow(t, 4, []byte("bbbb")))
	c.Add(hardWindow(t, 8, []byte("cccc")))

	// The most recently used window (4) is evicted; the oldest
	// survives.
	if len(rec.freed) != 1 || rec.freed[0] != 4 {
		t.Fatalf("freed %v, want [4]", rec.freed)
	}
	if c.Window(0) == nil || c.Window(8) == nil {
		t.Error("expected windows missing")
	}
}

func TestLeastUsedEviction(t *testing.T) {
	t.Parallel()

	c, err := NewLeastUsed(2)
	if err != nil {
		t.Fatal(err)
	}
	rec := &freeRecorder{}
	c.Subscribe(rec)

	c.Add(hardWindow(t, 0, []byte("aaaa")))
	c.Add(hardWindow(t, 4, []byte("bbbb")))

	// Retrieve 4 twice and 0 never, so 0 is least used.
	c.Window(4)
	c.Window(4)

	c.Add(hardWindow(t, 8, []byte("cccc")))

	if len(rec.freed) != 1 || rec.freed[0] != 0 {
		t.Fatalf("freed %v, want [0]", rec.freed)
	}
	if c.Window(4) == nil || c.Window(8) == nil {
		t.Error("retained windows missing")
	}
}

func TestBoundedCapacityValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewLeastRecent(0); err == nil {
		t.Error("zero capacity accepted")
	}
	if _, err := NewMostRecent(-1); err == nil {
		t.Error("negative capacity accepted")
	}
	if _, err := NewLeastUsed(0); err == nil {
		t.Error("zero capacity accepted")
	}
}

func TestCacheRead(t *testing.T) {
	t.Parallel()

	c := NewAll()
	c.Add(hardWindow(t, 4, []byte("abcd")))

	dst := make([]byte, 2)
	if n := c.Read(4, 1, dst); n != 2 || !bytes.Equal(dst, []byte("bc")) {
		t.Errorf("read %d %q", n, dst[:n])
	}

	// Reads the cache cannot serve return 0.
	if n := c.Read(8, 0, dst); n != 0 {
		t.Errorf("read %d from missing window", n)
	}
	if n := c.Read(4, 4, dst); n != 0 {
		t.Errorf("read %d past window length", n)
	}
}

func TestUnsubscribe(t *testing.T) {
	t.Parallel()

	c := NewNone()
	rec := &freeRecorder{}
	c.Subscribe(rec)
	if !c.Unsubscribe(rec) {
		t.Error("unsubscribe should find the observer")
	}
	if c.Unsubscribe(rec) {
		t.Error("second unsubscribe should find nothing")
	}

	c.Add(hardWindow(t, 0, []byte("aaaa")))
	if len(rec.freed) != 0 {
		t.Error("unsubscribed observer was notified")
	}
}
