// Copyright 2026, the Byteseek contributors.

// Package cache provides the window caches attached to window
// readers.  A cache is a store keyed by window position.  Strategies
// range from caching nothing to caching everything, with bounded
// eviction disciplines in between, and can be composed into
// two-level and write-around hierarchies.  A temp-file cache spills
// sequential windows to disk and hands back soft windows recovered
// by re-reading the file.
//
// Caches publish a notification to subscribed observers for every
// window they evict or decline to keep; Clear discards windows
// without notifying anyone.  The notification always completes
// before the window is removed from internal storage, so an observer
// (such as the secondary tier of a two-level cache) can take over
// the window atomically with respect to other readers of the cache.

package cache

import (
	"github.com/byteseek/byteseek/window"
)

// A Cache stores windows by position on behalf of a reader.  Caches
// are single-writer: concurrent mutation of one instance requires
// external synchronization.
type Cache interface {

	// Window returns the cached window at the given position, or
	// nil when the cache does not hold it.
	Window(position int64) window.Window

	// Add offers a window to the cache.  The cache may evict
	// other windows to make room, notifying observers first.
	Add(w window.Window) error

	// Read copies bytes from the window at windowPos, starting at
	// offset within the window, into dst.  It returns the number
	// of bytes copied, 0 when the cache cannot serve the request.
	// The caller then falls back to the reader.
	Read(windowPos int64, offset int, dst []byte) int

	// Clear discards all cached windows and releases any backing
	// resources.
	Clear() error

	// Subscribe registers an observer for window-free
	// notifications.
	Subscribe(o Observer)

	// Unsubscribe removes a previously registered observer,
	// reporting whether it was registered.
	Unsubscribe(o Observer) bool
}

// An Observer is told when a window is about to leave a cache.  The
// window is still retrievable from the cache during the call.
// Observers must not retain the window beyond the call unless they
// re-cache it themselves.
type Observer interface {
	WindowFree(w window.Window, from Cache)
}

// notifier implements observer registration and notification for the
// concrete caches.
type notifier struct {
	observers []Observer
}

func (n *notifier) Subscribe(o Observer) {
	n.observers = append(n.observers, o)
}

func (n *notifier) Unsubscribe(o Observer) bool {
	for i, x := range n.observers {
		if x == o {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return true
		}
	}
	return false
}

// notifyFree tells every observer the window is leaving from.  The
// caller removes the window from its storage only after this
// returns.
func (n *notifier) notifyFree(w window.Window, from Cache) {
	for _, o := range n.observers {
		o.WindowFree(w, from)
	}
}

// readFrom serves the common Read implementation for caches that
// store materialized windows.
func readFrom(w window.Window, offset int, dst []byte) int {
	if w == nil || offset < 0 || offset >= w.Length() {
		return 0
	}
	array, err := w.Array()
	if err != nil {
		return 0
	}
	return copy(dst, array[offset:w.Length()])
}

// None caches nothing.  Every lookup misses and every add is
// discarded after notifying observers that the window is free.
type None struct {
	notifier
}

// NewNone returns a cache that never retains windows.
func NewNone() *None {
	return &None{}
}

func (c *None) Window(position int64) window.Window { return nil }

func (c *None) Add(w window.Window) error {
	c.notifyFree(w, c)
	return nil
}

func (c *None) Read(windowPos int64, offset int, dst []byte) int { return 0 }

func (c *None) Clear() error { return nil }

// All retains every window ever added and never evicts.
type All struct {
	notifier
	windows map[int64]window.Window
}

// NewAll returns a cache that holds every window offered to it.
func NewAll() *All {
	return &All{windows: make(map[int64]window.Window)}
}

func (c *All) Window(position int64) window.Window {
	return c.windows[position]
}

func (c *All) Add(w window.Window) error {
	c.windows[w.Position()] = w
	return nil
}

func (c *All) Read(windowPos int64, offset int, dst []byte) int {
	return readFrom(c.windows[windowPos], offset, dst)
}

func (c *All) Clear() error {
	c.windows = make(map[int64]window.Window)
	return nil
}
