// Copyright 2026, the Byteseek contributors.

package cache

import (
	"github.com/byteseek/byteseek/window"
)

// TwoLevel composes a primary cache over a secondary one.  Additions
// go to the primary; windows evicted from the primary drop into the
// secondary.  Lookups try the primary, then the secondary; a
// secondary hit is promoted back into the primary.  Observers of the
// two-level cache fire only when a window leaves the secondary, at
// which point it has left the cache entirely.
type TwoLevel struct {
	notifier
	primary   Cache
	secondary Cache
}

// demoter moves windows evicted from the primary into the secondary.
type demoter struct {
	c *TwoLevel
}

func (d *demoter) WindowFree(w window.Window, from Cache) {
	// Errors adding to the secondary cannot block the primary's
	// eviction; the window is simply lost from the cache.
	_ = d.c.secondary.Add(w)
}

// forwarder republishes secondary-cache frees as frees of the
// two-level cache.
type forwarder struct {
	c *TwoLevel
}

func (f *forwarder) WindowFree(w window.Window, from Cache) {
	f.c.notifyFree(w, f.c)
}

// NewTwoLevel composes primary and secondary into one cache.  The
// observer wiring between the tiers happens here, after both caches
// exist.
func NewTwoLevel(primary, secondary Cache) *TwoLevel {
	c := &TwoLevel{primary: primary, secondary: secondary}
	primary.Subscribe(&demoter{c: c})
	secondary.Subscribe(&forwarder{c: c})
	return c
}

func (c *TwoLevel) Window(position int64) window.Window {
	if w := c.primary.Window(position); w != nil {
		return w
	}
	w := c.secondary.Window(position)
	if w != nil {
		// Promote: the window may immediately evict another
		// primary window into the secondary.
		_ = c.primary.Add(w)
	}
	return w
}

func (c *TwoLevel) Add(w window.Window) error {
	return c.primary.Add(w)
}

func (c *TwoLevel) Read(windowPos int64, offset int, dst []byte) int {
	if n := c.primary.Read(windowPos, offset, dst); n > 0 {
		return n
	}
	return c.secondary.Read(windowPos, offset, dst)
}

// Clear clears both tiers.  Both are attempted; the first error
// observed is returned.
func (c *TwoLevel) Clear() error {
	err := c.primary.Clear()
	if err2 := c.secondary.Clear(); err == nil {
		err = err2
	}
	return err
}

// WriteAround composes a memory cache over a persistent one, routing
// additions directly to the persistent cache.  The memory cache
// fills on read: a lookup that misses memory but hits the persistent
// cache adds the window to memory on the way out.
type WriteAround struct {
	notifier
	memory     Cache
	persistent Cache
}

// waForwarder republishes persistent-cache frees as frees of the
// write-around cache.
type waForwarder struct {
	c *WriteAround
}

func (f *waForwarder) WindowFree(w window.Window, from Cache) {
	f.c.notifyFree(w, f.c)
}

// NewWriteAround composes memory and persistent into one cache.
func NewWriteAround(memory, persistent Cache) *WriteAround {
	c := &WriteAround{memory: memory, persistent: persistent}
	persistent.Subscribe(&waForwarder{c: c})
	return c
}

func (c *WriteAround) Window(position int64) window.Window {
	if w := c.memory.Window(position); w != nil {
		return w
	}
	w := c.persistent.Window(position)
	if w != nil {
		_ = c.memory.Add(w)
	}
	return w
}

func (c *WriteAround) Add(w window.Window) error {
	return c.persistent.Add(w)
}

func (c *WriteAround) Read(windowPos int64, offset int, dst []byte) int {
	if n := c.memory.Read(windowPos, offset, dst); n > 0 {
		return n
	}
	return c.persistent.Read(windowPos, offset, dst)
}

// Clear clears both caches.  The persistent cache is cleared even if
// clearing memory fails, and the memory error is surfaced.
func (c *WriteAround) Clear() error {
	err := c.memory.Clear()
	if err2 := c.persistent.Clear(); err == nil {
		err = err2
	}
	return err
}
