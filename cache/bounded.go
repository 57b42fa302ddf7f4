// Copyright 2026, the Byteseek contributors.

package cache

import (
	"container/list"
	"fmt"

	"github.com/byteseek/byteseek/window"
)

// recencyEntry is one element of the recency list of the LRU and MRU
// caches.  The list front is always the most recently used window.
type recencyEntry struct {
	position int64
	w        window.Window
}

// recencyCache is the shared machinery of the LRU and MRU caches: a
// bounded map with a recency list.  evictFront selects which end of
// the list loses its window when the cache is full.
type recencyCache struct {
	notifier
	capacity   int
	evictFront bool
	order      *list.List
	index      map[int64]*list.Element
}

func newRecencyCache(capacity int, evictFront bool) (*recencyCache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity %d not positive", capacity)
	}
	return &recencyCache{
		capacity:   capacity,
		evictFront: evictFront,
		order:      list.New(),
		index:      make(map[int64]*list.Element),
	}, nil
}

func (c *recencyCache) Window(position int64) window.Window {
	e, ok := c.index[position]
	if !ok {
		return nil
	}
	c.order.MoveToFront(e)
	return e.Value.(*recencyEntry).w
}

func (c *recencyCache) Add(w window.Window) error {
	pos := w.Position()
	if e, ok := c.index[pos]; ok {
		e.Value.(*recencyEntry).w = w
		c.order.MoveToFront(e)
		return nil
	}

	if c.order.Len() >= c.capacity {
		victim := c.order.Back()
		if c.evictFront {
			victim = c.order.Front()
		}
		ve := victim.Value.(*recencyEntry)
		// Observers run before the window leaves storage.
		c.notifyFree(ve.w, c)
		c.order.Remove(victim)
		delete(c.index, ve.position)
	}

	c.index[pos] = c.order.PushFront(&recencyEntry{position: pos, w: w})
	return nil
}

func (c *recencyCache) Read(windowPos int64, offset int, dst []byte) int {
	e, ok := c.index[windowPos]
	if !ok {
		return 0
	}
	return readFrom(e.Value.(*recencyEntry).w, offset, dst)
}

func (c *recencyCache) Clear() error {
	c.order.Init()
	c.index = make(map[int64]*list.Element)
	return nil
}

// LeastRecent is a bounded cache evicting the least recently used
// window when full.
type LeastRecent struct {
	*recencyCache
}

// NewLeastRecent returns an LRU cache holding at most capacity
// windows.
func NewLeastRecent(capacity int) (*LeastRecent, error) {
	rc, err := newRecencyCache(capacity, false)
	if err != nil {
		return nil, err
	}
	return &LeastRecent{recencyCache: rc}, nil
}

// MostRecent is a bounded cache evicting the most recently used
// window when full.  It keeps the oldest windows, which suits
// sources scanned once front to back where early windows may be
// revisited.
type MostRecent struct {
	*recencyCache
}

// NewMostRecent returns an MRU-evicting cache holding at most
// capacity windows.
func NewMostRecent(capacity int) (*MostRecent, error) {
	rc, err := newRecencyCache(capacity, true)
	if err != nil {
		return nil, err
	}
	return &MostRecent{recencyCache: rc}, nil
}

// lfuEntry tracks how often a window has been retrieved.
type lfuEntry struct {
	w     window.Window
	count int
}

// LeastUsed is a bounded cache evicting a window retrieved the
// fewest times when full.  Ties are broken arbitrarily.
type LeastUsed struct {
	notifier
	capacity int
	windows  map[int64]*lfuEntry
}

// NewLeastUsed returns an LFU cache holding at most capacity
// windows.
func NewLeastUsed(capacity int) (*LeastUsed, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity %d not positive", capacity)
	}
	return &LeastUsed{
		capacity: capacity,
		windows:  make(map[int64]*lfuEntry),
	}, nil
}

func (c *LeastUsed) Window(position int64) window.Window {
	e, ok := c.windows[position]
	if !ok {
		return nil
	}
	e.count++
	return e.w
}

func (c *LeastUsed) Add(w window.Window) error {
	pos := w.Position()
	if e, ok := c.windows[pos]; ok {
		e.w = w
		return nil
	}

	if len(c.windows) >= c.capacity {
		var victimPos int64
		var victim *lfuEntry
		for p, e := range c.windows {
			if victim == nil || e.count < victim.count {
				victimPos = p
				victim = e
			}
		}
		c.notifyFree(victim.w, c)
		delete(c.windows, victimPos)
	}

	c.windows[pos] = &lfuEntry{w: w}
	return nil
}

func (c *LeastUsed) Read(windowPos int64, offset int, dst []byte) int {
	e, ok := c.windows[windowPos]
	if !ok {
		return 0
	}
	return readFrom(e.w, offset, dst)
}

func (c *LeastUsed) Clear() error {
	c.windows = make(map[int64]*lfuEntry)
	return nil
}
