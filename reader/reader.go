// Copyright 2026, the Byteseek contributors.

// Package reader provides random access over byte sources of
// arbitrary size through a lazy sequence of fixed-size windows.  A
// reader consults its cache for each window and produces the window
// from the origin (a byte slice, a file, or a forward-only stream)
// on a miss, offering it back to the cache.  Matching and searching
// code addresses the source by absolute byte position and never sees
// where the bytes come from.

package reader

import (
	"errors"
	"io"

	"github.com/byteseek/byteseek/cache"
	"github.com/byteseek/byteseek/window"
)

var (
	// ErrReaderClosed is returned by all operations after Close.
	ErrReaderClosed = errors.New("reader is closed")

	// ErrNoByteAtPosition is returned by Byte for positions
	// outside the source.
	ErrNoByteAtPosition = errors.New("no byte at position")

	// ErrWindowDropped is returned by a stream-backed reader when
	// an already-read window is requested but the cache no longer
	// holds it.  The stream cannot rewind, so the bytes are gone.
	ErrWindowDropped = errors.New("window no longer cached and stream cannot rewind")
)

// A WindowReader exposes a byte source as windows addressed by
// absolute position.  Readers are single-writer: concurrent calls on
// one instance require external synchronization.
type WindowReader interface {

	// Window returns the window covering the given position, or
	// (nil, nil) when the position is past the end of the source.
	// The returned window's position is the greatest multiple of
	// the window size not exceeding the requested position.
	Window(position int64) (window.Window, error)

	// Byte returns the byte at the given position.
	Byte(position int64) (byte, error)

	// ReadAt copies bytes starting at the given position into
	// dst, crossing window boundaries as needed.  It returns the
	// number of bytes copied, and io.EOF when the position is at
	// or past the end of the source.
	ReadAt(position int64, dst []byte) (int, error)

	// Length returns the total number of bytes in the source.
	// For stream-backed readers this drains the remaining stream
	// the first time it is called.
	Length() (int64, error)

	// WindowSize returns the fixed window size of this reader.
	WindowSize() int

	io.Closer
}

// base implements the window-production protocol shared by all
// readers: align the position, try the cache, produce on a miss and
// offer the produced window back to the cache.
type base struct {
	windowSize int
	cache      cache.Cache
	closed     bool

	// create reads up to windowSize bytes at the aligned
	// position from the origin.  It returns (nil, nil) past the
	// end of the source and must tolerate a short read only at
	// the end.  It must not add the returned window to the cache.
	create func(position int64) (window.Window, error)
}

func newBase(windowSize int, c cache.Cache) base {
	if c == nil {
		c = cache.NewNone()
	}
	return base{windowSize: windowSize, cache: c}
}

func (b *base) WindowSize() int { return b.windowSize }

// Cache returns the cache attached to this reader.
func (b *base) Cache() cache.Cache { return b.cache }

func (b *base) Window(position int64) (window.Window, error) {
	if b.closed {
		return nil, ErrReaderClosed
	}
	if position < 0 {
		return nil, nil
	}
	aligned := position - position%int64(b.windowSize)
	w := b.cache.Window(aligned)
	if w == nil {
		var err error
		w, err = b.create(aligned)
		if err != nil {
			return nil, err
		}
		if w != nil {
			if err := b.cache.Add(w); err != nil {
				return nil, err
			}
		}
	}
	// A short final window does not cover positions past the end
	// of the source.
	if w != nil && position >= w.Position()+int64(w.Length()) {
		return nil, nil
	}
	return w, nil
}

func (b *base) Byte(position int64) (byte, error) {
	w, err := b.Window(position)
	if err != nil {
		return 0, err
	}
	if w == nil {
		return 0, ErrNoByteAtPosition
	}
	offset := int(position - w.Position())
	if offset >= w.Length() {
		return 0, ErrNoByteAtPosition
	}
	return w.Byte(offset)
}

func (b *base) ReadAt(position int64, dst []byte) (int, error) {
	if b.closed {
		return 0, ErrReaderClosed
	}
	if position < 0 {
		return 0, ErrNoByteAtPosition
	}

	var copied int
	for copied < len(dst) {
		pos := position + int64(copied)
		aligned := pos - pos%int64(b.windowSize)
		offset := int(pos - aligned)

		// The cache may be able to serve bytes without a
		// window being materialized at all.
		if n := b.cache.Read(aligned, offset, dst[copied:]); n > 0 {
			copied += n
			continue
		}

		w, err := b.Window(pos)
		if err != nil {
			return copied, err
		}
		if w == nil || offset >= w.Length() {
			break
		}
		array, err := w.Array()
		if err != nil {
			return copied, err
		}
		copied += copy(dst[copied:], array[offset:w.Length()])
	}

	if copied == 0 && len(dst) > 0 {
		return 0, io.EOF
	}
	return copied, nil
}
