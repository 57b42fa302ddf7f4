// Copyright 2026, the Byteseek contributors.

package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/byteseek/byteseek/cache"
	"github.com/byteseek/byteseek/window"
)

// StreamReader is a window reader over a forward-only stream.
// Windows are produced in order as positions are requested; a
// request ahead of the high-water mark advances the stream, caching
// every window produced along the way.  Requests behind the
// high-water mark can only be served from the cache, so the attached
// cache must retain whatever the embedder intends to revisit.  The
// default is a cache that retains everything.
type StreamReader struct {
	base
	origin io.Reader

	// streamPos is the high-water mark: the absolute position of
	// the next byte to be read from the origin.
	streamPos int64

	// length is the source length, valid once lengthKnown is set
	// by reaching the end of the stream.
	length      int64
	lengthKnown bool
}

// NewStreamReader returns a windowed reader over origin.  A nil
// cache is replaced by a cache retaining every window.
func NewStreamReader(origin io.Reader, windowSize int, c cache.Cache) (*StreamReader, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size %d not positive", windowSize)
	}
	if c == nil {
		c = cache.NewAll()
	}
	r := &StreamReader{base: newBase(windowSize, c), origin: origin}
	r.create = r.createWindow
	return r, nil
}

// readNext produces the window at the high-water mark, advancing it.
// Returns nil at the end of the stream.
func (r *StreamReader) readNext() (window.Window, error) {
	if r.lengthKnown && r.streamPos >= r.length {
		return nil, nil
	}
	array := make([]byte, r.windowSize)
	n, err := io.ReadFull(r.origin, array)
	if err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, err
		}
		r.length = r.streamPos + int64(n)
		r.lengthKnown = true
	}
	if n == 0 {
		return nil, nil
	}
	w, err := window.NewHardWindow(array, r.streamPos, n)
	if err != nil {
		return nil, err
	}
	r.streamPos += int64(n)
	return w, nil
}

func (r *StreamReader) createWindow(position int64) (window.Window, error) {

	// Behind the high-water mark the cache was the only holder.
	if position < r.streamPos {
		return nil, fmt.Errorf("window at %d: %w", position, ErrWindowDropped)
	}

	// Advance the stream, caching intermediate windows, until the
	// requested window is produced.
	for {
		w, err := r.readNext()
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, nil
		}
		if w.Position() == position {
			// The caller offers the requested window to
			// the cache.
			return w, nil
		}
		if err := r.cache.Add(w); err != nil {
			return nil, err
		}
	}
}

// Length drains the rest of the stream (caching the windows it
// produces) the first time it is called, then returns the cached
// total.
func (r *StreamReader) Length() (int64, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	for !r.lengthKnown {
		w, err := r.readNext()
		if err != nil {
			return 0, err
		}
		if w == nil {
			break
		}
		if err := r.cache.Add(w); err != nil {
			return 0, err
		}
	}
	return r.length, nil
}

// Close releases the origin if it is closeable.  The attached cache
// is left alone.  Close is idempotent.
func (r *StreamReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if c, ok := r.origin.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
