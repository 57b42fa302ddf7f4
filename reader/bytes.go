// Copyright 2026, the Byteseek contributors.

package reader

import (
	"fmt"

	"github.com/byteseek/byteseek/cache"
	"github.com/byteseek/byteseek/window"
)

// BytesReader is a window reader over an in-memory byte slice.
// Windows are slices of the original data, so no copying happens.
// The data must not be mutated while the reader is in use.
type BytesReader struct {
	base
	data []byte
}

// NewBytesReader returns a reader over data with the given window
// size.  A nil cache is replaced by a no-op cache; slicing windows
// out of memory is cheap enough that caching buys nothing.
func NewBytesReader(data []byte, windowSize int, c cache.Cache) (*BytesReader, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size %d not positive", windowSize)
	}
	r := &BytesReader{base: newBase(windowSize, c), data: data}
	r.create = r.createWindow
	return r, nil
}

func (r *BytesReader) createWindow(position int64) (window.Window, error) {
	if position >= int64(len(r.data)) {
		return nil, nil
	}
	end := position + int64(r.windowSize)
	if end > int64(len(r.data)) {
		end = int64(len(r.data))
	}
	return window.NewHardWindow(r.data[position:end], position, int(end-position))
}

func (r *BytesReader) Length() (int64, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	return int64(len(r.data)), nil
}

// Close marks the reader closed.  There is no origin handle to
// release.
func (r *BytesReader) Close() error {
	r.closed = true
	return nil
}
