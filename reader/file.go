// Copyright 2026, the Byteseek contributors.

package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/byteseek/byteseek/cache"
	"github.com/byteseek/byteseek/window"
)

// FileReader is a window reader over a file, using positioned reads
// so no seek state is shared between windows.
type FileReader struct {
	base
	file   *os.File
	length int64
}

// NewFileReader opens the named file for windowed reading.
func NewFileReader(fname string, windowSize int, c cache.Cache) (*FileReader, error) {
	fid, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	r, err := NewFileReaderFrom(fid, windowSize, c)
	if err != nil {
		fid.Close()
		return nil, err
	}
	return r, nil
}

// NewFileReaderFrom wraps an already-open file.  The reader takes
// over the handle; Close closes it.
func NewFileReaderFrom(fid *os.File, windowSize int, c cache.Cache) (*FileReader, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size %d not positive", windowSize)
	}
	info, err := fid.Stat()
	if err != nil {
		return nil, err
	}
	r := &FileReader{base: newBase(windowSize, c), file: fid, length: info.Size()}
	r.create = r.createWindow
	return r, nil
}

func (r *FileReader) createWindow(position int64) (window.Window, error) {
	if position >= r.length {
		return nil, nil
	}
	array := make([]byte, r.windowSize)
	n, err := r.file.ReadAt(array, position)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return window.NewHardWindow(array, position, n)
}

func (r *FileReader) Length() (int64, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	return r.length, nil
}

// Close releases the file handle.  The attached cache is left alone;
// caches may be shared between readers and have their own lifecycle.
// Close is idempotent.
func (r *FileReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}
