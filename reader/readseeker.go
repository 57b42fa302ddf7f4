// Copyright 2026, the Byteseek contributors.

package reader

import (
	"errors"
	"fmt"
	"io"
)

// ErrClosed is returned by adapter operations after the adapter has
// been closed.
var ErrClosed = errors.New("adapter is closed")

// ReadSeeker adapts a window reader to io.ReadSeeker and io.ReaderAt.
// The view is read-only; there are no write or truncate operations.
// It is not safe for concurrent use.
type ReadSeeker struct {
	r      WindowReader
	pos    int64
	closed bool
}

// NewReadSeeker returns a seekable read-only view of r.  Closing the
// view does not close the reader.
func NewReadSeeker(r WindowReader) *ReadSeeker {
	return &ReadSeeker{r: r}
}

func (s *ReadSeeker) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n, err := s.r.ReadAt(s.pos, p)
	s.pos += int64(n)
	return n, err
}

// ReadAt implements io.ReaderAt.  It does not move the seek
// position.
func (s *ReadSeeker) ReadAt(p []byte, off int64) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, fmt.Errorf("negative read position %d", off)
	}
	n, err := s.r.ReadAt(off, p)
	if err == nil && n < len(p) {
		err = io.EOF
	}
	return n, err
}

func (s *ReadSeeker) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = s.pos + offset
	case io.SeekEnd:
		length, err := s.r.Length()
		if err != nil {
			return 0, err
		}
		pos = length + offset
	default:
		return 0, fmt.Errorf("invalid seek whence %d", whence)
	}

	if pos < 0 {
		return 0, fmt.Errorf("negative seek position %d", pos)
	}
	s.pos = pos
	return pos, nil
}

// Size returns the length of the underlying source.
func (s *ReadSeeker) Size() (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.r.Length()
}

// Close marks the view closed.  The underlying reader stays open;
// its lifecycle belongs to whoever created it.
func (s *ReadSeeker) Close() error {
	s.closed = true
	return nil
}
