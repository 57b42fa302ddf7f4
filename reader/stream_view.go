// Copyright 2026, the Byteseek contributors.

package reader

import (
	"errors"
	"io"
)

// ErrResetWithoutMark is returned by Stream.Reset when no mark has
// been set or mark support is disabled.
var ErrResetWithoutMark = errors.New("reset without mark")

// Stream adapts a window reader to a forward io.Reader view with
// optional mark/reset.  Because the reader retains windows in its
// cache, marking needs no read-ahead buffer: Reset simply moves the
// view back to the marked position.  Not safe for concurrent use.
type Stream struct {
	r             WindowReader
	pos           int64
	markPos       int64
	marked        bool
	markSupported bool
	closeReader   bool
	closed        bool
}

// NewStream returns a forward stream view of r with mark/reset
// enabled.  If closeReader is set, closing the stream also closes
// the reader.
func NewStream(r WindowReader, closeReader bool) *Stream {
	return &Stream{r: r, markSupported: true, closeReader: closeReader}
}

// NewStreamNoMark returns a stream view with mark/reset disabled.
func NewStreamNoMark(r WindowReader, closeReader bool) *Stream {
	s := NewStream(r, closeReader)
	s.markSupported = false
	return s
}

func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n, err := s.r.ReadAt(s.pos, p)
	s.pos += int64(n)
	return n, err
}

func (s *Stream) ReadByte() (byte, error) {
	if s.closed {
		return 0, ErrClosed
	}
	b, err := s.r.Byte(s.pos)
	if err != nil {
		if errors.Is(err, ErrNoByteAtPosition) {
			return 0, io.EOF
		}
		return 0, err
	}
	s.pos++
	return b, nil
}

// Skip advances the view by up to n bytes, returning how far it
// moved.  Negative counts skip nothing; skipping past the end stops
// at the end.
func (s *Stream) Skip(n int64) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if n <= 0 {
		return 0, nil
	}
	length, err := s.r.Length()
	if err != nil {
		return 0, err
	}
	remaining := length - s.pos
	if remaining < 0 {
		remaining = 0
	}
	if n > remaining {
		n = remaining
	}
	s.pos += n
	return n, nil
}

// Available returns how many bytes remain before the end of the
// source.
func (s *Stream) Available() (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	length, err := s.r.Length()
	if err != nil {
		return 0, err
	}
	remaining := length - s.pos
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// MarkSupported reports whether Mark and Reset work on this view.
func (s *Stream) MarkSupported() bool { return s.markSupported }

// Mark records the current position for a later Reset.  The
// readlimit is ignored: the reader's cache already retains windows,
// so there is no read-ahead buffer to size.
func (s *Stream) Mark(readlimit int) {
	if !s.markSupported {
		return
	}
	s.markPos = s.pos
	s.marked = true
}

// Reset moves the view back to the marked position.
func (s *Stream) Reset() error {
	if s.closed {
		return ErrClosed
	}
	if !s.markSupported || !s.marked {
		return ErrResetWithoutMark
	}
	s.pos = s.markPos
	return nil
}

// Close marks the view closed, and closes the underlying reader when
// the view was created with closeReader set.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.closeReader {
		return s.r.Close()
	}
	return nil
}
