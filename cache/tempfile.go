// Copyright 2026, the Byteseek contributors.

package cache

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/google/uuid"

	"github.com/byteseek/byteseek/window"
)

var (
	// ErrNonSequentialWindow is returned by TempFile.Add when the
	// offered window does not directly follow the bytes already
	// written.
	ErrNonSequentialWindow = errors.New("non-sequential window added to temp file cache")

	// ErrTempFileMissing is returned when a soft window tries to
	// recover its bytes after the cache's temp file has been
	// cleared away.
	ErrTempFileMissing = errors.New("cache temp file does not exist")
)

// A NotDeletedError reports that Clear could not remove the temp
// file.  It carries the path left behind and any error from closing
// the file beforehand.
type NotDeletedError struct {
	Path      string
	RemoveErr error
	CloseErr  error
}

func (e *NotDeletedError) Error() string {
	if e.CloseErr != nil {
		return fmt.Sprintf("temp file %s not deleted: %v (close error: %v)",
			e.Path, e.RemoveErr, e.CloseErr)
	}
	return fmt.Sprintf("temp file %s not deleted: %v", e.Path, e.RemoveErr)
}

func (e *NotDeletedError) Unwrap() error { return e.RemoveErr }

// TempFile spills windows to a write-once log on disk.  Windows must
// be added in strictly increasing position order with no gaps; a
// window at absolute position p lives at file offset p - startOffset.
// Lookups return soft windows whose bytes are read from the file on
// demand, so a reclaimed window costs one file read to restore.
//
// The file is created lazily in dir (the system temp directory when
// dir is empty) on the first add, with a unique name, and removed by
// Clear.  After Clear the cache accepts a fresh add sequence into a
// new file; windows handed out before Clear can no longer recover
// their bytes.
type TempFile struct {
	notifier
	windowSize  int
	dir         string
	file        *os.File
	path        string
	startOffset int64
	length      int64
}

// NewTempFile returns a temp-file cache for windows of the given
// size.
func NewTempFile(windowSize int, dir string) (*TempFile, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size %d not positive", windowSize)
	}
	return &TempFile{windowSize: windowSize, dir: dir}, nil
}

// Path returns the temp file path, or "" before the first add.
func (c *TempFile) Path() string { return c.path }

func (c *TempFile) create(startOffset int64) error {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	name := path.Join(dir, "byteseek_"+uuid.NewString()+".tmp")
	fid, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	c.file = fid
	c.path = name
	c.startOffset = startOffset
	c.length = 0
	return nil
}

func (c *TempFile) Add(w window.Window) error {

	array, err := w.Array()
	if err != nil {
		return err
	}
	n := w.Length()

	if c.file == nil {
		if err := c.create(w.Position()); err != nil {
			return err
		}
	} else if w.Position() != c.startOffset+c.length {
		return fmt.Errorf("window at %d does not follow %d: %w",
			w.Position(), c.startOffset+c.length, ErrNonSequentialWindow)
	}

	off := w.Position() - c.startOffset
	preallocate(c.file, off, int64(n))
	if _, err := c.file.WriteAt(array[:n], off); err != nil {
		return err
	}
	c.length += int64(n)
	return nil
}

func (c *TempFile) Window(position int64) window.Window {
	if c.file == nil || position < c.startOffset || position >= c.startOffset+c.length {
		return nil
	}
	length := c.startOffset + c.length - position
	if length > int64(c.windowSize) {
		length = int64(c.windowSize)
	}
	w, err := window.NewSoftWindow(nil, position, int(length), c.recoverWindow)
	if err != nil {
		return nil
	}
	return w
}

// recoverWindow re-reads window bytes from the temp file; it backs
// the soft windows handed out by Window.
func (c *TempFile) recoverWindow(position int64, length int) ([]byte, error) {
	if c.file == nil {
		return nil, ErrTempFileMissing
	}
	array := make([]byte, length)
	if _, err := c.file.ReadAt(array, position-c.startOffset); err != nil {
		return nil, err
	}
	return array, nil
}

// Read copies bytes straight out of the temp file, with no window
// materialized at all.
func (c *TempFile) Read(windowPos int64, offset int, dst []byte) int {
	if c.file == nil || offset < 0 {
		return 0
	}
	if windowPos < c.startOffset || windowPos >= c.startOffset+c.length {
		return 0
	}
	end := windowPos + int64(c.windowSize)
	if last := c.startOffset + c.length; end > last {
		end = last
	}
	from := windowPos + int64(offset)
	if from >= end {
		return 0
	}
	n := int64(len(dst))
	if n > end-from {
		n = end - from
	}
	read, err := c.file.ReadAt(dst[:n], from-c.startOffset)
	if err != nil {
		return 0
	}
	return read
}

// Clear closes and removes the temp file.  The remove is attempted
// even when the close fails; a failed remove is reported as a
// NotDeletedError that also records the close error.
func (c *TempFile) Clear() error {
	if c.file == nil {
		return nil
	}
	closeErr := c.file.Close()
	removeErr := os.Remove(c.path)
	c.file = nil
	c.length = 0
	if removeErr != nil {
		return &NotDeletedError{Path: c.path, RemoveErr: removeErr, CloseErr: closeErr}
	}
	return closeErr
}
