// Copyright 2026, the Byteseek contributors.

package reader

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReadSeeker(t *testing.T) {
	t.Parallel()

	data := testData(500)
	r, err := NewBytesReader(data, 64, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	s := NewReadSeeker(r)

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("sequential read mismatch")
	}

	// Seek and re-read.
	pos, err := s.Seek(100, io.SeekStart)
	if err != nil || pos != 100 {
		t.Fatalf("seek: %d %v", pos, err)
	}
	buf := make([]byte, 10)
	if _, err := io.ReadFull(s, buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, data[100:110]) {
		t.Error("read after seek mismatch")
	}

	pos, err = s.Seek(-10, io.SeekEnd)
	if err != nil || pos != 490 {
		t.Fatalf("seek from end: %d %v", pos, err)
	}

	if _, err := s.Seek(-1, io.SeekStart); err == nil {
		t.Error("negative seek accepted")
	}

	size, err := s.Size()
	if err != nil || size != 500 {
		t.Fatalf("size %d %v", size, err)
	}

	// ReadAt ignores the seek position and reports EOF on short
	// reads.
	if _, err := s.ReadAt(buf, 495); !errors.Is(err, io.EOF) {
		t.Errorf("short ReadAt: %v", err)
	}

	// Closing the view does not close the reader.
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Read(buf); !errors.Is(err, ErrClosed) {
		t.Errorf("read after close: %v", err)
	}
	if _, err := r.Byte(0); err != nil {
		t.Errorf("reader closed by adapter close: %v", err)
	}
}

func TestStreamMarkReset(t *testing.T) {
	t.Parallel()

	data := testData(1024)
	for _, ws := range []int{32, 127, 512, 1024, 4096} {
		r, err := NewBytesReader(data, ws, nil)
		if err != nil {
			t.Fatal(err)
		}

		s := NewStream(r, false)

		// Read some, mark, skip, reset: the next read starts
		// at the marked position whatever the window size.
		buf := make([]byte, 100)
		if _, err := io.ReadFull(s, buf); err != nil {
			t.Fatal(err)
		}

		s.Mark(10) // the readlimit is ignored
		skipped, err := s.Skip(500)
		if err != nil || skipped != 500 {
			t.Fatalf("skip: %d %v", skipped, err)
		}
		if err := s.Reset(); err != nil {
			t.Fatal(err)
		}
		if _, err := io.ReadFull(s, buf); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(buf, data[100:200]) {
			t.Errorf("window size %d: read after reset not at mark", ws)
		}
		r.Close()
	}
}

func TestStreamSkipAndAvailable(t *testing.T) {
	t.Parallel()

	data := testData(100)
	r, err := NewBytesReader(data, 16, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	s := NewStream(r, false)

	if n, _ := s.Skip(-5); n != 0 {
		t.Errorf("negative skip moved %d", n)
	}

	avail, err := s.Available()
	if err != nil || avail != 100 {
		t.Fatalf("available %d %v", avail, err)
	}

	// Skipping past the end stops at the end.
	n, err := s.Skip(1000)
	if err != nil || n != 100 {
		t.Fatalf("skip past end: %d %v", n, err)
	}
	if avail, _ := s.Available(); avail != 0 {
		t.Errorf("available %d at end", avail)
	}
	if _, err := s.Read(make([]byte, 1)); !errors.Is(err, io.EOF) {
		t.Errorf("read at end: %v", err)
	}
}

func TestStreamResetWithoutMark(t *testing.T) {
	t.Parallel()

	data := testData(10)
	r, err := NewBytesReader(data, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	s := NewStream(r, false)
	if err := s.Reset(); !errors.Is(err, ErrResetWithoutMark) {
		t.Errorf("reset without mark: %v", err)
	}

	nm := NewStreamNoMark(r, false)
	if nm.MarkSupported() {
		t.Error("mark supported on no-mark stream")
	}
	nm.Mark(0)
	if err := nm.Reset(); !errors.Is(err, ErrResetWithoutMark) {
		t.Errorf("reset with mark disabled: %v", err)
	}
}

func TestStreamReadByteAndCloseReader(t *testing.T) {
	t.Parallel()

	data := []byte("AB")
	r, err := NewBytesReader(data, 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	s := NewStream(r, true)
	for i := range data {
		b, err := s.ReadByte()
		if err != nil {
			t.Fatal(err)
		}
		if b != data[i] {
			t.Errorf("byte %d: %q", i, b)
		}
	}
	if _, err := s.ReadByte(); !errors.Is(err, io.EOF) {
		t.Errorf("read byte at end: %v", err)
	}

	// closeReader was set, so closing the view closes the reader.
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Byte(0); !errors.Is(err, ErrReaderClosed) {
		t.Errorf("reader should be closed: %v", err)
	}
}
