// Copyright 2026, the Byteseek contributors.

//go:build linux

package cache

import (
	"os"

	"golang.org/x/sys/unix"
)

// preallocate reserves space for an append to the temp file.  Best
// effort: filesystems without fallocate support just take the write
// as it comes.
func preallocate(f *os.File, off, n int64) {
	_ = unix.Fallocate(int(f.Fd()), 0, off, n)
}
