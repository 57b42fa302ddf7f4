// Copyright 2026, the Byteseek contributors.

//go:build !linux

package cache

import "os"

func preallocate(f *os.File, off, n int64) {}
