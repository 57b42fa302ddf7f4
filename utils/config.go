// Copyright 2026, the Byteseek contributors.

package utils

import (
	"github.com/BurntSushi/toml"
)

type Config struct {

	// The name of the file to search.  Files ending in .sz are
	// treated as snappy framed streams and are searched through a
	// stream-backed reader.
	InputFileName string

	// A single pattern literal, either hex (e.g. "DEADBEEF") or
	// quoted ASCII (e.g. 'MZ').
	Pattern string

	// The name of a file containing one pattern literal per line.
	// Used instead of Pattern when set.
	PatternFileName string

	// The window size of the reader, in bytes.  Must be positive.
	// Defaults to 4096.
	WindowSize int

	// The caching strategy attached to the reader.  One of "all",
	// "lru", "mru", "lfu", "two-level", "temp-file" or "none".
	CacheStrategy string

	// The number of windows held by bounded cache strategies.
	CacheCapacity int

	// The capacity of the secondary cache when CacheStrategy is
	// "two-level".
	SecondaryCapacity int

	// Use this location to place temporary spill files.  If blank,
	// the system temporary directory is used.
	TempDir string

	// The directory where log files are written.  By default the
	// logs are placed into bsfind_logs/###### in the local
	// directory, where the number is a generated unique id.
	LogDir string

	// The search algorithm.  One of "horspool", "shift-or",
	// "signed-hash2", "signed-hash3", "qgram-filter" or "matcher".
	// Algorithms that cannot serve a pattern fall back internally.
	Algorithm string

	// Report only the first match of each pattern, rather than
	// every match.
	First bool

	// If true, capture CPU profile data for the run.
	CPUProfile bool
}

// ReadConfig decodes a TOML configuration file.
func ReadConfig(filename string) (*Config, error) {
	config := new(Config)
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, err
	}
	return config, nil
}
