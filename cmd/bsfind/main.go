// Copyright 2026, the Byteseek contributors.

// bsfind searches for byte patterns in files of any size.  Patterns
// are hex literals ("DEADBEEF") or quoted ASCII ('MZ'); inputs are
// plain files, or snappy framed streams when the file name ends in
// .sz.  Matching runs through a windowed reader, so inputs much
// larger than memory are fine.
//
// bsfind can be invoked either using a configuration file in TOML
// format, or using command-line flags.  A typical invocation using
// flags is:
//
// bsfind --Pattern='MZ' --InputFileName=image.bin --WindowSize=4096 --CacheStrategy=lru --CacheCapacity=32
//
// To use a TOML config file, create a file with the flag information
// in TOML format and provide its path when invoking bsfind, e.g.
//
// bsfind --ConfigFileName=config.toml
//
// Match offsets are written to standard output, one per line, with
// the pattern literal in the first column.  Log files are placed
// into bsfind_logs/###### in the local directory, where the number
// is a generated unique id.

package main

import (
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/pkg/profile"
	flag "github.com/spf13/pflag"

	"github.com/byteseek/byteseek/cache"
	"github.com/byteseek/byteseek/matcher"
	"github.com/byteseek/byteseek/reader"
	"github.com/byteseek/byteseek/searcher"
	"github.com/byteseek/byteseek/utils"
)

var (
	config *utils.Config

	logger *log.Logger
)

func handleArgs() {

	ConfigFileName := flag.String("ConfigFileName", "", "TOML file containing configuration parameters")
	InputFileName := flag.String("InputFileName", "", "File to search (.sz files are snappy framed)")
	Pattern := flag.String("Pattern", "", "Pattern literal: hex or quoted ASCII")
	PatternFileName := flag.String("PatternFileName", "", "File with one pattern literal per line")
	WindowSize := flag.Int("WindowSize", 0, "Window size of the reader in bytes")
	CacheStrategy := flag.String("CacheStrategy", "", "Cache strategy: all, lru, mru, lfu, two-level, temp-file or none")
	CacheCapacity := flag.Int("CacheCapacity", 0, "Windows held by bounded cache strategies")
	SecondaryCapacity := flag.Int("SecondaryCapacity", 0, "Secondary cache capacity for two-level")
	TempDir := flag.String("TempDir", "", "Workspace for temporary spill files")
	LogDir := flag.String("LogDir", "", "Directory for log files")
	Algorithm := flag.String("Algorithm", "", "Search algorithm: horspool, shift-or, signed-hash2, signed-hash3, qgram-filter or matcher")
	First := flag.Bool("First", false, "Report only the first match of each pattern")
	CPUProfile := flag.Bool("CPUProfile", false, "Capture CPU profile data")

	flag.Parse()

	if *ConfigFileName != "" {
		var err error
		config, err = utils.ReadConfig(*ConfigFileName)
		if err != nil {
			os.Stderr.WriteString(fmt.Sprintf("Cannot read config file: %v\n", err))
			os.Exit(1)
		}
	} else {
		config = new(utils.Config)
	}

	if *InputFileName != "" {
		config.InputFileName = *InputFileName
	}
	if *Pattern != "" {
		config.Pattern = *Pattern
	}
	if *PatternFileName != "" {
		config.PatternFileName = *PatternFileName
	}
	if *WindowSize != 0 {
		config.WindowSize = *WindowSize
	}
	if *CacheStrategy != "" {
		config.CacheStrategy = *CacheStrategy
	}
	if *CacheCapacity != 0 {
		config.CacheCapacity = *CacheCapacity
	}
	if *SecondaryCapacity != 0 {
		config.SecondaryCapacity = *SecondaryCapacity
	}
	if *TempDir != "" {
		config.TempDir = *TempDir
	}
	if *LogDir != "" {
		config.LogDir = *LogDir
	}
	if *Algorithm != "" {
		config.Algorithm = *Algorithm
	}
	if *First {
		config.First = true
	}
	if *CPUProfile {
		config.CPUProfile = true
	}
}

func checkArgs() {

	if config.InputFileName == "" {
		os.Stderr.WriteString("\nInputFileName not provided, run 'bsfind --help' for more information.\n\n")
		os.Exit(1)
	}
	if config.Pattern == "" && config.PatternFileName == "" {
		os.Stderr.WriteString("\nNo pattern provided, run 'bsfind --help' for more information.\n\n")
		os.Exit(1)
	}
	if config.WindowSize == 0 {
		config.WindowSize = 4096
	}
	if config.CacheStrategy == "" {
		config.CacheStrategy = "lru"
	}
	if config.CacheCapacity == 0 {
		config.CacheCapacity = 32
	}
	if config.SecondaryCapacity == 0 {
		config.SecondaryCapacity = 4 * config.CacheCapacity
	}
	if config.Algorithm == "" {
		os.Stderr.WriteString("Algorithm not provided, defaulting to signed-hash2\n")
		config.Algorithm = "signed-hash2"
	}
}

// Create the directory for log files.
func makeLogDir() {

	xuid, err := uuid.NewUUID()
	if err != nil {
		os.Stderr.WriteString("Error in makeLogDir, see log files for details.\n")
		log.Fatal(err)
	}
	uid := xuid.String()

	if config.LogDir == "" {
		config.LogDir = "bsfind_logs"
	}
	config.LogDir = path.Join(config.LogDir, uid)

	err = os.MkdirAll(config.LogDir, os.ModePerm)
	if err != nil {
		panic(err)
	}
}

func setupLog() {
	logname := path.Join(config.LogDir, "bsfind.log")
	fid, err := os.Create(logname)
	if err != nil {
		panic(err)
	}
	logger = log.New(fid, "", log.Ltime)
}

func buildCache() cache.Cache {

	var c cache.Cache
	var err error
	switch config.CacheStrategy {
	case "none":
		c = cache.NewNone()
	case "all":
		c = cache.NewAll()
	case "lru":
		c, err = cache.NewLeastRecent(config.CacheCapacity)
	case "mru":
		c, err = cache.NewMostRecent(config.CacheCapacity)
	case "lfu":
		c, err = cache.NewLeastUsed(config.CacheCapacity)
	case "two-level":
		var primary, secondary cache.Cache
		primary, err = cache.NewLeastRecent(config.CacheCapacity)
		if err == nil {
			secondary, err = cache.NewLeastRecent(config.SecondaryCapacity)
		}
		if err == nil {
			c = cache.NewTwoLevel(primary, secondary)
		}
	case "temp-file":
		var memory, spill cache.Cache
		memory, err = cache.NewLeastRecent(config.CacheCapacity)
		if err == nil {
			spill, err = cache.NewTempFile(config.WindowSize, config.TempDir)
		}
		if err == nil {
			c = cache.NewWriteAround(memory, spill)
		}
	default:
		os.Stderr.WriteString(fmt.Sprintf("Unknown cache strategy %q\n", config.CacheStrategy))
		os.Exit(1)
	}
	if err != nil {
		logger.Print(err)
		log.Fatal(err)
	}
	return c
}

func openReader(c cache.Cache) reader.WindowReader {

	if strings.HasSuffix(config.InputFileName, ".sz") {
		fid, err := os.Open(config.InputFileName)
		if err != nil {
			logger.Print(err)
			log.Fatal(err)
		}
		rdr, err := reader.NewStreamReader(snappy.NewReader(fid), config.WindowSize, c)
		if err != nil {
			logger.Print(err)
			log.Fatal(err)
		}
		return rdr
	}

	rdr, err := reader.NewFileReader(config.InputFileName, config.WindowSize, c)
	if err != nil {
		logger.Print(err)
		log.Fatal(err)
	}
	return rdr
}

func buildSearcher(seq matcher.SequenceMatcher) searcher.Searcher {

	switch config.Algorithm {
	case "matcher":
		return searcher.NewMatcherSearcher(seq)
	case "shift-or":
		return searcher.NewShiftOr(seq)
	case "horspool":
		return searcher.NewHorspool(seq)
	case "signed-hash2":
		return searcher.NewSignedHash2(seq)
	case "signed-hash3":
		return searcher.NewSignedHash3(seq)
	case "qgram-filter":
		return searcher.NewQgramFilter(seq)
	}
	os.Stderr.WriteString(fmt.Sprintf("Unknown algorithm %q\n", config.Algorithm))
	os.Exit(1)
	return nil
}

// searchOne reports every match position of one pattern literal.
func searchOne(rdr reader.WindowReader, literal string, pattern []byte) {

	seq, err := matcher.Sequence(pattern)
	if err != nil {
		logger.Print(err)
		log.Fatal(err)
	}
	s := buildSearcher(seq)
	s.PrepareForwards()

	length, err := rdr.Length()
	if err != nil {
		logger.Print(err)
		log.Fatal(err)
	}

	nfound := 0
	from := int64(0)
	for {
		k, err := s.SearchReaderForwards(rdr, from, length-1)
		if err != nil {
			logger.Print(err)
			log.Fatal(err)
		}
		if k < 0 {
			break
		}
		fmt.Printf("%s\t%d\n", literal, k)
		nfound++
		if config.First {
			break
		}
		from = k + 1
	}

	logger.Printf("Pattern %s: %d matches", literal, nfound)
}

func main() {

	handleArgs()
	checkArgs()
	makeLogDir()
	setupLog()

	if config.CPUProfile {
		p := profile.Start(profile.ProfilePath(config.LogDir))
		defer p.Stop()
	}

	c := buildCache()
	rdr := openReader(c)
	defer rdr.Close()
	defer func() {
		if err := c.Clear(); err != nil {
			logger.Print(err)
		}
	}()

	logger.Printf("Searching %s...", config.InputFileName)

	if config.PatternFileName != "" {
		ps, err := utils.NewPatternScanner(config.PatternFileName)
		if err != nil {
			logger.Print(err)
			log.Fatal(err)
		}
		defer ps.Close()
		for {
			ok, err := ps.Next()
			if err != nil {
				logger.Print(err)
				log.Fatal(err)
			}
			if !ok {
				break
			}
			searchOne(rdr, ps.Literal, ps.Bytes)
		}
	} else {
		pattern, err := utils.ParsePattern(config.Pattern)
		if err != nil {
			os.Stderr.WriteString(fmt.Sprintf("%v\n", err))
			os.Exit(1)
		}
		searchOne(rdr, config.Pattern, pattern)
	}

	logger.Printf("Done")
}
