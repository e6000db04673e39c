// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordgram anagram finder.

wordgram finds every phrase of dictionary words whose letters, ignoring case,
spaces and punctuation, are a rearrangement of the input.

# Usage

Print every anagram phrase of an input:

	wordgram "dirty room"

Use another word list and only allow one word before the phrase must complete:

	wordgram -dict words.txt -max-words 1 "dirty room"

Run in CLI mode for interactive testing, or as a msgpack IPC server:

	wordgram -c
	wordgram -ipc

# Dictionaries

The dictionary is a newline delimited word list (default /usr/share/dict/words)
or a directory of chunk files dict_0001.bin, dict_0002.bin, ... Chunk files
can be produced from any word list with -export:

	wordgram -dict words.txt -export data/ -chunk 10000

# Configuration

Defaults are read from a TOML file, created on first run:

	[search]
	max_words = -1
	limit = 0
	prune = true
	case_sensitive_exclusion = false
	sort = false

	[dict]
	path = "/usr/share/dict/words"
	max_words = 0
	dedupe = true
	cache_size = 256

	[server]
	max_limit = 1000
	max_input = 64

Flags given on the command line win over the file.

# Search Modes

Without -max-words the eager search runs to completion and every phrase is
printed. With -max-words n (or -lazy) phrases are streamed as they are found,
at most n non-completing words are chosen before a branch is abandoned, and the
search stops once -limit phrases were printed. A final word that completes the
phrase is always accepted, so -max-words 1 can still print two word phrases.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordgram/internal/cli"
	"github.com/bastiangx/wordgram/internal/utils"
	"github.com/bastiangx/wordgram/pkg/anagram"
	"github.com/bastiangx/wordgram/pkg/config"
	"github.com/bastiangx/wordgram/pkg/dictionary"
	"github.com/bastiangx/wordgram/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordgram"
	gh      = "https://github.com/bastiangx/wordgram"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags and config into the dictionary, engine and chosen front end.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml (default: ~/.config/wordgram/config.toml)")
	dictPath := flag.String("dict", defaults.Dict.Path, "Word list file or directory of chunk files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- read inputs line by line")
	ipcMode := flag.Bool("ipc", false, "Run msgpack IPC server on stdin/stdout")
	maxWords := flag.Int("max-words", defaults.Search.MaxWords, "Maximum non-completing words per phrase, -1 for no bound")
	lazy := flag.Bool("lazy", false, "Stream phrases as they are found even without -max-words")
	limit := flag.Int("limit", defaults.Search.Limit, "Stop after this many phrases, 0 for all")
	sortOut := flag.Bool("sort", defaults.Search.Sort, "Sort phrases before printing")
	caseSensitive := flag.Bool("case-sensitive", defaults.Search.CaseSensitiveExclusion, "Only exclude the dictionary word spelled exactly like the input")
	noPrune := flag.Bool("no-prune", !defaults.Search.Prune, "Disable dictionary pruning (DBG only)")
	noDedupe := flag.Bool("no-dedupe", !defaults.Dict.Dedupe, "Keep repeated dictionary words")
	wordLimit := flag.Int("words", defaults.Dict.MaxWords, "Maximum number of dictionary words to load, 0 for all")
	exportDir := flag.String("export", "", "Write the loaded dictionary as chunk files into this directory and exit")
	chunkSize := flag.Int("chunk", 10000, "Words per chunk file for -export")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(activePath))

	// explicit flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			appConfig.Dict.Path = *dictPath
		case "max-words":
			appConfig.Search.MaxWords = *maxWords
		case "limit":
			appConfig.Search.Limit = *limit
		case "sort":
			appConfig.Search.Sort = *sortOut
		case "case-sensitive":
			appConfig.Search.CaseSensitiveExclusion = *caseSensitive
		case "no-prune":
			appConfig.Search.Prune = !*noPrune
		case "no-dedupe":
			appConfig.Dict.Dedupe = !*noDedupe
		case "words":
			appConfig.Dict.MaxWords = *wordLimit
		}
	})

	resolvedDict := appConfig.Dict.Path
	if pathResolver, err := utils.NewPathResolver(); err == nil {
		resolvedDict = pathResolver.GetDictPath(appConfig.Dict.Path)
	} else {
		log.Warnf("Failed to initialize path resolver: %v", err)
	}

	words, err := dictionary.Load(resolvedDict, dictionary.LoadOptions{
		MaxWords: appConfig.Dict.MaxWords,
		Dedupe:   appConfig.Dict.Dedupe,
	})
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Loaded %s words from %s", utils.FormatWithCommas(len(words)), resolvedDict)

	if *exportDir != "" {
		n, err := dictionary.WriteChunks(*exportDir, words, *chunkSize)
		if err != nil {
			log.Fatalf("Failed to export chunks: %v", err)
		}
		log.Infof("Wrote %d chunk files to %s", n, *exportDir)
		return
	}

	engine := anagram.NewEngine(words, anagram.Options{
		Prune:                  appConfig.Search.Prune,
		CaseSensitiveExclusion: appConfig.Search.CaseSensitiveExclusion,
		CacheSize:              appConfig.Dict.CacheSize,
	})

	if *ipcMode {
		log.Debug("spawning IPC")
		srv := server.NewServer(engine, appConfig)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	// CLI is mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"maxWords", appConfig.Search.MaxWords,
			"limit", appConfig.Search.Limit,
			"sort", appConfig.Search.Sort)

		inputHandler := cli.NewInputHandler(engine, appConfig.Search.MaxWords, appConfig.Search.Limit, appConfig.Search.Sort)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <input>\n", AppName)
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err := runOnce(engine, flag.Arg(0), appConfig.Search, *lazy); err != nil {
		log.Fatalf("Failed to write phrases: %v", err)
	}
}

// runOnce searches a single input and prints its phrases to stdout.
func runOnce(engine *anagram.Engine, input string, search config.SearchConfig, lazy bool) error {
	if !utils.IsValidInput(input) {
		log.Warnf("No letters in input: '%s'", input)
		return nil
	}

	if lazy || search.MaxWords >= 0 {
		var phrases []anagram.Phrase
		count := 0
		for p := range engine.Stream(input, search.MaxWords) {
			if search.Limit > 0 && count == search.Limit {
				break
			}
			count++
			if search.Sort {
				phrases = append(phrases, p)
				continue
			}
			if err := anagram.WritePhrases(os.Stdout, []anagram.Phrase{p}); err != nil {
				return err
			}
		}
		if search.Sort {
			anagram.SortPhrases(phrases)
			return anagram.WritePhrases(os.Stdout, phrases)
		}
		return nil
	}

	phrases := engine.Find(input)
	if search.Sort {
		anagram.SortPhrases(phrases)
	}
	if search.Limit > 0 && len(phrases) > search.Limit {
		phrases = phrases[:search.Limit]
	}
	return anagram.WritePhrases(os.Stdout, phrases)
}

// printVersion shows a short styled banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordgram ] every phrase hiding in your letters")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
