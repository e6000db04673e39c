// Package cli handles cmd line input for interactive anagram searches, useful for testing and debugging
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordgram/internal/utils"
	"github.com/bastiangx/wordgram/pkg/anagram"
	"github.com/charmbracelet/log"
)

// InputHandler reads one input per line and prints the phrases found for it.
type InputHandler struct {
	searcher     anagram.ISearcher
	maxWords     int
	limit        int
	sortResults  bool
	requestCount int
}

// NewInputHandler creates a handler. maxWords < 0 runs the eager search,
// otherwise the lazy search bounded by maxWords. limit <= 0 prints everything.
func NewInputHandler(searcher anagram.ISearcher, maxWords, limit int, sortResults bool) *InputHandler {
	return &InputHandler{
		searcher:    searcher,
		maxWords:    maxWords,
		limit:       limit,
		sortResults: sortResults,
	}
}

// Start runs the loop on stdin/stdout until stdin closes.
func (h *InputHandler) Start() error {
	log.Print("wordgram CLI")
	log.Print("type a word or phrase and press Enter to see its anagrams (Ctrl+C to exit):")
	return h.Run(os.Stdin, os.Stdout)
}

// Run reads inputs from r and writes phrases to w. EOF ends the loop without error.
func (h *InputHandler) Run(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		input := strings.TrimSpace(line)
		if input != "" {
			if herr := h.handleInput(input, w); herr != nil {
				return herr
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// handleInput searches one input and writes its phrases, one per line.
func (h *InputHandler) handleInput(input string, w io.Writer) error {
	h.requestCount++

	if !utils.IsValidInput(input) {
		log.Warnf("No letters in input: '%s'", input)
		return nil
	}

	start := time.Now()
	var phrases []anagram.Phrase
	truncated := false
	if h.maxWords >= 0 {
		phrases, truncated = anagram.Collect(h.searcher.Stream(input, h.maxWords), h.limit)
	} else {
		phrases = h.searcher.Find(input)
		if h.limit > 0 && len(phrases) > h.limit {
			truncated = true
		}
	}
	if h.sortResults {
		anagram.SortPhrases(phrases)
	}
	if h.limit > 0 && len(phrases) > h.limit {
		phrases = phrases[:h.limit]
	}
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for '%s' (request #%d)", elapsed, input, h.requestCount)

	if len(phrases) == 0 {
		log.Warnf("No anagrams found for: '%s'", input)
		return nil
	}

	if err := anagram.WritePhrases(w, phrases); err != nil {
		return fmt.Errorf("writing phrases: %w", err)
	}
	if truncated {
		log.Infof("Showing the first %s phrases for '%s'", utils.FormatWithCommas(len(phrases)), input)
	} else {
		log.Debugf("Found %s phrases for '%s'", utils.FormatWithCommas(len(phrases)), input)
	}
	return nil
}
