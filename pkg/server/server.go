package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordgram/internal/logger"
	"github.com/bastiangx/wordgram/pkg/anagram"
	"github.com/bastiangx/wordgram/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// statsEvery is how many requests pass between debug stats lines.
const statsEvery = 100

// Server handles the IPC for anagram searches
type Server struct {
	searcher     anagram.ISearcher
	config       *config.Config
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(searcher anagram.ISearcher, cfg *config.Config) *Server {
	return NewServerWithIO(searcher, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w
func NewServerWithIO(searcher anagram.ISearcher, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		searcher: searcher,
		config:   cfg,
		decoder:  msgpack.NewDecoder(bufio.NewReader(r)),
		writer:   bw,
		encoder:  msgpack.NewEncoder(bw),
		logger:   logger.New("ipc"),
	}
}

// Start processes requests until the input ends.
// A clean EOF between messages returns nil.
func (s *Server) Start() error {
	s.logger.Debug("Starting server", "words", s.searcher.Len())

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping server")
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return err
		}

		var request Request
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.logger.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "invalid request", 400)
			continue
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request
func (s *Server) handleRequest(request Request) {
	s.requestCount++
	if s.requestCount%statsEvery == 0 {
		s.logger.Debug("Server stats", "requests", s.requestCount, "engine", s.searcher.Stats())
	}

	switch request.Action {
	case "", ActionAnagram:
		s.handleAnagram(request)
	case ActionInfo:
		info := InfoResponse{
			ID:     request.ID,
			Status: "ok",
			Words:  s.searcher.Len(),
			Stats:  s.searcher.Stats(),
		}
		if request.Input != "" {
			info.Variants = s.searcher.CachedVariants(request.Input)
		}
		s.sendResponse(info)
	case ActionHealth:
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("unknown action: %s", request.Action), 400)
	}
}

// handleAnagram validates a request, runs the search and sends the phrases.
// Without a word bound the eager search runs, is sorted if asked and then cut
// to the limit; with one, the first phrases up to the limit are pulled lazily
// and only those are sorted.
func (s *Server) handleAnagram(request Request) {
	input := request.Input
	if input == "" {
		s.sendError(request.ID, "missing 'q' parameter", 400)
		return
	}
	if maxInput := s.config.Server.MaxInput; maxInput > 0 && utf8.RuneCountInString(input) > maxInput {
		s.sendError(request.ID, fmt.Sprintf("input exceeds maximum length of %d characters", maxInput), 400)
		return
	}

	maxWords := s.config.Search.MaxWords
	if request.MaxWords != nil {
		maxWords = *request.MaxWords
	}
	limit := s.resolveLimit(request.Limit)

	start := time.Now()
	var phrases []anagram.Phrase
	truncated := false
	if request.Lazy || maxWords >= 0 {
		phrases, truncated = anagram.Collect(s.searcher.Stream(input, maxWords), limit)
	} else {
		phrases = s.searcher.Find(input)
	}
	if request.Sort || s.config.Search.Sort {
		anagram.SortPhrases(phrases)
	}
	if limit > 0 && len(phrases) > limit {
		phrases = phrases[:limit]
		truncated = true
	}
	elapsed := time.Since(start)

	s.logger.Debugf("Took [ %v ] for '%s': %d phrases", elapsed, input, len(phrases))
	s.sendResponse(AnagramResponse{
		ID:        request.ID,
		Phrases:   anagram.Strings(phrases),
		Count:     len(phrases),
		TimeTaken: elapsed.Microseconds(),
		Truncated: truncated,
	})
}

// resolveLimit applies the configured default and ceiling, 0 means unlimited
func (s *Server) resolveLimit(requested int) int {
	limit := requested
	if limit <= 0 {
		limit = s.config.Search.Limit
	}
	if maxLimit := s.config.Server.MaxLimit; maxLimit > 0 && (limit <= 0 || limit > maxLimit) {
		limit = maxLimit
	}
	return limit
}

// sendResponse encodes one response and flushes it
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Marshaling response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
