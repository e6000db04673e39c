/*
Package dictionary reads word lists and builds the candidate index for anagram searches.

Two sources are supported: a plain newline delimited text file such as
/usr/share/dict/words, and a directory of chunked binary files
(dict_0001.bin, dict_0002.bin, ...) as produced by WriteChunks.
Everything is read fully into memory before a search starts.
*/
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/bastiangx/wordgram/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrUnavailable is wrapped by every error that stops a dictionary from loading.
var ErrUnavailable = errors.New("dictionary unavailable")

// LoadOptions controls how a word list is read.
type LoadOptions struct {
	// MaxWords caps the number of words kept, 0 keeps all.
	MaxWords int
	// Dedupe drops case-insensitive repeats, keeping the first spelling seen.
	Dedupe bool
}

// Load reads the word list at path, detecting its format.
func Load(path string, opts LoadOptions) ([]string, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	log.Debugf("Loading dictionary %s as %s", path, format)

	var words []string
	switch format {
	case FormatChunk:
		dir := path
		if stat, statErr := os.Stat(path); statErr == nil && !stat.IsDir() {
			dir = filepath.Dir(path)
		}
		loader := NewChunkLoader(dir, opts.MaxWords)
		if err := loader.LoadAll(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		words = loader.Words()
	default:
		words, err = LoadTextFile(path)
		if err != nil {
			return nil, err
		}
	}

	if opts.Dedupe {
		words = dedupe(words)
	}
	if opts.MaxWords > 0 && len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}
	log.Debugf("Dictionary loaded: %d words", len(words))
	return words, nil
}

// LoadTextFile reads a newline delimited word list from disk.
func LoadTextFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer file.Close()
	return ReadWords(file)
}

// ReadWords reads one word per line, trimming whitespace and skipping blank lines.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading word list: %w", ErrUnavailable, err)
	}
	return words, nil
}

func dedupe(words []string) []string {
	filter := utils.NewDuplicateFilter()
	out := words[:0:0]
	for _, w := range words {
		if filter.ShouldInclude(w) {
			out = append(out, w)
		}
	}
	log.Debugf("Dedupe kept %d of %d words", filter.Seen(), len(words))
	return out
}

// ChunkLoader reads a directory of chunk files into a patricia trie of word -> score.
// The words are also kept in file order, repeats included.
type ChunkLoader struct {
	dirPath      string
	maxWords     int
	loadedChunks map[int]bool
	trie         *patricia.Trie
	words        []string
	totalWords   int
	maxFrequency int
	mu           sync.RWMutex
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	TotalWords      int
	LoadedChunks    int
	AvailableChunks int
	MaxFrequency    int
}

// NewChunkLoader creates a loader for the chunk files in dirPath.
// maxWords stops loading further chunks once reached, 0 loads everything.
func NewChunkLoader(dirPath string, maxWords int) *ChunkLoader {
	return &ChunkLoader{
		dirPath:      dirPath,
		maxWords:     maxWords,
		loadedChunks: make(map[int]bool),
		trie:         patricia.NewTrie(),
	}
}

// GetAvailableChunks scans the directory for available chunk files
func (cl *ChunkLoader) GetAvailableChunks() ([]ChunkInfo, error) {
	pattern := filepath.Join(cl.dirPath, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		basename := filepath.Base(file)
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := getChunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{
			ChunkID:   chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// getChunkWordCount reads the word count from a chunk file's header
func getChunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadAll loads chunks in ID order until maxWords is reached.
func (cl *ChunkLoader) LoadAll() error {
	chunks, err := cl.GetAvailableChunks()
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", cl.dirPath)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	loadedWords := 0
	for _, chunk := range chunks {
		if cl.maxWords > 0 && loadedWords >= cl.maxWords {
			break
		}
		if err := cl.LoadChunk(chunk.ChunkID); err != nil {
			return err
		}
		loadedWords += chunk.WordCount
	}
	return nil
}

// LoadChunk loads a specific chunk into memory
func (cl *ChunkLoader) LoadChunk(chunkID int) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.loadedChunks[chunkID] {
		return nil
	}

	filename := filepath.Join(cl.dirPath, fmt.Sprintf("dict_%04d.bin", chunkID))
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return fmt.Errorf("invalid word count %d in chunk %d", totalEntries, chunkID)
	}
	log.Debugf("Loading chunk %d with %d words", chunkID, totalEntries)

	count := 0
	for count < int(totalEntries) {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return fmt.Errorf("failed to read rank: %w", err)
		}

		count++
		if wordLen == 0 {
			continue
		}
		cl.words = append(cl.words, string(wordBytes))

		// rank 1 becomes the highest score
		score := int(65535 - rank + 1)
		if cl.trie.Insert(patricia.Prefix(wordBytes), score) {
			cl.totalWords++
		}
		if score > cl.maxFrequency {
			cl.maxFrequency = score
		}
	}

	cl.loadedChunks[chunkID] = true
	log.Debugf("Chunk %d loaded: %d words", chunkID, count)
	return nil
}

// Words returns every loaded word in chunk and file order, repeats included.
func (cl *ChunkLoader) Words() []string {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return slices.Clone(cl.words)
}

// Contains reports whether word was loaded.
func (cl *ChunkLoader) Contains(word string) bool {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.trie.Match(patricia.Prefix(word))
}

// GetStats returns current loading statistics
func (cl *ChunkLoader) GetStats() LoaderStats {
	chunks, _ := cl.GetAvailableChunks()

	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return LoaderStats{
		TotalWords:      cl.totalWords,
		LoadedChunks:    len(cl.loadedChunks),
		AvailableChunks: len(chunks),
		MaxFrequency:    cl.maxFrequency,
	}
}
