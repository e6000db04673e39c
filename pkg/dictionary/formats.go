package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents different dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // directory of dict_NNNN.bin chunk files
	FormatText               // newline delimited words
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // word count header
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt", ""},
		MinSize:     0,
	},
}

// maxChunkWords is a sanity bound on the header of a chunk file.
const maxChunkWords = 1000000

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	switch expectedFormat {
	case FormatChunk:
		return validateBinaryFormat(filename)
	case FormatText:
		return validateTextFormat(filename)
	}
	return nil
}

// validateBinaryFormat checks the word count header of a chunk file
func validateBinaryFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return nil
}

// validateTextFormat validates text dictionary files
func validateTextFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 1024)
	if _, err = file.Read(buffer); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}

	log.Debugf("Text file %s validated", filename)
	return nil
}

// DetectFileFormat decides how path should be read.
// A directory holding dict_*.bin files is a chunk set, a single dict_*.bin file
// is a one chunk set, and anything else readable is treated as text.
func DetectFileFormat(path string) (FileFormat, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("unable to detect format for %s: %w", path, err)
	}

	if stat.IsDir() {
		matches, _ := filepath.Glob(filepath.Join(path, "dict_*.bin"))
		if len(matches) > 0 {
			return FormatChunk, nil
		}
		return FormatUnknown, fmt.Errorf("no chunk files found in %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	basename := strings.ToLower(filepath.Base(path))
	if strings.HasPrefix(basename, "dict_") && ext == ".bin" {
		if err := ValidateFileFormat(path, FormatChunk); err != nil {
			return FormatUnknown, err
		}
		return FormatChunk, nil
	}

	if err := ValidateFileFormat(path, FormatText); err != nil {
		return FormatUnknown, err
	}
	return FormatText, nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// WriteChunk encodes words as one chunk: an int32 count header followed by
// uint16 length, word bytes and uint16 rank per word. Rank is the 1-based position.
func WriteChunk(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return fmt.Errorf("failed to write chunk header: %w", err)
	}
	for i, word := range words {
		if len(word) > 0xFFFF {
			return fmt.Errorf("word %q is too long for a chunk entry", word[:32])
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("failed to write word length: %w", err)
		}
		if _, err := bw.WriteString(word); err != nil {
			return fmt.Errorf("failed to write word: %w", err)
		}
		rank := uint16(min(i+1, 0xFFFF))
		if err := binary.Write(bw, binary.LittleEndian, rank); err != nil {
			return fmt.Errorf("failed to write rank: %w", err)
		}
	}
	return bw.Flush()
}

// WriteChunks splits words into chunk files named dict_0001.bin, dict_0002.bin, ... in dir.
func WriteChunks(dir string, words []string, chunkSize int) (int, error) {
	if chunkSize < 1 {
		return 0, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create chunk dir %s: %w", dir, err)
	}

	chunks := 0
	for start := 0; start < len(words); start += chunkSize {
		end := min(start+chunkSize, len(words))
		chunks++
		filename := filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", chunks))
		file, err := os.Create(filename)
		if err != nil {
			return chunks - 1, fmt.Errorf("failed to create chunk file %s: %w", filename, err)
		}
		err = WriteChunk(file, words[start:end])
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return chunks - 1, err
		}
		log.Debugf("Wrote chunk %d with %d words", chunks, end-start)
	}
	return chunks, nil
}
