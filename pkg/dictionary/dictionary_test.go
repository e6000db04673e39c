package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestBuild(t *testing.T) {
	words := []string{"pet", "er", "peter", "Peter", "pet", "zzz", "'"}

	tests := []struct {
		name          string
		input         string
		caseSensitive bool
		want          []string
	}{
		{"case-insensitive exclusion", "PETER", false, []string{"pet", "er", "pet", "zzz", "'"}},
		{"case-sensitive exclusion", "Peter", true, []string{"pet", "er", "peter", "pet", "zzz", "'"}},
		{"nothing to exclude", "other", false, words},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := Build(words, tt.input, IndexOptions{CaseSensitiveExclusion: tt.caseSensitive})
			var got []string
			for _, e := range idx.Entries() {
				got = append(got, e.Word)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Build() words = %v, want %v", got, tt.want)
			}
			if idx.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", idx.Len(), len(tt.want))
			}
			if idx.Input() != tt.input {
				t.Errorf("Input() = %q, want %q", idx.Input(), tt.input)
			}
		})
	}
}

func TestBuildComputesLetters(t *testing.T) {
	idx := Build([]string{"Pet"}, "x", IndexOptions{})
	e := idx.Entries()[0]
	if e.Letters.String() != "e1p1t1" {
		t.Errorf("Letters = %s, want e1p1t1", e.Letters)
	}
}

func TestReadWords(t *testing.T) {
	words, err := ReadWords(strings.NewReader("pet\n  er \n\n\r\nPeter\r\n"))
	if err != nil {
		t.Fatalf("ReadWords() error = %v", err)
	}
	want := []string{"pet", "er", "Peter"}
	if !slices.Equal(words, want) {
		t.Errorf("ReadWords() = %v, want %v", words, want)
	}
}

func TestLoadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words")
	if err := os.WriteFile(path, []byte("pet\ner\nPET\nzebra\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts LoadOptions
		want []string
	}{
		{"as is", LoadOptions{}, []string{"pet", "er", "PET", "zebra"}},
		{"dedupe", LoadOptions{Dedupe: true}, []string{"pet", "er", "zebra"}},
		{"max words", LoadOptions{MaxWords: 2}, []string{"pet", "er"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(path, tt.opts)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Load() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), LoadOptions{})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Load() error = %v, want ErrUnavailable", err)
	}

	_, err = Load(t.TempDir(), LoadOptions{})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Load(empty dir) error = %v, want ErrUnavailable", err)
	}
}

func TestChunkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	words := []string{"room", "dirty", "dormitory", "pet", "er"}

	n, err := WriteChunks(dir, words, 2)
	if err != nil {
		t.Fatalf("WriteChunks() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("WriteChunks() wrote %d chunks, want 3", n)
	}

	format, err := DetectFileFormat(dir)
	if err != nil || format != FormatChunk {
		t.Fatalf("DetectFileFormat(dir) = %v, %v", format, err)
	}

	loader := NewChunkLoader(dir, 0)
	chunks, err := loader.GetAvailableChunks()
	if err != nil {
		t.Fatalf("GetAvailableChunks() error = %v", err)
	}
	counts := []int{}
	for _, c := range chunks {
		counts = append(counts, c.WordCount)
	}
	if !slices.Equal(counts, []int{2, 2, 1}) {
		t.Errorf("chunk word counts = %v, want [2 2 1]", counts)
	}

	got, err := Load(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(got, words) {
		t.Errorf("Load(chunks) = %v, want %v", got, words)
	}
}

func TestChunkLoadKeepsOrderAndRepeats(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteChunks(dir, []string{"b", "a", "a", "A", "c"}, 2); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts LoadOptions
		want []string
	}{
		{"as is", LoadOptions{}, []string{"b", "a", "a", "A", "c"}},
		{"dedupe", LoadOptions{Dedupe: true}, []string{"b", "a", "c"}},
		{"max words in file order", LoadOptions{MaxWords: 3}, []string{"b", "a", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(dir, tt.opts)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Load() = %v, want %v", got, tt.want)
			}
		})
	}

	loader := NewChunkLoader(dir, 0)
	if err := loader.LoadAll(); err != nil {
		t.Fatal(err)
	}
	if stats := loader.GetStats(); stats.TotalWords != 4 {
		t.Errorf("TotalWords = %d, want 4 distinct words", stats.TotalWords)
	}
}

func TestChunkLoaderMaxWords(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteChunks(dir, []string{"a", "b", "c", "d", "e"}, 2); err != nil {
		t.Fatal(err)
	}

	loader := NewChunkLoader(dir, 2)
	if err := loader.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	stats := loader.GetStats()
	if stats.LoadedChunks != 1 || stats.AvailableChunks != 3 || stats.TotalWords != 2 {
		t.Errorf("GetStats() = %+v", stats)
	}
	if !loader.Contains("b") || loader.Contains("c") {
		t.Error("only the first chunk should be loaded")
	}
	if stats.MaxFrequency != 65535 {
		t.Errorf("MaxFrequency = %d, want 65535", stats.MaxFrequency)
	}
}

func TestDetectSingleChunkFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteChunks(dir, []string{"pet", "er"}, 10); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "dict_0001.bin")
	format, err := DetectFileFormat(file)
	if err != nil || format != FormatChunk {
		t.Fatalf("DetectFileFormat(file) = %v, %v", format, err)
	}
	got, err := Load(file, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(got, []string{"pet", "er"}) {
		t.Errorf("Load() = %v", got)
	}
}

func TestCorruptChunk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dict_0001.bin"), []byte{0xff, 0xff, 0xff, 0xff}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir, LoadOptions{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Load(corrupt) error = %v, want ErrUnavailable", err)
	}
}

func TestFormatInfo(t *testing.T) {
	tests := []struct {
		format FileFormat
		want   string
		ok     bool
	}{
		{FormatChunk, "Chunked Binary Dictionary", true},
		{FormatText, "Plain Text Dictionary", true},
		{FormatUnknown, "", false},
	}
	for _, tt := range tests {
		info, ok := GetFormatInfo(tt.format)
		if ok != tt.ok || info.Description != tt.want {
			t.Errorf("GetFormatInfo(%d) = %q, %v; want %q, %v", tt.format, info.Description, ok, tt.want, tt.ok)
		}
	}
	if FormatUnknown.String() != "unknown" {
		t.Errorf("FormatUnknown.String() = %q", FormatUnknown.String())
	}
}

func TestValidateTooSmallChunk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict_0001.bin")
	if err := os.WriteFile(path, []byte{1, 0}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateFileFormat(path, FormatChunk); err == nil {
		t.Error("ValidateFileFormat() accepted a two byte chunk")
	}
}
