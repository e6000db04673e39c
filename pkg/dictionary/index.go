package dictionary

import (
	"strings"

	"github.com/bastiangx/wordgram/pkg/letters"
)

// Entry pairs a dictionary word with its letter counts.
type Entry struct {
	Word    string
	Letters letters.Multiset
}

// IndexOptions controls how an Index is built.
type IndexOptions struct {
	// CaseSensitiveExclusion compares words to the input byte for byte
	// when dropping the input itself. Off by default, so "Peter" also drops "peter".
	CaseSensitiveExclusion bool
}

// Index is the pool of candidate words for one search.
// Entry order follows the word list it was built from and carries no meaning.
type Index struct {
	entries []Entry
	input   string
}

// Build computes the letter counts of every word once.
// The word equal to input is skipped; duplicates and words that can never
// fit are kept, pruning happens during the search.
func Build(words []string, input string, opts IndexOptions) *Index {
	idx := &Index{
		entries: make([]Entry, 0, len(words)),
		input:   input,
	}
	for _, w := range words {
		if isInput(w, input, opts.CaseSensitiveExclusion) {
			continue
		}
		idx.entries = append(idx.entries, Entry{Word: w, Letters: letters.FromString(w)})
	}
	return idx
}

func isInput(word, input string, caseSensitive bool) bool {
	if caseSensitive {
		return word == input
	}
	return strings.EqualFold(word, input)
}

// Entries returns the entries in build order. Callers must not modify the slice.
func (idx *Index) Entries() []Entry {
	return idx.entries
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Input returns the string the index was built for.
func (idx *Index) Input() string {
	return idx.input
}
