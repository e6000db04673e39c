package utils

import (
	"strings"
)

// DuplicateFilter remembers words it has seen, ignoring case.
type DuplicateFilter struct {
	seenWords map[string]bool
}

// NewDuplicateFilter creates a filter that has seen nothing yet.
func NewDuplicateFilter() *DuplicateFilter {
	return &DuplicateFilter{seenWords: make(map[string]bool)}
}

// ShouldInclude checks if a word should be included (not a duplicate)
// Returns true the first time a word is seen, false afterwards
func (f *DuplicateFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}

// Seen returns the number of distinct words seen so far.
func (f *DuplicateFilter) Seen() int {
	return len(f.seenWords)
}
