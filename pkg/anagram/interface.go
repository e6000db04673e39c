// Package anagram is the core, finding every phrase of dictionary words whose
// letters are a rearrangement of an input string.
//
// The search is a recursive backtracking walk over a candidate pool. Each level
// tries every remaining candidate against the letters still unused; a candidate
// that no longer fits is dropped for the rest of that subtree, because the
// unused letters only ever shrink. Results come either all at once (Find) or as
// a lazy tree that can be walked with a depth bound and abandoned at any point
// (Tree, Walk, Stream).
package anagram

import "iter"

// ISearcher defines the interface the CLI and IPC server search through
type ISearcher interface {
	// Find returns every phrase for input
	Find(input string) []Phrase

	// Stream yields phrases lazily, bounded by maxAdditional non-completing words (-1 for none)
	Stream(input string, maxAdditional int) iter.Seq[Phrase]

	// CachedVariants counts cached results for rearrangements of input's letters
	CachedVariants(input string) int

	// Len returns the number of dictionary words searched
	Len() int

	// Stats returns statistics about the engine
	Stats() map[string]int
}

var _ ISearcher = (*Engine)(nil)
