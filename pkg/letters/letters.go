// Package letters implements the letter multiset used by the anagram search.
//
// A Multiset is never changed after construction. Deduct returns a fresh
// value, so a multiset can be shared freely between recursive search frames.
package letters

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Multiset maps a lower-cased letter to its number of occurrences.
// Counts are always positive; an empty Multiset means no letters remain.
type Multiset map[rune]int

// FromString counts the letters of s after lower-casing it.
// Runes that are not letters (spaces, digits, apostrophes) are dropped.
func FromString(s string) Multiset {
	m := make(Multiset, len(s))
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		m[unicode.ToLower(r)]++
	}
	return m
}

// Deduct removes every letter of sub from from.
// It reports false, and returns nil, when sub does not fit inside from.
// Letters whose count drops to zero are removed from the result.
func Deduct(from, sub Multiset) (Multiset, bool) {
	for r, n := range sub {
		if from[r] < n {
			return nil, false
		}
	}
	diff := make(Multiset, len(from))
	for r, n := range from {
		if left := n - sub[r]; left > 0 {
			diff[r] = left
		}
	}
	return diff, true
}

// Deduct is the method form of the package level Deduct.
func (m Multiset) Deduct(sub Multiset) (Multiset, bool) {
	return Deduct(m, sub)
}

// IsEmpty reports whether no letters remain.
func (m Multiset) IsEmpty() bool {
	return len(m) == 0
}

// Len returns the total number of letters, counting repeats.
func (m Multiset) Len() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// Count returns how many times r occurs.
func (m Multiset) Count(r rune) int {
	return m[unicode.ToLower(r)]
}

// Add returns the union of m and other, summing counts.
func (m Multiset) Add(other Multiset) Multiset {
	sum := make(Multiset, len(m)+len(other))
	for r, n := range m {
		sum[r] = n
	}
	for r, n := range other {
		sum[r] += n
	}
	return sum
}

// Equal reports whether both multisets hold the same letters with the same counts.
func (m Multiset) Equal(other Multiset) bool {
	if len(m) != len(other) {
		return false
	}
	for r, n := range m {
		if other[r] != n {
			return false
		}
	}
	return true
}

// String renders the multiset as sorted letter/count pairs, e.g. "e2p1r1t1".
// Equal multisets always render the same string.
func (m Multiset) String() string {
	keys := make([]rune, 0, len(m))
	for r := range m {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var b strings.Builder
	for _, r := range keys {
		b.WriteRune(r)
		b.WriteString(strconv.Itoa(m[r]))
	}
	return b.String()
}
