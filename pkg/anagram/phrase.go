package anagram

import (
	"bufio"
	"io"
	"slices"
	"strings"
)

// Phrase is an ordered sequence of dictionary words whose letters together
// match the input exactly. Word order matters: "pet er" and "er pet" are different phrases.
type Phrase []string

// String joins the words with single spaces.
func (p Phrase) String() string {
	return strings.Join(p, " ")
}

// extend returns p with word appended, never sharing p's backing array.
func (p Phrase) extend(word string) Phrase {
	next := make(Phrase, len(p), len(p)+1)
	copy(next, p)
	return append(next, word)
}

// Strings formats every phrase.
func Strings(phrases []Phrase) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = p.String()
	}
	return out
}

// SortPhrases orders phrases by their formatted text.
func SortPhrases(phrases []Phrase) {
	slices.SortFunc(phrases, func(a, b Phrase) int {
		return strings.Compare(a.String(), b.String())
	})
}

// WritePhrases writes one phrase per line.
func WritePhrases(w io.Writer, phrases []Phrase) error {
	bw := bufio.NewWriter(w)
	for _, p := range phrases {
		if _, err := bw.WriteString(p.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
