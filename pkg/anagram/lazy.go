package anagram

import (
	"iter"

	"github.com/bastiangx/wordgram/pkg/dictionary"
	"github.com/bastiangx/wordgram/pkg/letters"
)

// Node is one word choice in the lazy search tree.
// A terminal node completes the phrase; any other node carries the
// subtree of choices that follow it.
type Node struct {
	Word     string
	Terminal bool
	Children Tree
}

// Tree is the lazily produced sequence of choices at one search level.
// Ranging over a Tree runs the search only as far as the nodes consumed,
// breaking out stops it, and ranging again starts over.
type Tree iter.Seq[Node]

// Tree returns the root level of the search for input.
func (e *Engine) Tree(input string) Tree {
	target := letters.FromString(input)
	if target.IsEmpty() {
		return func(func(Node) bool) {}
	}
	return e.tree(target, e.Index(input).Entries())
}

func (e *Engine) tree(remaining letters.Multiset, dict []dictionary.Entry) Tree {
	return func(yield func(Node) bool) {
		e.frame(remaining, dict, func(entry dictionary.Entry, rest letters.Multiset, child []dictionary.Entry) bool {
			if rest.IsEmpty() {
				return yield(Node{Word: entry.Word, Terminal: true})
			}
			return yield(Node{Word: entry.Word, Children: e.tree(rest, child)})
		})
	}
}

// Walk visits the tree depth first and passes every completed phrase to yield,
// stopping when yield returns false. It reports whether the walk ran to the end.
//
// maxAdditional bounds how many non-completing words may be chosen; a negative
// value means no bound. A terminal node is reported at every level regardless,
// since finishing the phrase is not a step further down. A bound of k can
// therefore produce phrases of k+1 words.
func Walk(t Tree, maxAdditional int, yield func(Phrase) bool) bool {
	return walk(t, maxAdditional, nil, yield)
}

func walk(t Tree, budget int, path Phrase, yield func(Phrase) bool) bool {
	for node := range t {
		next := path.extend(node.Word)
		if node.Terminal {
			if !yield(next) {
				return false
			}
			continue
		}
		if budget == 0 {
			continue
		}
		if !walk(node.Children, budget-1, next, yield) {
			return false
		}
	}
	return true
}

// Stream yields phrases for input as they are found, in dictionary order,
// with the bound semantics of Walk.
func (e *Engine) Stream(input string, maxAdditional int) iter.Seq[Phrase] {
	return func(yield func(Phrase) bool) {
		Walk(e.Tree(input), maxAdditional, yield)
	}
}

// Collect pulls at most limit phrases from seq, all of them when limit <= 0.
// It reports whether seq had more phrases than were taken. Answering that
// needs one phrase past the limit, so the search runs until that phrase is
// found (or the tree is exhausted) before it stops.
func Collect(seq iter.Seq[Phrase], limit int) ([]Phrase, bool) {
	var phrases []Phrase
	truncated := false
	for p := range seq {
		if limit > 0 && len(phrases) == limit {
			truncated = true
			break
		}
		phrases = append(phrases, p)
	}
	return phrases, truncated
}
