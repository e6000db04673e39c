package anagram

import (
	"strings"
	"time"

	"github.com/bastiangx/wordgram/pkg/dictionary"
	"github.com/bastiangx/wordgram/pkg/letters"
	"github.com/charmbracelet/log"
)

// Options tunes a search. The zero value disables pruning, use DefaultOptions.
type Options struct {
	// Prune drops a word from the rest of a subtree once it stops fitting.
	// Results are the same either way, only the amount of work changes.
	Prune bool
	// CaseSensitiveExclusion only skips dictionary words spelled exactly like the input.
	CaseSensitiveExclusion bool
	// CacheSize is the number of eager results kept per engine, 0 disables the cache.
	CacheSize int
}

// DefaultOptions returns pruning on, case-insensitive exclusion and a small result cache.
func DefaultOptions() Options {
	return Options{
		Prune:     true,
		CacheSize: 256,
	}
}

// Engine finds anagram phrases of inputs drawn from a fixed word list.
// The word list is read-only after construction; an Engine is safe for
// concurrent use.
type Engine struct {
	words []string
	opts  Options
	cache *Cache
}

// NewEngine creates an engine over words. The slice is kept, not copied.
func NewEngine(words []string, opts Options) *Engine {
	e := &Engine{
		words: words,
		opts:  opts,
	}
	if opts.CacheSize > 0 {
		e.cache = NewCache(opts.CacheSize)
	}
	return e
}

// Anagrams returns every phrase of words whose letters rearrange input,
// formatted with single spaces. Order is unspecified.
func Anagrams(input string, words []string) []string {
	return Strings(NewEngine(words, Options{Prune: true}).Find(input))
}

// Index builds the candidate pool for input, dropping input itself.
func (e *Engine) Index(input string) *dictionary.Index {
	return dictionary.Build(e.words, input, dictionary.IndexOptions{
		CaseSensitiveExclusion: e.opts.CaseSensitiveExclusion,
	})
}

// Find runs the full search and returns every phrase.
// Callers may reorder the returned slice but must not modify the phrases in it.
func (e *Engine) Find(input string) []Phrase {
	target := letters.FromString(input)
	key := e.cacheKey(input, target)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			log.Debugf("Cache hit for '%s' (%d phrases)", input, len(cached))
			return cached
		}
	}

	start := time.Now()
	var phrases []Phrase
	if !target.IsEmpty() {
		e.collect(target, e.Index(input).Entries(), nil, &phrases)
	}
	log.Debugf("Searched '%s' in %v: %d phrases", input, time.Since(start), len(phrases))

	if e.cache != nil {
		e.cache.Put(key, phrases)
	}
	return phrases
}

func (e *Engine) collect(remaining letters.Multiset, dict []dictionary.Entry, phrase Phrase, out *[]Phrase) {
	e.frame(remaining, dict, func(entry dictionary.Entry, rest letters.Multiset, child []dictionary.Entry) bool {
		if rest.IsEmpty() {
			*out = append(*out, phrase.extend(entry.Word))
		} else {
			e.collect(rest, child, phrase.extend(entry.Word), out)
		}
		return true
	})
}

// visitFunc receives each fitting entry of a frame together with the letters
// left after taking it and the candidates to use below it. child is nil when
// rest is empty. Returning false stops the frame.
type visitFunc func(entry dictionary.Entry, rest letters.Multiset, child []dictionary.Entry) bool

// frame walks dict in order against remaining. Entries that do not fit are
// left out of the child candidates handed to every later sibling; entries
// already passed to an earlier child are never touched again, so no frame
// observes a later sibling's pruning. It reports whether visit asked to stop.
func (e *Engine) frame(remaining letters.Multiset, dict []dictionary.Entry, visit visitFunc) bool {
	// survivors of dict[:i], only built once the first entry is pruned
	var kept []dictionary.Entry
	pruned := false

	for i, entry := range dict {
		rest, ok := letters.Deduct(remaining, entry.Letters)
		// a word without letters can never shrink the remainder
		if !ok || entry.Letters.IsEmpty() {
			if e.opts.Prune && !pruned {
				pruned = true
				kept = make([]dictionary.Entry, i, len(dict))
				copy(kept, dict[:i])
			}
			continue
		}
		if pruned {
			kept = append(kept, entry)
		}

		if rest.IsEmpty() {
			if !visit(entry, rest, nil) {
				return false
			}
			continue
		}

		child := dict
		if pruned {
			child = make([]dictionary.Entry, 0, len(kept)+len(dict)-i-1)
			child = append(child, kept...)
			child = append(child, dict[i+1:]...)
		}
		if !visit(entry, rest, child) {
			return false
		}
	}
	return true
}

func (e *Engine) cacheKey(input string, target letters.Multiset) string {
	exclude := input
	if !e.opts.CaseSensitiveExclusion {
		exclude = strings.ToLower(input)
	}
	return target.String() + "\x00" + exclude
}

// CachedVariants returns how many cached results share the letters of input,
// i.e. cached searches for other rearrangements of the same letters.
// It is 0 when the cache is disabled.
func (e *Engine) CachedVariants(input string) int {
	if e.cache == nil {
		return 0
	}
	return e.cache.Variants(letters.FromString(input).String())
}

// Len returns the number of words the engine searches.
func (e *Engine) Len() int {
	return len(e.words)
}

// Stats returns basic numbers about the engine, merged with cache stats when enabled.
func (e *Engine) Stats() map[string]int {
	stats := map[string]int{
		"totalWords": len(e.words),
		"prune":      boolToInt(e.opts.Prune),
	}
	if e.cache != nil {
		for k, v := range e.cache.Stats() {
			stats[k] = v
		}
	}
	return stats
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
