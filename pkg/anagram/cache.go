package anagram

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Cache keeps recent eager results keyed by input letters,
// evicting the least recently used entry once full.
type Cache struct {
	trie        *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int
	misses      int
	maxEntries  int
	mu          sync.Mutex
}

// NewCache creates a cache holding up to maxEntries results.
func NewCache(maxEntries int) *Cache {
	return &Cache{
		trie:       patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the phrases stored under key.
func (c *Cache) Get(key string) ([]Phrase, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.trie.Get(patricia.Prefix(key))
	if item == nil {
		c.misses++
		return nil, false
	}
	c.hits++
	c.markAccessed(key)

	phrases := item.([]Phrase)
	out := make([]Phrase, len(phrases))
	copy(out, phrases)
	return out, true
}

// Put stores phrases under key.
func (c *Cache) Put(key string, phrases []Phrase) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.accessTime[key]; !exists && len(c.accessTime) >= c.maxEntries {
		c.evictLRU()
	}
	stored := make([]Phrase, len(phrases))
	copy(stored, phrases)
	c.trie.Set(patricia.Prefix(key), stored)
	c.markAccessed(key)
}

// Variants returns how many cached inputs share the letter key prefix,
// e.g. "listen" and "silent" both live under "e1i1l1n1s1t1".
func (c *Cache) Variants(letterKey string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	c.trie.VisitSubtree(patricia.Prefix(letterKey+"\x00"), func(patricia.Prefix, patricia.Item) error {
		n++
		return nil
	})
	return n
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.accessTime)
}

// Clear drops every cached result.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.trie = patricia.NewTrie()
	c.accessTime = make(map[string]int64, c.maxEntries)
}

// Stats reports size and hit counts.
func (c *Cache) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]int{
		"cacheEntries": len(c.accessTime),
		"maxCache":     c.maxEntries,
		"cacheHits":    c.hits,
		"cacheMisses":  c.misses,
	}
}

func (c *Cache) markAccessed(key string) {
	c.accessCount++
	c.accessTime[key] = c.accessCount
}

func (c *Cache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, accessTime := range c.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}
	if oldestTime == math.MaxInt64 {
		return
	}
	c.trie.Delete(patricia.Prefix(oldestKey))
	delete(c.accessTime, oldestKey)
	log.Debugf("Evicted %q from result cache", oldestKey)
}
