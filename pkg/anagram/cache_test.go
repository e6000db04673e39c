package anagram

import (
	"slices"
	"testing"
)

func TestCacheGetPut(t *testing.T) {
	c := NewCache(2)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty cache should miss")
	}

	c.Put("k1", []Phrase{{"pet", "er"}})
	got, ok := c.Get("k1")
	if !ok || !slices.Equal(Strings(got), []string{"pet er"}) {
		t.Errorf("Get(k1) = %v, %v", got, ok)
	}

	c.Put("empty", nil)
	got, ok = c.Get("empty")
	if !ok || len(got) != 0 {
		t.Errorf("Get(empty) = %v, %v, want cached empty result", got, ok)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2)
	c.Put("a", []Phrase{{"a"}})
	c.Put("b", []Phrase{{"b"}})
	c.Get("a")
	c.Put("c", []Phrase{{"c"}})

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, key := range []string{"a", "c"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should still be cached", key)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Put("a", []Phrase{{"a", "again"}})
	if c.Len() != 2 {
		t.Errorf("overwriting a key changed Len() to %d", c.Len())
	}
}

func TestCacheVariantsAndClear(t *testing.T) {
	engine := NewEngine([]string{"listen", "silent", "enlist"}, DefaultOptions())
	engine.Find("listen")
	engine.Find("silent")
	engine.Find("tinsel")

	if n := engine.cache.Variants("e1i1l1n1s1t1"); n != 3 {
		t.Errorf("Variants = %d, want 3", n)
	}
	if n := engine.CachedVariants("Inlets"); n != 3 {
		t.Errorf("CachedVariants(Inlets) = %d, want 3", n)
	}
	if n := engine.CachedVariants("other"); n != 0 {
		t.Errorf("CachedVariants(other) = %d, want 0", n)
	}
	if n := NewEngine(nil, Options{}).CachedVariants("listen"); n != 0 {
		t.Errorf("CachedVariants without cache = %d, want 0", n)
	}

	engine.cache.Clear()
	if engine.cache.Len() != 0 {
		t.Errorf("Len() after Clear = %d", engine.cache.Len())
	}
	stats := engine.cache.Stats()
	if stats["maxCache"] != 256 {
		t.Errorf("maxCache = %d, want 256", stats["maxCache"])
	}
}
