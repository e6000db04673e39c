package anagram

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/bastiangx/wordgram/pkg/letters"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var roomWords = []string{
	"dirty", "room", "dormitory", "rot", "my", "dory", "rid", "i",
	"tory", "rim", "dot", "moor", "dry", "yo", "tide", "or", "tym",
	"Dormitory", "mid", "try", "o", "zebra", "ordinary",
}

func sorted(phrases []Phrase) []string {
	out := Strings(phrases)
	slices.Sort(out)
	return out
}

func noCache() Options {
	return Options{Prune: true}
}

func TestAnagrams(t *testing.T) {
	tests := []struct {
		name  string
		input string
		words []string
		want  []string
	}{
		{"both orderings", "peter", []string{"pet", "er"}, []string{"er pet", "pet er"}},
		{"input excluded", "peter", []string{"peter", "pet", "er"}, []string{"er pet", "pet er"}},
		{"input excluded ignoring case", "Peter", []string{"peter", "PETER", "pet", "er"}, []string{"er pet", "pet er"}},
		{"word repeats", "aa", []string{"a"}, []string{"a a"}},
		{"no fit", "abc", []string{"xyz", "abcd", "aa"}, nil},
		{"empty dictionary", "abc", nil, nil},
		{"input without letters", "123 !", []string{"a", "'"}, nil},
		{"empty input", "", []string{"a"}, nil},
		{"letterless words skipped", "aa", []string{"'", "-", "a"}, []string{"a a"}},
		{"case and spaces ignored", "Pet Er", []string{"PETER"}, []string{"PETER"}},
		{"apostrophes ignored", "theyre", []string{"they're", "the", "yre"}, []string{"the yre", "they're", "yre the"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Anagrams(tt.input, tt.words)
			slices.Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Anagrams(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLetterlessWordsWithoutPruning(t *testing.T) {
	engine := NewEngine([]string{"'", "a", "-"}, Options{})

	got := sorted(engine.Find("aa"))
	if want := []string{"a a"}; !slices.Equal(got, want) {
		t.Errorf("Find(aa) = %v, want %v", got, want)
	}
	got = streamed(engine, "aa", -1)
	if want := []string{"a a"}; !slices.Equal(got, want) {
		t.Errorf("Stream(aa) = %v, want %v", got, want)
	}
}

func TestCaseSensitiveExclusion(t *testing.T) {
	words := []string{"peter", "pet", "er"}
	engine := NewEngine(words, Options{Prune: true, CaseSensitiveExclusion: true})

	got := sorted(engine.Find("Peter"))
	want := []string{"er pet", "pet er", "peter"}
	if !slices.Equal(got, want) {
		t.Errorf("Find(Peter) = %v, want %v", got, want)
	}

	got = sorted(engine.Find("peter"))
	want = []string{"er pet", "pet er"}
	if !slices.Equal(got, want) {
		t.Errorf("Find(peter) = %v, want %v", got, want)
	}
}

func TestDuplicateWordsKept(t *testing.T) {
	engine := NewEngine([]string{"a", "a"}, noCache())
	got := sorted(engine.Find("aa"))
	want := []string{"a a", "a a", "a a", "a a"}
	if !slices.Equal(got, want) {
		t.Errorf("Find(aa) = %v, want %v", got, want)
	}
}

func TestFindExactness(t *testing.T) {
	input := "Dirty Room"
	target := letters.FromString(input)
	phrases := NewEngine(roomWords, noCache()).Find(input)
	if len(phrases) == 0 {
		t.Fatal("expected phrases for 'Dirty Room'")
	}

	for _, p := range phrases {
		if len(p) == 0 {
			t.Fatal("empty phrase returned")
		}
		sum := letters.Multiset{}
		for _, w := range p {
			sum = sum.Add(letters.FromString(w))
		}
		if !sum.Equal(target) {
			t.Errorf("phrase %q has letters %s, want %s", p, sum, target)
		}
	}

	got := sorted(phrases)
	for _, want := range []string{"dormitory", "Dormitory", "dirty room", "room dirty", "dirty moor", "mid try or o"} {
		if _, found := slices.BinarySearch(got, want); !found {
			t.Errorf("missing phrase %q", want)
		}
	}
}

func TestPruningDoesNotChangeResults(t *testing.T) {
	inputs := []string{"dirty room", "dormitory", "tidy", "rooms", "aa", "peter"}
	pruned := NewEngine(roomWords, Options{Prune: true})
	unpruned := NewEngine(roomWords, Options{Prune: false})

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			a := Strings(pruned.Find(input))
			b := Strings(unpruned.Find(input))
			// same traversal order, so not only the sets but the sequences match
			if !slices.Equal(a, b) {
				t.Errorf("pruned %v != unpruned %v", a, b)
			}
		})
	}
}

func TestDictionaryOrderIndependence(t *testing.T) {
	input := "dirty room"
	want := sorted(NewEngine(roomWords, noCache()).Find(input))

	reversed := slices.Clone(roomWords)
	slices.Reverse(reversed)
	if got := sorted(NewEngine(reversed, noCache()).Find(input)); !slices.Equal(got, want) {
		t.Errorf("reversed dictionary changed results:\n got %v\nwant %v", got, want)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		shuffled := slices.Clone(roomWords)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := sorted(NewEngine(shuffled, noCache()).Find(input)); !slices.Equal(got, want) {
			t.Errorf("shuffle %d changed results:\n got %v\nwant %v", i, got, want)
		}
	}
}

func TestFindUsesCache(t *testing.T) {
	engine := NewEngine([]string{"pet", "er"}, Options{Prune: true, CacheSize: 4})

	first := sorted(engine.Find("peter"))
	second := sorted(engine.Find("PETER"))
	if !slices.Equal(first, second) {
		t.Errorf("cached result %v != %v", second, first)
	}

	stats := engine.Stats()
	if stats["cacheHits"] != 1 || stats["cacheMisses"] != 1 {
		t.Errorf("stats = %v, want 1 hit and 1 miss", stats)
	}
	if stats["totalWords"] != 2 {
		t.Errorf("totalWords = %d, want 2", stats["totalWords"])
	}

	// a cached slice handed out must not leak reordering back into the cache
	res := engine.Find("peter")
	slices.Reverse(res)
	if got := Strings(engine.Find("peter")); slices.Equal(got, Strings(res)) && len(res) > 1 {
		t.Error("reordering a returned slice changed the cached result")
	}
}

func TestSelfExclusionChangesCacheKey(t *testing.T) {
	engine := NewEngine([]string{"listen", "silent"}, DefaultOptions())

	if got := Strings(engine.Find("listen")); !slices.Equal(got, []string{"silent"}) {
		t.Errorf("Find(listen) = %v, want [silent]", got)
	}
	if got := Strings(engine.Find("silent")); !slices.Equal(got, []string{"listen"}) {
		t.Errorf("Find(silent) = %v, want [listen]", got)
	}
}
