package vocabulary

import (
	"sort"
	"strings"
	"sync"
)

// Difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Categories used by the built-in catalog.
const (
	CategoryColors     = "colors"
	CategoryGreetings  = "greetings"
	CategoryAdjectives = "adjectives"
	CategoryBusiness   = "business"
	CategoryTechnology = "technology"
	CategoryLanguage   = "language"
	CategoryScience    = "science"
)

// Word is one catalog entry.
type Word struct {
	Text       string   `json:"word" yaml:"text" validate:"required"`
	Phonetic   string   `json:"phonetic,omitempty" yaml:"phonetic"`
	Difficulty string   `json:"difficulty,omitempty" yaml:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Category   string   `json:"category,omitempty" yaml:"category"`
	Tip        string   `json:"tip,omitempty" yaml:"tip"`
	Variations []string `json:"variations,omitempty" yaml:"variations"`
}

// Key normalizes a word for lookup.
func Key(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Catalog is a concurrency-safe word index.
type Catalog struct {
	mu    sync.RWMutex
	words map[string]Word
}

// New creates a catalog holding the given words.
func New(words ...Word) *Catalog {
	c := &Catalog{words: make(map[string]Word, len(words))}
	for _, w := range words {
		c.Add(w)
	}
	return c
}

// Default returns a catalog seeded with the built-in words.
func Default() *Catalog {
	return New(builtin()...)
}

// Add inserts or replaces a word. Entries with an empty key are ignored.
func (c *Catalog) Add(w Word) {
	k := Key(w.Text)
	if k == "" {
		return
	}
	w.Text = k
	c.mu.Lock()
	c.words[k] = w
	c.mu.Unlock()
}

// Lookup finds a word by its normalized key.
func (c *Catalog) Lookup(word string) (Word, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.words[Key(word)]
	return w, ok
}

// Tip returns the articulation tip for word, or "" when none exists.
func (c *Catalog) Tip(word string) string {
	w, ok := c.Lookup(word)
	if !ok {
		return ""
	}
	return w.Tip
}

// Variations returns the accepted variants of word.
func (c *Catalog) Variations(word string) []string {
	w, ok := c.Lookup(word)
	if !ok {
		return nil
	}
	return w.Variations
}

// InCategory reports whether word belongs to category.
func (c *Catalog) InCategory(word, category string) bool {
	w, ok := c.Lookup(word)
	return ok && w.Category == category
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.words)
}

// List returns all words sorted by text, optionally filtered by category.
func (c *Catalog) List(category string) []Word {
	c.mu.RLock()
	out := make([]Word, 0, len(c.words))
	for _, w := range c.words {
		if category != "" && w.Category != category {
			continue
		}
		out = append(out, w)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out
}

func builtin() []Word {
	return []Word{
		{Text: "red", Phonetic: "rɛd", Difficulty: DifficultyEasy, Category: CategoryColors, Tip: "Make the 'r' sound strong at the beginning"},
		{Text: "blue", Phonetic: "bluː", Difficulty: DifficultyEasy, Category: CategoryColors, Tip: "Emphasize the 'bl' blend clearly"},
		{Text: "green", Phonetic: "ɡriːn", Difficulty: DifficultyEasy, Category: CategoryColors, Tip: "Clear 'gr' sound and long 'ee' vowel"},
		{Text: "yellow", Phonetic: "ˈjɛloʊ", Difficulty: DifficultyEasy, Category: CategoryColors, Tip: "Focus on the 'yell' part, not too fast"},
		{Text: "orange", Phonetic: "ˈɔːrɪndʒ", Difficulty: DifficultyEasy, Category: CategoryColors, Tip: "Two syllables: 'or' and 'ange'"},
		{Text: "purple", Phonetic: "ˈpɜːrpəl", Difficulty: DifficultyEasy, Category: CategoryColors, Tip: "Don't forget the 'r' in the middle"},
		{Text: "pink", Phonetic: "pɪŋk", Difficulty: DifficultyEasy, Category: CategoryColors, Tip: "Clear 'p' sound at the beginning"},
		{Text: "brown", Phonetic: "braʊn", Difficulty: DifficultyEasy, Category: CategoryColors, Tip: "Strong 'br' blend, round 'ow' sound"},

		{Text: "hello", Phonetic: "həˈloʊ", Difficulty: DifficultyEasy, Category: CategoryGreetings, Variations: []string{"hallo", "hellow"}},
		{Text: "beautiful", Phonetic: "ˈbjuːtɪfəl", Difficulty: DifficultyMedium, Category: CategoryAdjectives, Variations: []string{"beautyful", "beutiful"}},
		{Text: "entrepreneur", Phonetic: "ˌɑːntrəprəˈnɜːr", Difficulty: DifficultyHard, Category: CategoryBusiness},
		{Text: "technology", Phonetic: "tekˈnɑːlədʒi", Difficulty: DifficultyMedium, Category: CategoryTechnology, Variations: []string{"teknology", "technolgy"}},
		{Text: "pronunciation", Phonetic: "prəˌnʌnsiˈeɪʃən", Difficulty: DifficultyHard, Category: CategoryLanguage},
		{Text: "computer", Phonetic: "kəmˈpjuːtər", Difficulty: DifficultyEasy, Category: CategoryTechnology, Variations: []string{"compyuter", "computor"}},
		{Text: "algorithm", Phonetic: "ˈælɡərɪðəm", Difficulty: DifficultyMedium, Category: CategoryTechnology},
		{Text: "artificial", Phonetic: "ˌɑːrtɪˈfɪʃəl", Difficulty: DifficultyMedium, Category: CategoryTechnology},
		{Text: "intelligence", Phonetic: "ɪnˈtelɪdʒəns", Difficulty: DifficultyMedium, Category: CategoryScience},
		{Text: "machine", Phonetic: "məˈʃiːn", Difficulty: DifficultyEasy, Category: CategoryTechnology},
	}
}
