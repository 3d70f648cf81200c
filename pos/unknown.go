package pos

import "sync"

// UnknownWords memoizes the fallback emission of words missing from the
// training tables. The first lookup of a word assigns it the configured tag
// with probability 1/TagFrequency(tag); later lookups within the run reuse
// that entry. One instance is shared by all sentences of a run and is safe
// for concurrent use.
type UnknownWords struct {
	mu      sync.Mutex
	model   Model
	tag     string
	entries map[string]float64
}

func NewUnknownWords(model Model, tag string) *UnknownWords {
	return &UnknownWords{
		model:   model,
		tag:     tag,
		entries: make(map[string]float64),
	}
}

func (cache *UnknownWords) Tag() string {
	return cache.tag
}

func (cache *UnknownWords) LookupOrInsertDefault(word string) (string, float64, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if p, isOk := cache.entries[word]; isOk {
		return cache.tag, p, nil
	}
	freq := cache.model.TagFrequency(cache.tag)
	if freq == 0 {
		return "", 0, DivisionByZeroError{Tag: cache.tag}
	}
	p := 1 / float64(freq)
	cache.entries[word] = p
	return cache.tag, p, nil
}

// Emission reports the cached entry for word, if any.
func (cache *UnknownWords) Emission(word string, tag string) (float64, bool) {
	if tag != cache.tag {
		return 0, false
	}
	cache.mu.Lock()
	defer cache.mu.Unlock()
	p, isOk := cache.entries[word]
	return p, isOk
}

func (cache *UnknownWords) Len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return len(cache.entries)
}
