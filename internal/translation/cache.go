package translation

import (
	"sync"

	"codeberg.org/snonux/neural/internal/language"
)

// DefaultCacheSize is the number of translations kept per session
const DefaultCacheSize = 100

// CacheKey identifies a translation. The pair is stored as selected, so a
// request made with Auto is cached under Auto.
type CacheKey struct {
	Text string
	From language.Language
	To   language.Language
}

// KeyFor builds the cache key for text translated with the given pair
func KeyFor(text string, pair language.Pair) CacheKey {
	return CacheKey{Text: text, From: pair.From, To: pair.To}
}

// TranslationCache is a bounded in-memory cache with FIFO eviction. Reads do
// not refresh an entry, the oldest inserted key is always evicted first.
type TranslationCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[CacheKey]string
	order    []CacheKey
}

// NewTranslationCache creates an empty cache holding at most capacity entries
func NewTranslationCache(capacity int) *TranslationCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &TranslationCache{
		capacity: capacity,
		entries:  make(map[CacheKey]string),
		order:    make([]CacheKey, 0, capacity+1),
	}
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(key CacheKey) (string, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	translation, ok := tc.entries[key]
	return translation, ok
}

// Put stores a translation. An existing key keeps its position and only has
// its value replaced.
func (tc *TranslationCache) Put(key CacheKey, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if _, exists := tc.entries[key]; exists {
		tc.entries[key] = translation
		return
	}

	tc.entries[key] = translation
	tc.order = append(tc.order, key)

	// Inserts grow the cache by one, so one eviction is always enough
	if len(tc.order) > tc.capacity {
		oldest := tc.order[0]
		tc.order = tc.order[1:]
		delete(tc.entries, oldest)
	}
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return len(tc.entries)
}

// Capacity returns the maximum number of entries
func (tc *TranslationCache) Capacity() int {
	return tc.capacity
}

// Keys returns the cached keys, oldest first
func (tc *TranslationCache) Keys() []CacheKey {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]CacheKey(nil), tc.order...)
}
