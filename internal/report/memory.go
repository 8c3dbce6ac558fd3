package report

import lru "github.com/hashicorp/golang-lru/v2"

// MemoryStore keeps recent runs in an in-memory LRU cache and delegates
// to a backing store for persistence and cache misses.
type MemoryStore struct {
	cache *lru.Cache[string, *RunResult]
	back  Store
}

// NewMemoryStore creates a MemoryStore holding up to size recent runs.
func NewMemoryStore(size int, back Store) (*MemoryStore, error) {
	cache, err := lru.New[string, *RunResult](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: cache, back: back}, nil
}

// Save caches the result and writes it through to the backing store.
func (s *MemoryStore) Save(result *RunResult) error {
	s.cache.Add(result.ID, result)
	return s.back.Save(result)
}

// Load checks the cache first. On miss it loads from the backing store
// and promotes the result.
func (s *MemoryStore) Load(runID string) (*RunResult, error) {
	if r, ok := s.cache.Get(runID); ok {
		return r, nil
	}
	r, err := s.back.Load(runID)
	if err != nil {
		return nil, err
	}
	s.cache.Add(runID, r)
	return r, nil
}
