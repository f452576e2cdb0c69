package recstore

import (
	"context"
	"sync"

	"github.com/luvit/moodfit/internal/domain/recommend"
)

// MemoryStore holds the recommendation slot in process memory. It is the
// fallback when no Valkey endpoint is configured and the store used in
// tests.
type MemoryStore struct {
	mu      sync.RWMutex
	payload []byte
	found   bool
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveEntry implements recommend.CacheStore.
func (s *MemoryStore) SaveEntry(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = append([]byte(nil), payload...)
	s.found = true
	return nil
}

// LoadEntry implements recommend.CacheStore.
func (s *MemoryStore) LoadEntry(context.Context) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.found {
		return nil, false, nil
	}
	return append([]byte(nil), s.payload...), true, nil
}

// DeleteEntry implements recommend.CacheStore.
func (s *MemoryStore) DeleteEntry(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = nil
	s.found = false
	return nil
}

var _ recommend.CacheStore = (*MemoryStore)(nil)
