package cache

import (
	"context"
	"sync"
	"time"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
)

// MemoryStore is a process-local CacheStore. Entries are never evicted.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entity.CacheEntry
	now     func() time.Time
}

var _ usecase.CacheStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store. A nil now uses time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{entries: make(map[string]entity.CacheEntry), now: now}
}

func (s *MemoryStore) Get(_ context.Context, key string) (entity.CacheEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entity.CacheEntry{Key: key, Value: v, UpdatedAt: s.now()}
	return nil
}
