package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"MenuImage_API/internal/models"
)

// MemoryStore implements Service using in-memory storage. Intended for
// development and tests; entries live until Clear or process exit.
type MemoryStore struct {
	entries map[string]*models.CacheEntry
	mutex   sync.RWMutex
}

// NewMemoryStore creates a new in-memory image cache store
func NewMemoryStore() Service {
	return newMemoryStore()
}

// newMemoryStore creates the concrete implementation
func newMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*models.CacheEntry),
	}
}

// Get returns the cached image URL for a keyword
func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	entry, exists := m.entries[strings.ToLower(key)]
	if !exists {
		return "", models.ErrKeywordNotCached
	}

	return entry.ImageURL, nil
}

// Put upserts the image URL for a keyword
func (m *MemoryStore) Put(ctx context.Context, key, url string) error {
	if key == "" || url == "" {
		return fmt.Errorf("keyword and url must be non-empty")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	lowered := strings.ToLower(key)
	if existing, ok := m.entries[lowered]; ok {
		existing.ImageURL = url
		return nil
	}

	m.entries[lowered] = &models.CacheEntry{
		Keyword:   lowered,
		ImageURL:  url,
		CreatedAt: time.Now().UTC(),
	}

	return nil
}

// Clear deletes all cached entries
func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.entries = make(map[string]*models.CacheEntry)
	return nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}

// Size returns the current number of cached entries (for monitoring)
func (m *MemoryStore) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.entries)
}
