package store

import "context"

// Service defines the interface for the durable keyword -> image URL cache.
// Keys are normalized keywords; the store owns the entries exclusively.
// External packages should use this interface, not the concrete implementations
type Service interface {
	// Get returns the cached image URL for a normalized keyword, or
	// models.ErrKeywordNotCached on a miss.
	Get(ctx context.Context, key string) (string, error)

	// Put upserts the image URL for a normalized keyword. Re-saving an
	// existing keyword replaces its URL only; no duplicate row is created.
	Put(ctx context.Context, key, url string) error

	// Clear deletes all cached entries unconditionally.
	Clear(ctx context.Context) error

	// Close releases the underlying storage resources.
	Close() error
}
