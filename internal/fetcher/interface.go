package fetcher

import "context"

// Service defines the interface for the external image search collaborator.
// External packages should use this interface, not the concrete implementations
type Service interface {
	// FetchImageURL returns one representative image URL for the keyword,
	// or models.ErrNoImageFound when the search produces no usable result.
	FetchImageURL(ctx context.Context, keyword string) (string, error)
}
