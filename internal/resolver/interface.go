package resolver

import (
	"context"

	"MenuImage_API/internal/models"
)

// ResolveService defines the interface for image resolution operations.
// External packages should use this interface, not the concrete implementations
type ResolveService interface {
	// ResolveKeyword resolves a single raw keyword to an image URL.
	// The returned result is always non-nil; the error is
	// models.ErrInvalidKeyword when the normalized keyword fails the
	// length bounds (in which case no store or fetch call was made).
	ResolveKeyword(ctx context.Context, raw string) (*models.ImageResult, error)

	// ResolveKeywords resolves a bounded batch of raw keywords with
	// per-item failure isolation. Results match the input in length and
	// order. The error is models.ErrBatchEmpty or models.ErrBatchTooLarge
	// when the batch preconditions fail.
	ResolveKeywords(ctx context.Context, raws []string) (*models.BatchResolveResponse, error)

	// ResolveMenuItems resolves images for already-validated menu items,
	// with the same per-item isolation and ordering as ResolveKeywords.
	ResolveMenuItems(ctx context.Context, items []models.MenuItem) (*models.MenuAnalysisResponse, error)

	// ClearCache removes every cached keyword -> URL entry.
	ClearCache(ctx context.Context) error
}
