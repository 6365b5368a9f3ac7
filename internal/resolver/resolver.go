package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"MenuImage_API/internal/fetcher"
	"MenuImage_API/internal/keyword"
	"MenuImage_API/internal/logger"
	"MenuImage_API/internal/models"
	"MenuImage_API/internal/store"
)

// MaxBatchSize is the maximum number of keywords accepted per batch
const MaxBatchSize = 50

// Service implements the ResolveService interface
type Service struct {
	store         store.Service
	fetcher       fetcher.Service
	logger        logger.Service
	maxConcurrent int
	itemTimeout   time.Duration
}

// NewService creates a new resolve service
func NewService(
	store store.Service,
	fetcher fetcher.Service,
	logger logger.Service,
	maxConcurrent int,
	itemTimeout time.Duration,
) ResolveService {
	return &Service{
		store:         store,
		fetcher:       fetcher,
		logger:        logger,
		maxConcurrent: maxConcurrent,
		itemTimeout:   itemTimeout,
	}
}

// ResolveKeyword resolves a single raw keyword to an image URL.
// The pipeline is normalize -> validity gate -> store lookup -> external
// fetch -> store write. At most one fetch attempt is made per call and
// no retry happens at this layer, so repeated calls with equivalent raw
// input converge on the cached answer after the first success.
func (s *Service) ResolveKeyword(ctx context.Context, raw string) (*models.ImageResult, error) {
	start := time.Now()

	key := keyword.Normalize(raw)
	if !keyword.IsValid(key) {
		// Deliberate short-circuit: garbage input never reaches the
		// store or the billable search API.
		s.logger.LogInfo(ctx, logger.OpResolveKeyword, fmt.Sprintf("Rejected invalid keyword: %q", raw), map[string]interface{}{
			"keyword":    raw,
			"normalized": key,
		})
		return &models.ImageResult{Keyword: raw, ImageURL: nil}, models.ErrInvalidKeyword
	}

	cached, err := s.store.Get(ctx, key)
	if err == nil {
		s.logger.LogSuccess(ctx, logger.OpCacheHit, key, "Resolved image URL from cache", map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return &models.ImageResult{Keyword: key, ImageURL: &cached, Cached: true}, nil
	}

	if !errors.Is(err, models.ErrKeywordNotCached) {
		// Storage faults degrade to a miss; the keyword is still
		// resolvable through the external search.
		s.logger.LogError(ctx, logger.OpCacheLookup, key, "Store lookup failed, treating as miss", err, models.LogSeverityLow, nil)
	} else {
		s.logger.LogInfo(ctx, logger.OpCacheMiss, fmt.Sprintf("Cache miss for keyword: %s", key), map[string]interface{}{
			"keyword": key,
		})
	}

	url, err := s.fetcher.FetchImageURL(ctx, key)
	if err != nil {
		if errors.Is(err, models.ErrNoImageFound) {
			s.logger.LogInfo(ctx, logger.OpFetchImage, fmt.Sprintf("No image found for keyword: %s", key), map[string]interface{}{
				"duration_ms": time.Since(start).Milliseconds(),
			})
		} else {
			s.logger.LogError(ctx, logger.OpFetchImage, key, "Image search failed", err, models.LogSeverityMedium, map[string]interface{}{
				"duration_ms": time.Since(start).Milliseconds(),
			})
		}
		return &models.ImageResult{Keyword: key, ImageURL: nil}, nil
	}

	if err := s.store.Put(ctx, key, url); err != nil {
		// The fetched URL is still returned even when it could not be
		// persisted; the next miss simply pays for another search.
		s.logger.LogError(ctx, logger.OpCacheWrite, key, "Failed to cache image URL", err, models.LogSeverityLow, nil)
	}

	s.logger.LogSuccess(ctx, logger.OpResolveKeyword, key, "Resolved image URL from search", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
		"cached":      false,
	})

	return &models.ImageResult{Keyword: key, ImageURL: &url}, nil
}

// ResolveKeywords resolves multiple keywords concurrently with bounded
// parallelism. Each slot is isolated: a failing or panicking item leaves
// its result with an absent URL and never aborts the rest of the batch.
func (s *Service) ResolveKeywords(ctx context.Context, raws []string) (*models.BatchResolveResponse, error) {
	if len(raws) == 0 {
		return nil, models.ErrBatchEmpty
	}
	if len(raws) > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d, maximum %d", models.ErrBatchTooLarge, len(raws), MaxBatchSize)
	}

	start := time.Now()
	s.logger.LogInfo(ctx, logger.OpBatchResolve, fmt.Sprintf("Starting batch resolution of %d keywords", len(raws)), map[string]interface{}{
		"keywords_count": len(raws),
	})

	results := s.resolveAll(ctx, raws)

	summary := models.BatchSummary{Total: len(results)}
	for _, result := range results {
		if result.ImageURL != nil {
			summary.Resolved++
		} else {
			summary.Missing++
		}
	}

	s.logger.LogSuccess(ctx, logger.OpBatchResolve, "", "Completed batch resolution", map[string]interface{}{
		"total":       summary.Total,
		"resolved":    summary.Resolved,
		"missing":     summary.Missing,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &models.BatchResolveResponse{
		Results:   results,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	}, nil
}

// ResolveMenuItems resolves an image for each validated menu item
func (s *Service) ResolveMenuItems(ctx context.Context, items []models.MenuItem) (*models.MenuAnalysisResponse, error) {
	start := time.Now()

	raws := make([]string, len(items))
	for i, item := range items {
		raws[i] = item.Keyword
	}

	results := s.resolveAll(ctx, raws)

	itemResults := make([]models.MenuItemResult, len(items))
	summary := models.BatchSummary{Total: len(items)}
	for i, item := range items {
		itemResults[i] = models.MenuItemResult{
			MenuItem: item,
			ImageURL: results[i].ImageURL,
		}
		if results[i].ImageURL != nil {
			summary.Resolved++
		} else {
			summary.Missing++
		}
	}

	s.logger.LogSuccess(ctx, logger.OpMenuAnalysis, "", "Resolved images for menu items", map[string]interface{}{
		"total":       summary.Total,
		"resolved":    summary.Resolved,
		"missing":     summary.Missing,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &models.MenuAnalysisResponse{
		Items:     itemResults,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	}, nil
}

// ClearCache removes all cached entries from the store
func (s *Service) ClearCache(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.LogError(ctx, logger.OpCacheClear, "", "Failed to clear image cache", err, models.LogSeverityMedium, nil)
		return err
	}

	s.logger.LogSuccess(ctx, logger.OpCacheClear, "", "Cleared image cache", nil)
	return nil
}

// resolveAll runs ResolveKeyword for every raw keyword under a semaphore,
// writing each outcome into its input slot so output order matches input
// order regardless of completion order.
func (s *Service) resolveAll(ctx context.Context, raws []string) []models.ImageResult {
	results := make([]models.ImageResult, len(raws))

	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup

	for i, raw := range raws {
		wg.Add(1)

		go func(slot int, kw string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			itemCtx, cancel := context.WithTimeout(ctx, s.itemTimeout)
			defer cancel()

			results[slot] = s.resolveItem(itemCtx, kw)
		}(i, raw)
	}

	wg.Wait()
	return results
}

// resolveItem resolves one keyword and converts any failure, including a
// panic inside a collaborator, into an absent-URL result for that slot
func (s *Service) resolveItem(ctx context.Context, raw string) (result models.ImageResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.LogError(ctx, logger.OpBatchResolve, raw, "Recovered panic while resolving keyword", fmt.Errorf("panic: %v", r), models.LogSeverityHigh, nil)
			result = models.ImageResult{Keyword: raw, ImageURL: nil}
		}
	}()

	resolved, err := s.ResolveKeyword(ctx, raw)
	if err != nil && !errors.Is(err, models.ErrInvalidKeyword) {
		s.logger.LogError(ctx, logger.OpBatchResolve, raw, "Failed to resolve keyword in batch", err, models.LogSeverityMedium, nil)
		return models.ImageResult{Keyword: raw, ImageURL: nil}
	}

	return *resolved
}
