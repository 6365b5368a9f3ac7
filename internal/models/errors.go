package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKeyword indicates that the normalized keyword fails the length bounds
	ErrInvalidKeyword = errors.New("invalid keyword after normalization")

	// ErrNoImageFound indicates that the image search returned no usable URL
	ErrNoImageFound = errors.New("no image found for keyword")

	// ErrKeywordNotCached indicates a cache miss in the store
	ErrKeywordNotCached = errors.New("keyword not cached")

	// ErrBatchEmpty indicates that an empty keyword batch was submitted
	ErrBatchEmpty = errors.New("keyword batch is empty")

	// ErrBatchTooLarge indicates that the keyword batch exceeds the batch limit
	ErrBatchTooLarge = errors.New("keyword batch exceeds maximum size")

	// ErrFetchTimeout indicates that the image search timed out
	ErrFetchTimeout = errors.New("timeout while fetching image")

	// ErrRateLimitExceeded indicates that rate limit has been exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrStoreUnavailable indicates that the cache store is unavailable
	ErrStoreUnavailable = errors.New("cache store unavailable")

	// ErrMenuAnalysisFailed indicates that the menu extraction collaborator failed
	ErrMenuAnalysisFailed = errors.New("menu analysis failed")
)

// KeywordError represents an error specific to resolving one keyword
type KeywordError struct {
	Keyword string
	Message string
	Err     error
}

func (e *KeywordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("keyword %q: %s: %v", e.Keyword, e.Message, e.Err)
	}
	return fmt.Sprintf("keyword %q: %s", e.Keyword, e.Message)
}

func (e *KeywordError) Unwrap() error {
	return e.Err
}

// NewKeywordError creates a new keyword-specific error
func NewKeywordError(keyword, message string, err error) *KeywordError {
	return &KeywordError{
		Keyword: keyword,
		Message: message,
		Err:     err,
	}
}
