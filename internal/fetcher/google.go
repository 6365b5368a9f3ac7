package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"MenuImage_API/internal/models"
)

const defaultEndpoint = "https://www.googleapis.com/customsearch/v1"

// querySuffix is appended to every search so generic dish names bias
// toward food photography instead of restaurants or recipes pages.
const querySuffix = " dish"

// GoogleFetcher implements Service against the Google Custom Search
// JSON API with image search enabled.
type GoogleFetcher struct {
	client   *http.Client
	endpoint string
	apiKey   string
	cseID    string
}

// searchResponse is the subset of the Custom Search response we read
type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// NewGoogleFetcher creates a new Google Custom Search image fetcher
func NewGoogleFetcher(apiKey, cseID string, timeout time.Duration) Service {
	return newGoogleFetcher(apiKey, cseID, timeout)
}

// newGoogleFetcher creates the concrete implementation
func newGoogleFetcher(apiKey, cseID string, timeout time.Duration) *GoogleFetcher {
	return &GoogleFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		cseID:    cseID,
	}
}

// FetchImageURL performs a single image search for the keyword and
// returns the first result's link
func (f *GoogleFetcher) FetchImageURL(ctx context.Context, keyword string) (string, error) {
	if keyword == "" {
		return "", models.ErrInvalidKeyword
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.searchURL(keyword), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %v", models.ErrFetchTimeout, err)
		}
		return "", fmt.Errorf("failed to query image search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: HTTP %d", models.ErrNoImageFound, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected HTTP status from image search: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := f.readBodyWithLimit(resp.Body, 1024*1024) // 1MB limit
	if err != nil {
		return "", fmt.Errorf("failed to read search response: %w", err)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}

	for _, item := range result.Items {
		if item.Link != "" {
			return item.Link, nil
		}
	}

	return "", models.ErrNoImageFound
}

// searchURL builds the Custom Search request URL for a keyword
func (f *GoogleFetcher) searchURL(keyword string) string {
	params := url.Values{}
	params.Set("key", f.apiKey)
	params.Set("cx", f.cseID)
	params.Set("q", keyword+querySuffix)
	params.Set("searchType", "image")
	params.Set("num", "1")

	return f.endpoint + "?" + params.Encode()
}

// readBodyWithLimit reads the response body with a size limit
func (f *GoogleFetcher) readBodyWithLimit(body io.Reader, maxSize int64) ([]byte, error) {
	limitedReader := io.LimitReader(body, maxSize)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) >= maxSize {
		return nil, fmt.Errorf("search response too large (exceeds %d bytes)", maxSize)
	}

	return data, nil
}
