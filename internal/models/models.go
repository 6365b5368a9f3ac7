package models

import (
	"time"
)

// ImageResult represents the resolution outcome for a single keyword
type ImageResult struct {
	Keyword  string  `json:"keyword"`
	ImageURL *string `json:"image_url"`
	Cached   bool    `json:"cached"`
}

// CacheEntry represents a single row in the image cache store
type CacheEntry struct {
	Keyword   string    `json:"keyword"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// MenuItem represents one dish extracted from a photographed menu.
// Keyword defaults to Name and Description to the "null" sentinel when
// the extraction collaborator leaves them out.
type MenuItem struct {
	Name        string `json:"name"`
	Keyword     string `json:"keyword"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// MenuItemResult pairs a validated menu item with its resolved image
type MenuItemResult struct {
	MenuItem
	ImageURL *string `json:"image_url"`
}

// BatchResolveRequest represents a request for resolving multiple keywords
type BatchResolveRequest struct {
	Keywords []string `json:"keywords"`
}

// BatchSummary provides summary statistics for batch operations
type BatchSummary struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Missing  int `json:"missing"`
}

// BatchResolveResponse represents the response for batch resolution.
// Results preserve the order of the requested keywords.
type BatchResolveResponse struct {
	Results   []ImageResult `json:"results"`
	Summary   BatchSummary  `json:"summary"`
	Timestamp time.Time     `json:"timestamp"`
}

// MenuAnalysisResponse represents the response for a menu photo upload
type MenuAnalysisResponse struct {
	Items     []MenuItemResult `json:"items"`
	Summary   BatchSummary     `json:"summary"`
	Timestamp time.Time        `json:"timestamp"`
}

// LogSeverity represents the severity level of a log entry
type LogSeverity string

const (
	LogSeverityLow    LogSeverity = "low"
	LogSeverityMedium LogSeverity = "medium"
	LogSeverityHigh   LogSeverity = "high"
)

// ProcessType represents the type of process that created the log
type ProcessType string

const (
	ProcessTypeRequest  ProcessType = "request"
	ProcessTypeInternal ProcessType = "internal"
)

// LogEvent represents a process-specific logging context
type LogEvent struct {
	ProcessID   string      `json:"process_id"`
	ProcessType ProcessType `json:"process_type"`
	StartTime   time.Time   `json:"start_time"`
	ClientIP    string      `json:"client_ip,omitempty"`
}

// LogEntry represents a structured log entry for database storage
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    LogSeverity            `json:"severity,omitempty"`
	Message     string                 `json:"message"`
	Operation   string                 `json:"operation"`
	Keyword     string                 `json:"keyword,omitempty"`
	ProcessID   string                 `json:"process_id"`
	ProcessType ProcessType            `json:"process_type"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
