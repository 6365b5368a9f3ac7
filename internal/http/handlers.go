package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"MenuImage_API/internal/logger"
	"MenuImage_API/internal/menu"
	"MenuImage_API/internal/models"
	"MenuImage_API/internal/resolver"

	"github.com/gorilla/mux"
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	resolveService resolver.ResolveService
	menuAnalyzer   menu.Analyzer
	logger         logger.Service
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler
func NewHandler(
	resolveService resolver.ResolveService,
	menuAnalyzer menu.Analyzer,
	logger logger.Service,
	maxUploadBytes int64,
) *Handler {
	return &Handler{
		resolveService: resolveService,
		menuAnalyzer:   menuAnalyzer,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// writeJSONResponse writes a JSON response with standard headers including X-Request-ID
func (h *Handler) writeJSONResponse(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) error {
	// Extract LogEvent from context to get ProcessID for X-Request-ID header
	logEvent := logger.GetLogEvent(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// ResolveSingleKeyword handles GET /api/image/{keyword}
func (h *Handler) ResolveSingleKeyword(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	vars := mux.Vars(r)
	rawKeyword := vars["keyword"]
	if rawKeyword == "" {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "keyword is required", "")
		return
	}

	h.logger.LogInfo(ctx, logger.OpResolveKeyword, fmt.Sprintf("Resolving keyword: %q", rawKeyword), map[string]interface{}{
		"keyword": rawKeyword,
	})

	result, err := h.resolveService.ResolveKeyword(ctx, rawKeyword)
	if err != nil {
		h.logger.LogError(ctx, logger.OpResolveKeyword, rawKeyword, "Keyword resolution rejected", err, models.LogSeverityLow, nil)
		h.writeErrorResponse(w, r, h.getStatusCodeForError(err), "resolution failed", err.Error())
		return
	}

	if result.ImageURL == nil {
		h.writeErrorResponse(w, r, http.StatusNotFound, "no image found", fmt.Sprintf("no image found for keyword %q", result.Keyword))
		return
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, result); err != nil {
		// Response already sent with 200, but log the encoding error
		h.logger.LogError(ctx, logger.OpResolveKeyword, result.Keyword, "Failed to encode response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogSuccess(ctx, logger.OpResolveKeyword, result.Keyword, "Successfully resolved keyword", nil)
}

// ResolveBatchKeywords handles POST /api/batch-images
func (h *Handler) ResolveBatchKeywords(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	var request models.BatchResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.LogError(ctx, logger.OpBatchResolve, "", "Invalid request body", err, models.LogSeverityLow, nil)
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.logger.LogInfo(ctx, logger.OpBatchResolve, fmt.Sprintf("Starting batch resolution for %d keywords", len(request.Keywords)), map[string]interface{}{
		"keywords_count": len(request.Keywords),
	})

	response, err := h.resolveService.ResolveKeywords(ctx, request.Keywords)
	if err != nil {
		h.logger.LogError(ctx, logger.OpBatchResolve, "", "Batch resolution rejected", err, models.LogSeverityLow, nil)
		h.writeErrorResponse(w, r, h.getStatusCodeForError(err), "batch resolution failed", err.Error())
		return
	}

	statusCode := h.getBatchStatusCode(response.Summary)

	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		h.logger.LogError(ctx, logger.OpBatchResolve, "", "Failed to encode batch response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogSuccess(ctx, logger.OpBatchResolve, "", fmt.Sprintf("Completed batch resolution: %d resolved, %d missing", response.Summary.Resolved, response.Summary.Missing), map[string]interface{}{
		"total":    response.Summary.Total,
		"resolved": response.Summary.Resolved,
		"missing":  response.Summary.Missing,
	})
}

// AnalyzeMenu handles POST /api/menu/analyze
func (h *Handler) AnalyzeMenu(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid upload", err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "image file is required", err.Error())
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "failed to read image", err.Error())
		return
	}

	h.logger.LogInfo(ctx, logger.OpMenuAnalysis, "Analyzing uploaded menu photo", map[string]interface{}{
		"filename":   header.Filename,
		"size_bytes": len(image),
	})

	items, err := h.menuAnalyzer.AnalyzeImage(ctx, image, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.LogError(ctx, logger.OpMenuAnalysis, "", "Menu analysis failed", err, models.LogSeverityMedium, nil)
		h.writeErrorResponse(w, r, http.StatusBadGateway, "menu analysis failed", err.Error())
		return
	}

	response, err := h.resolveService.ResolveMenuItems(ctx, items)
	if err != nil {
		h.logger.LogError(ctx, logger.OpMenuAnalysis, "", "Failed to resolve menu item images", err, models.LogSeverityMedium, nil)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "menu resolution failed", err.Error())
		return
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		h.logger.LogError(ctx, logger.OpMenuAnalysis, "", "Failed to encode menu response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogSuccess(ctx, logger.OpMenuAnalysis, "", fmt.Sprintf("Analyzed menu with %d items", response.Summary.Total), map[string]interface{}{
		"items":    response.Summary.Total,
		"resolved": response.Summary.Resolved,
	})
}

// ClearCache handles DELETE /api/cache
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	if err := h.resolveService.ClearCache(ctx); err != nil {
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "failed to clear cache", err.Error())
		return
	}

	logEvent := logger.GetLogEvent(ctx)
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		h.logger.LogError(ctx, logger.OpHealthCheck, "", "Failed to encode health response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogInfo(ctx, logger.OpHealthCheck, "Health check performed successfully", nil)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, error, message string) {
	response := ErrorResponse{
		Error:     error,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	// Use centralized response function to ensure consistent headers including X-Request-ID
	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		h.logger.LogError(r.Context(), "response_encoding", "", "Failed to encode error response", err, models.LogSeverityLow, nil)
	}
}

// getStatusCodeForError determines the appropriate HTTP status code for an error
func (h *Handler) getStatusCodeForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidKeyword),
		errors.Is(err, models.ErrBatchEmpty),
		errors.Is(err, models.ErrBatchTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNoImageFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrFetchTimeout):
		return http.StatusRequestTimeout
	case errors.Is(err, models.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// getBatchStatusCode determines the status code for batch responses
func (h *Handler) getBatchStatusCode(summary models.BatchSummary) int {
	if summary.Missing == 0 {
		// Every keyword resolved
		return http.StatusOK
	} else if summary.Resolved == 0 {
		// Nothing resolved
		return http.StatusNotFound
	} else {
		// Partial success - use 207 Multi-Status
		return http.StatusMultiStatus
	}
}
