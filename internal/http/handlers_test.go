package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"MenuImage_API/internal/mocks"
	"MenuImage_API/internal/models"

	httpMocks "MenuImage_API/internal/http/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newRelaxedLogger returns a logger mock that accepts any logging call.
// Handler tests assert on status codes and bodies, not on log traffic.
func newRelaxedLogger() *mocks.MockLogger {
	mockLogger := &mocks.MockLogger{}
	mockLogger.On("LogInfo", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	mockLogger.On("LogSuccess", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	mockLogger.On("LogError", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	return mockLogger
}

func strPtr(s string) *string {
	return &s
}

func TestHandler_ResolveSingleKeyword_Success(t *testing.T) {
	// Arrange
	mockService := &httpMocks.MockResolveService{}
	mockLogger := &mocks.MockLogger{}

	handler := NewHandler(mockService, nil, mockLogger, 10<<20)

	expectedResult := &models.ImageResult{
		Keyword:  "pizza margherita",
		ImageURL: strPtr("https://img.example.com/pizza.jpg"),
		Cached:   true,
	}

	// Setup mocks
	mockLogger.On("LogInfo", mock.Anything, "resolve_keyword", mock.AnythingOfType("string"), mock.Anything).Return()
	mockService.On("ResolveKeyword", mock.Anything, "Pizza Margherita").Return(expectedResult, nil)
	mockLogger.On("LogSuccess", mock.Anything, "resolve_keyword", "pizza margherita", "Successfully resolved keyword", mock.Anything).Return()

	// Create request with Gorilla Mux context
	req := httptest.NewRequest(http.MethodGet, "/api/image/Pizza%20Margherita", nil)
	req = mux.SetURLVars(req, map[string]string{"keyword": "Pizza Margherita"})

	w := httptest.NewRecorder()

	// Act
	handler.ResolveSingleKeyword(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response models.ImageResult
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "pizza margherita", response.Keyword)
	require.NotNil(t, response.ImageURL)
	assert.Equal(t, "https://img.example.com/pizza.jpg", *response.ImageURL)
	assert.True(t, response.Cached)

	// Verify mocks
	mockService.AssertExpectations(t)
	mockLogger.AssertExpectations(t)
}

func TestHandler_ResolveSingleKeyword_InvalidKeyword(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	mockService.On("ResolveKeyword", mock.Anything, "!!").
		Return(&models.ImageResult{Keyword: "!!"}, models.ErrInvalidKeyword)

	req := httptest.NewRequest(http.MethodGet, "/api/image/!!", nil)
	req = mux.SetURLVars(req, map[string]string{"keyword": "!!"})
	w := httptest.NewRecorder()

	handler.ResolveSingleKeyword(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Error)
}

func TestHandler_ResolveSingleKeyword_NoImage(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	mockService.On("ResolveKeyword", mock.Anything, "unknown dish").
		Return(&models.ImageResult{Keyword: "unknown dish", ImageURL: nil}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/image/unknown%20dish", nil)
	req = mux.SetURLVars(req, map[string]string{"keyword": "unknown dish"})
	w := httptest.NewRecorder()

	handler.ResolveSingleKeyword(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ResolveSingleKeyword_MissingKeyword(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/image/", nil)
	req = mux.SetURLVars(req, map[string]string{})
	w := httptest.NewRecorder()

	handler.ResolveSingleKeyword(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ResolveKeyword")
}

func TestHandler_ResolveBatchKeywords_Success(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	expectedResponse := &models.BatchResolveResponse{
		Results: []models.ImageResult{
			{Keyword: "pizza", ImageURL: strPtr("https://img.example.com/pizza.jpg")},
			{Keyword: "sushi", ImageURL: strPtr("https://img.example.com/sushi.jpg")},
		},
		Summary:   models.BatchSummary{Total: 2, Resolved: 2, Missing: 0},
		Timestamp: time.Now().UTC(),
	}

	mockService.On("ResolveKeywords", mock.Anything, []string{"Pizza", "Sushi"}).Return(expectedResponse, nil)

	body, _ := json.Marshal(models.BatchResolveRequest{Keywords: []string{"Pizza", "Sushi"}})
	req := httptest.NewRequest(http.MethodPost, "/api/batch-images", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ResolveBatchKeywords(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.BatchResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Summary.Resolved)
	assert.Len(t, response.Results, 2)

	mockService.AssertExpectations(t)
}

func TestHandler_ResolveBatchKeywords_PartialSuccess(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	partialResponse := &models.BatchResolveResponse{
		Results: []models.ImageResult{
			{Keyword: "pizza", ImageURL: strPtr("https://img.example.com/pizza.jpg")},
			{Keyword: "unknown dish", ImageURL: nil},
		},
		Summary:   models.BatchSummary{Total: 2, Resolved: 1, Missing: 1},
		Timestamp: time.Now().UTC(),
	}

	mockService.On("ResolveKeywords", mock.Anything, mock.Anything).Return(partialResponse, nil)

	body, _ := json.Marshal(models.BatchResolveRequest{Keywords: []string{"pizza", "unknown dish"}})
	req := httptest.NewRequest(http.MethodPost, "/api/batch-images", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.ResolveBatchKeywords(w, req)

	// Partial resolution reports 207 Multi-Status
	assert.Equal(t, http.StatusMultiStatus, w.Code)
}

func TestHandler_ResolveBatchKeywords_NothingResolved(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	emptyResponse := &models.BatchResolveResponse{
		Results: []models.ImageResult{
			{Keyword: "unknown one", ImageURL: nil},
			{Keyword: "unknown two", ImageURL: nil},
		},
		Summary:   models.BatchSummary{Total: 2, Resolved: 0, Missing: 2},
		Timestamp: time.Now().UTC(),
	}

	mockService.On("ResolveKeywords", mock.Anything, mock.Anything).Return(emptyResponse, nil)

	body, _ := json.Marshal(models.BatchResolveRequest{Keywords: []string{"unknown one", "unknown two"}})
	req := httptest.NewRequest(http.MethodPost, "/api/batch-images", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.ResolveBatchKeywords(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ResolveBatchKeywords_InvalidJSON(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/batch-images", strings.NewReader(`{"keywords": [broken`))
	w := httptest.NewRecorder()

	handler.ResolveBatchKeywords(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ResolveKeywords")
}

func TestHandler_ResolveBatchKeywords_RejectedBatch(t *testing.T) {
	tests := []struct {
		name           string
		serviceError   error
		expectedStatus int
	}{
		{"empty batch", models.ErrBatchEmpty, http.StatusBadRequest},
		{"batch too large", models.ErrBatchTooLarge, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &httpMocks.MockResolveService{}
			handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

			mockService.On("ResolveKeywords", mock.Anything, mock.Anything).Return(nil, tt.serviceError)

			body, _ := json.Marshal(models.BatchResolveRequest{Keywords: []string{}})
			req := httptest.NewRequest(http.MethodPost, "/api/batch-images", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.ResolveBatchKeywords(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

// newMenuUploadRequest builds a multipart request carrying an image file
func newMenuUploadRequest(t *testing.T, fieldName string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, "menu.jpg")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/menu/analyze", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandler_AnalyzeMenu_Success(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	mockAnalyzer := &mocks.MockAnalyzer{}
	handler := NewHandler(mockService, mockAnalyzer, newRelaxedLogger(), 10<<20)

	extractedItems := []models.MenuItem{
		{Name: "Caesar Salad", Keyword: "caesar salad", Description: "null", Price: "$9.00"},
	}
	menuResponse := &models.MenuAnalysisResponse{
		Items: []models.MenuItemResult{
			{MenuItem: extractedItems[0], ImageURL: strPtr("https://img.example.com/caesar.jpg")},
		},
		Summary:   models.BatchSummary{Total: 1, Resolved: 1},
		Timestamp: time.Now().UTC(),
	}

	imageBytes := []byte("fake-jpeg-bytes")
	mockAnalyzer.On("AnalyzeImage", mock.Anything, imageBytes, mock.Anything).Return(extractedItems, nil)
	mockService.On("ResolveMenuItems", mock.Anything, extractedItems).Return(menuResponse, nil)

	req := newMenuUploadRequest(t, "image", imageBytes)
	w := httptest.NewRecorder()

	handler.AnalyzeMenu(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.MenuAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Items, 1)
	assert.Equal(t, "Caesar Salad", response.Items[0].Name)
	require.NotNil(t, response.Items[0].ImageURL)
	assert.Equal(t, "https://img.example.com/caesar.jpg", *response.Items[0].ImageURL)

	mockAnalyzer.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestHandler_AnalyzeMenu_MissingImageField(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	mockAnalyzer := &mocks.MockAnalyzer{}
	handler := NewHandler(mockService, mockAnalyzer, newRelaxedLogger(), 10<<20)

	req := newMenuUploadRequest(t, "wrong_field", []byte("bytes"))
	w := httptest.NewRecorder()

	handler.AnalyzeMenu(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAnalyzer.AssertNotCalled(t, "AnalyzeImage")
}

func TestHandler_AnalyzeMenu_NotMultipart(t *testing.T) {
	handler := NewHandler(&httpMocks.MockResolveService{}, &mocks.MockAnalyzer{}, newRelaxedLogger(), 10<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/menu/analyze", strings.NewReader(`{"not":"multipart"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.AnalyzeMenu(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_AnalyzeMenu_AnalyzerFailure(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	mockAnalyzer := &mocks.MockAnalyzer{}
	handler := NewHandler(mockService, mockAnalyzer, newRelaxedLogger(), 10<<20)

	mockAnalyzer.On("AnalyzeImage", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, models.ErrMenuAnalysisFailed)

	req := newMenuUploadRequest(t, "image", []byte("unreadable"))
	w := httptest.NewRecorder()

	handler.AnalyzeMenu(w, req)

	// Extraction collaborator failures surface as a bad gateway
	assert.Equal(t, http.StatusBadGateway, w.Code)
	mockService.AssertNotCalled(t, "ResolveMenuItems")
}

func TestHandler_AnalyzeMenu_UploadTooLarge(t *testing.T) {
	handler := NewHandler(&httpMocks.MockResolveService{}, &mocks.MockAnalyzer{}, newRelaxedLogger(), 64)

	req := newMenuUploadRequest(t, "image", bytes.Repeat([]byte("x"), 1024))
	w := httptest.NewRecorder()

	handler.AnalyzeMenu(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ClearCache_Success(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	mockService.On("ClearCache", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/cache", nil)
	w := httptest.NewRecorder()

	handler.ClearCache(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestHandler_ClearCache_Failure(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	mockService.On("ClearCache", mock.Anything).Return(errors.New("store unavailable"))

	req := httptest.NewRequest(http.MethodDelete, "/api/cache", nil)
	w := httptest.NewRecorder()

	handler.ClearCache(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_HealthCheck(t *testing.T) {
	handler := NewHandler(&httpMocks.MockResolveService{}, nil, newRelaxedLogger(), 10<<20)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.HealthCheck(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.NotEmpty(t, response.Version)
}

func TestHandler_ResponsesCarryRequestID(t *testing.T) {
	mockService := &httpMocks.MockResolveService{}
	handler := NewHandler(mockService, nil, newRelaxedLogger(), 10<<20)

	mockService.On("ResolveKeyword", mock.Anything, "pizza").
		Return(&models.ImageResult{Keyword: "pizza", ImageURL: strPtr("https://img.example.com/p.jpg")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/image/pizza", nil)
	req = mux.SetURLVars(req, map[string]string{"keyword": "pizza"})
	w := httptest.NewRecorder()

	handler.ResolveSingleKeyword(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}