package mocks

import (
	"context"

	"MenuImage_API/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockAnalyzer is a mock implementation of menu.Analyzer
type MockAnalyzer struct {
	mock.Mock
}

// AnalyzeImage mocks the AnalyzeImage method of menu.Analyzer
func (m *MockAnalyzer) AnalyzeImage(ctx context.Context, image []byte, mimeType string) ([]models.MenuItem, error) {
	args := m.Called(ctx, image, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}
