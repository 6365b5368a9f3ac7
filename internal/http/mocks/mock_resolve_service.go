package mocks

import (
	"context"

	"MenuImage_API/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockResolveService is a mock implementation of resolver.ResolveService
type MockResolveService struct {
	mock.Mock
}

// ResolveKeyword mocks the ResolveKeyword method of resolver.ResolveService
func (m *MockResolveService) ResolveKeyword(ctx context.Context, raw string) (*models.ImageResult, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImageResult), args.Error(1)
}

// ResolveKeywords mocks the ResolveKeywords method of resolver.ResolveService
func (m *MockResolveService) ResolveKeywords(ctx context.Context, raws []string) (*models.BatchResolveResponse, error) {
	args := m.Called(ctx, raws)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatchResolveResponse), args.Error(1)
}

// ResolveMenuItems mocks the ResolveMenuItems method of resolver.ResolveService
func (m *MockResolveService) ResolveMenuItems(ctx context.Context, items []models.MenuItem) (*models.MenuAnalysisResponse, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuAnalysisResponse), args.Error(1)
}

// ClearCache mocks the ClearCache method of resolver.ResolveService
func (m *MockResolveService) ClearCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
