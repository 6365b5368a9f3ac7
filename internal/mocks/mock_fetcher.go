package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of fetcher.Service
type MockFetcher struct {
	mock.Mock
}

// FetchImageURL mocks the FetchImageURL method of fetcher.Service
func (m *MockFetcher) FetchImageURL(ctx context.Context, keyword string) (string, error) {
	args := m.Called(ctx, keyword)
	return args.String(0), args.Error(1)
}
