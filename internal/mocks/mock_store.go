package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of store.Service
type MockStore struct {
	mock.Mock
}

// Get mocks the Get method of store.Service
func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// Put mocks the Put method of store.Service
func (m *MockStore) Put(ctx context.Context, key, url string) error {
	args := m.Called(ctx, key, url)
	return args.Error(0)
}

// Clear mocks the Clear method of store.Service
func (m *MockStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks the Close method of store.Service
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
