// Package mocks holds testify mocks shared by the server and client tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/client"
	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock implementation of service.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PutObject(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

// MockSwipeAPI records the interact and save calls made for each decision
type MockSwipeAPI struct {
	mock.Mock
}

func (m *MockSwipeAPI) Interact(ctx context.Context, recipeID uuid.UUID, liked, superLiked bool) error {
	return m.Called(ctx, recipeID, liked, superLiked).Error(0)
}

func (m *MockSwipeAPI) Save(ctx context.Context, recipeID uuid.UUID) error {
	return m.Called(ctx, recipeID).Error(0)
}

// MockFeedSource serves discover pages
type MockFeedSource struct {
	mock.Mock
}

func (m *MockFeedSource) Discover(ctx context.Context, refresh bool) ([]client.Recipe, error) {
	args := m.Called(ctx, refresh)
	recipes, _ := args.Get(0).([]client.Recipe)
	return recipes, args.Error(1)
}
