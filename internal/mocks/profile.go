package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/models"
	"github.com/pageza/recipeswipe/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockProfileService is a mock implementation of service.IProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Me(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Profile), args.Error(1)
}

func (m *MockProfileService) UserRecipes(ctx context.Context, username string) ([]models.Recipe, error) {
	args := m.Called(ctx, username)
	recipes, _ := args.Get(0).([]models.Recipe)
	return recipes, args.Error(1)
}

func (m *MockProfileService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}

func (m *MockProfileService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}
