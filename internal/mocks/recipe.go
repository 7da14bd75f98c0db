package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/models"
	"github.com/pageza/recipeswipe/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, creatorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	args := m.Called(ctx, creatorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Discover(ctx context.Context, userID uuid.UUID, refresh bool) ([]models.Recipe, error) {
	args := m.Called(ctx, userID, refresh)
	recipes, _ := args.Get(0).([]models.Recipe)
	return recipes, args.Error(1)
}

func (m *MockRecipeService) Interact(ctx context.Context, userID, recipeID uuid.UUID, liked, superLiked bool) (*models.RecipeInteraction, error) {
	args := m.Called(ctx, userID, recipeID, liked, superLiked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecipeInteraction), args.Error(1)
}

func (m *MockRecipeService) Save(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedRecipe), args.Error(1)
}

func (m *MockRecipeService) SavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	args := m.Called(ctx, userID)
	recipes, _ := args.Get(0).([]models.Recipe)
	return recipes, args.Error(1)
}

// MockImageService is a mock implementation of service.IImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, userID, filename, contentType, data)
	return args.String(0), args.Error(1)
}
