package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/models"
	"github.com/pageza/recipeswipe/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*types.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for profile and social graph operations
type IProfileService interface {
	Me(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	UserRecipes(ctx context.Context, username string) ([]models.Recipe, error)
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, creatorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	Discover(ctx context.Context, userID uuid.UUID, refresh bool) ([]models.Recipe, error)
	Interact(ctx context.Context, userID, recipeID uuid.UUID, liked, superLiked bool) (*models.RecipeInteraction, error)
	Save(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error)
	SavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error)
}

// ObjectStore persists uploaded objects and returns their public URL.
// *config.S3Config satisfies it.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
