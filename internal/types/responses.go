package types

import (
	"github.com/pageza/recipeswipe/internal/models"
)

// LoginResponse carries the token pair and the authenticated user
type LoginResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *models.User `json:"user"`
}

// RefreshResponse carries a freshly minted access token
type RefreshResponse struct {
	Access string `json:"access"`
}

// Profile is the body of GET /api/auth/me/
type Profile struct {
	*models.User
	Recipes   []models.Recipe  `json:"recipes"`
	Followers []models.UserRef `json:"followers"`
	Following []models.UserRef `json:"following"`
}

// ImageUploadResponse is returned after a recipe image is stored
type ImageUploadResponse struct {
	ImageURL string `json:"image_url"`
}
