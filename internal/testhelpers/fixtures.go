package testhelpers

import (
	"testing"

	"github.com/pageza/recipeswipe/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every user CreateTestUser makes
const TestPassword = "password123"

// CreateTestUser inserts a user whose password is TestPassword
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestRecipe inserts a recipe authored by creator
func CreateTestRecipe(t *testing.T, db *gorm.DB, creator *models.User, title string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:        title,
		Description:  "A test recipe called " + title,
		CookTime:     "20 minutes",
		Servings:     "2",
		Difficulty:   models.DifficultyEasy,
		Ingredients:  "flour\nwater\nsalt",
		Instructions: "Mix.\nBake.",
		CreatorID:    creator.ID,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}
