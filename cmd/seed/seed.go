package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/goccy/go-yaml"
	"gorm.io/gorm"

	"github.com/pageza/recipeswipe/internal/models"
	"github.com/pageza/recipeswipe/internal/service"
	"github.com/pageza/recipeswipe/internal/types"
)

// SeedFile is the layout of a seed fixture
type SeedFile struct {
	Password string       `yaml:"password"`
	Users    []SeedUser   `yaml:"users"`
	Recipes  []SeedRecipe `yaml:"recipes"`
}

type SeedUser struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Bio       string `yaml:"bio"`
}

type SeedRecipe struct {
	Creator      string `yaml:"creator"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	ImageURL     string `yaml:"image_url"`
	CookTime     string `yaml:"cook_time"`
	Servings     string `yaml:"servings"`
	Difficulty   string `yaml:"difficulty"`
	Ingredients  string `yaml:"ingredients"`
	Instructions string `yaml:"instructions"`
}

// ParseSeedFile decodes a YAML fixture
func ParseSeedFile(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.UnmarshalWithOptions(data, &seed, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if seed.Password == "" {
		return nil, errors.New("seed file needs a password for its users")
	}
	return &seed, nil
}

// Seed registers the fixture users and their recipes. Users that already
// exist are reused, so seeding twice only adds recipes again.
func Seed(ctx context.Context, db *gorm.DB, auth service.IAuthService, recipes service.IRecipeService, seed *SeedFile) (int, error) {
	ids := make(map[string]*models.User, len(seed.Users))
	for _, u := range seed.Users {
		user, err := auth.Register(ctx, &types.RegisterRequest{
			Username:  u.Username,
			Password:  seed.Password,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Bio:       u.Bio,
		})
		if errors.Is(err, service.ErrUserExists) {
			var existing models.User
			if err := db.WithContext(ctx).Where("username = ?", u.Username).First(&existing).Error; err != nil {
				return 0, fmt.Errorf("failed to load existing user %s: %w", u.Username, err)
			}
			log.Printf("User %s already exists, reusing", u.Username)
			user = &existing
		} else if err != nil {
			return 0, fmt.Errorf("failed to create user %s: %w", u.Username, err)
		}
		ids[u.Username] = user
	}

	created := 0
	for _, r := range seed.Recipes {
		creator, ok := ids[r.Creator]
		if !ok {
			return created, fmt.Errorf("recipe %q references unknown creator %q", r.Title, r.Creator)
		}
		recipe, err := recipes.CreateRecipe(ctx, creator.ID, &types.CreateRecipeRequest{
			Title:        r.Title,
			Description:  r.Description,
			ImageURL:     r.ImageURL,
			CookTime:     r.CookTime,
			Servings:     r.Servings,
			Difficulty:   r.Difficulty,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
		})
		if err != nil {
			return created, fmt.Errorf("failed to create recipe %q: %w", r.Title, err)
		}
		log.Printf("Successfully created recipe: %s", recipe.Title)
		created++
	}
	return created, nil
}
