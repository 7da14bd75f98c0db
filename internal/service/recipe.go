package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/models"
	"github.com/pageza/recipeswipe/internal/types"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultDiscoverLimit caps the size of a discover feed
const DefaultDiscoverLimit = 50

// RecipeService handles recipe operations
type RecipeService struct {
	db    *gorm.DB
	cache FeedCache
	limit int
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance. A nil cache
// disables feed caching.
func NewRecipeService(db *gorm.DB, cache FeedCache, limit int) *RecipeService {
	if limit <= 0 {
		limit = DefaultDiscoverLimit
	}
	return &RecipeService{
		db:    db,
		cache: cache,
		limit: limit,
	}
}

// CreateRecipe stores a new recipe authored by creatorID
func (s *RecipeService) CreateRecipe(ctx context.Context, creatorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	difficulty, err := models.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, req.Difficulty)
	}

	recipe := &models.Recipe{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		ImageURL:     req.Image(),
		CookTime:     req.CookTimeValue(),
		Servings:     req.Servings,
		Difficulty:   difficulty,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CreatorID:    creatorID,
	}
	recipe.Embedding = models.Embed(recipe.EmbeddingText())

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var creator models.User
		if err := tx.First(&creator, "id = ?", creatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		recipe.Creator = &creator
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[RecipeService] Created recipe %s '%s' by %s", recipe.ID, recipe.Title, creatorID)
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Creator").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Discover returns the candidate recipes for userID: never their own and
// never one they already swiped. The ranked order is cached per user;
// refresh bypasses and replaces the cached entry.
func (s *RecipeService) Discover(ctx context.Context, userID uuid.UUID, refresh bool) ([]models.Recipe, error) {
	if s.cache != nil && !refresh {
		ids, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Printf("[RecipeService] Feed cache read failed for %s: %v", userID, err)
		} else if ok {
			return s.loadFeed(ctx, userID, ids)
		}
	}

	recipes, err := s.rank(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		ids := make([]uuid.UUID, len(recipes))
		for i := range recipes {
			ids[i] = recipes[i].ID
		}
		if err := s.cache.Set(ctx, userID, ids); err != nil {
			log.Printf("[RecipeService] Feed cache write failed for %s: %v", userID, err)
		}
	}
	return recipes, nil
}

func (s *RecipeService) candidates(ctx context.Context, userID uuid.UUID) *gorm.DB {
	swiped := s.db.Model(&models.RecipeInteraction{}).Select("recipe_id").Where("user_id = ?", userID)
	return s.db.WithContext(ctx).
		Preload("Creator").
		Where("recipes.creator_id <> ?", userID).
		Where("recipes.id NOT IN (?)", swiped)
}

// rank orders candidates by distance to the centroid of the user's liked
// recipes on postgres, newest first otherwise.
func (s *RecipeService) rank(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	query := s.candidates(ctx, userID).Limit(s.limit)

	ranked := false
	if s.db.Dialector.Name() == "postgres" {
		var liked []pgvector.Vector
		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
			Joins("JOIN recipe_interactions ON recipe_interactions.recipe_id = recipes.id").
			Where("recipe_interactions.user_id = ?", userID).
			Where("recipe_interactions.liked = ? OR recipe_interactions.super_liked = ?", true, true).
			Pluck("recipes.embedding", &liked).Error; err != nil {
			return nil, fmt.Errorf("failed to load liked embeddings: %w", err)
		}
		if centroid, ok := Centroid(liked); ok {
			query = orderByDistance(query, centroid)
			ranked = true
		}
	}
	if !ranked {
		query = query.Order("recipes.created_at DESC")
	}

	recipes := []models.Recipe{}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	return recipes, nil
}

// orderByDistance sorts nearest to centroid first, newest first among ties.
// Both keys live in one clause: a later Order call would replace it.
func orderByDistance(query *gorm.DB, centroid pgvector.Vector) *gorm.DB {
	return query.Clauses(clause.OrderBy{
		Expression: clause.Expr{
			SQL:  "recipes.embedding <-> ?, recipes.created_at DESC",
			Vars: []interface{}{centroid},
		},
	})
}

// loadFeed resolves cached IDs, dropping anything swiped since the feed was
// ranked, and keeps the cached order.
func (s *RecipeService) loadFeed(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if len(ids) == 0 {
		return recipes, nil
	}

	var found []models.Recipe
	if err := s.candidates(ctx, userID).Where("recipes.id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	byID := make(map[uuid.UUID]models.Recipe, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			recipes = append(recipes, r)
		}
	}
	return recipes, nil
}

// Interact appends one swipe decision. Likes and super-likes both count
// towards the recipe's like counter.
func (s *RecipeService) Interact(ctx context.Context, userID, recipeID uuid.UUID, liked, superLiked bool) (*models.RecipeInteraction, error) {
	interaction := &models.RecipeInteraction{
		UserID:     userID,
		RecipeID:   recipeID,
		Liked:      liked,
		SuperLiked: superLiked,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRecipe(tx, recipeID); err != nil {
			return err
		}
		if err := tx.Create(interaction).Error; err != nil {
			return fmt.Errorf("failed to record interaction: %w", err)
		}
		if liked || superLiked {
			if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
				return fmt.Errorf("failed to update likes count: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return interaction, nil
}

// Save bookmarks a recipe. Repeated saves append repeated rows.
func (s *RecipeService) Save(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error) {
	saved := &models.SavedRecipe{UserID: userID, RecipeID: recipeID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRecipe(tx, recipeID); err != nil {
			return err
		}
		if err := tx.Create(saved).Error; err != nil {
			return fmt.Errorf("failed to save recipe: %w", err)
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
			UpdateColumn("saves_count", gorm.Expr("saves_count + 1")).Error; err != nil {
			return fmt.Errorf("failed to update saves count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// SavedRecipes lists each recipe userID saved once, most recently saved first
func (s *RecipeService) SavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Joins("JOIN (SELECT recipe_id, MAX(created_at) AS saved_at FROM saved_recipes WHERE user_id = ? GROUP BY recipe_id) saves ON saves.recipe_id = recipes.id", userID).
		Order("saves.saved_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved recipes: %w", err)
	}
	return recipes, nil
}

func ensureRecipe(tx *gorm.DB, recipeID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
