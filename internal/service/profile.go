package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/models"
	"github.com/pageza/recipeswipe/internal/types"
	"gorm.io/gorm"
)

// ProfileService handles profiles and the follow graph
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// Me returns the user with their recipes, followers and following
func (s *ProfileService) Me(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	recipes := []models.Recipe{}
	if err := db.Where("creator_id = ?", userID).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	followers := []models.UserRef{}
	if err := db.Model(&models.User{}).
		Select("users.id, users.username").
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.following_id = ?", userID).
		Order("users.username").
		Scan(&followers).Error; err != nil {
		return nil, fmt.Errorf("failed to load followers: %w", err)
	}

	following := []models.UserRef{}
	if err := db.Model(&models.User{}).
		Select("users.id, users.username").
		Joins("JOIN user_follows ON user_follows.following_id = users.id").
		Where("user_follows.follower_id = ?", userID).
		Order("users.username").
		Scan(&following).Error; err != nil {
		return nil, fmt.Errorf("failed to load following: %w", err)
	}

	return &types.Profile{
		User:      &user,
		Recipes:   recipes,
		Followers: followers,
		Following: following,
	}, nil
}

// UserRecipes lists the recipes authored by username, newest first
func (s *ProfileService) UserRecipes(ctx context.Context, username string) ([]models.Recipe, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	recipes := []models.Recipe{}
	if err := db.Preload("Creator").Where("creator_id = ?", user.ID).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Follow creates the follower -> following edge and bumps both counters
func (s *ProfileService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, "id = ?", followingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.UserFollow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyFollowing
		}

		if err := tx.Create(&models.UserFollow{FollowerID: followerID, FollowingID: followingID}).Error; err != nil {
			return fmt.Errorf("failed to create follow: %w", err)
		}
		if err := bumpFollowCounts(tx, followerID, followingID, 1); err != nil {
			return err
		}

		log.Printf("[ProfileService] %s now follows %s", followerID, followingID)
		return nil
	})
}

// Unfollow removes the edge and decrements both counters
func (s *ProfileService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.UserFollow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFollowing
		}
		return bumpFollowCounts(tx, followerID, followingID, -1)
	})
}

func bumpFollowCounts(tx *gorm.DB, followerID, followingID uuid.UUID, delta int) error {
	if err := tx.Model(&models.User{}).Where("id = ?", followerID).
		UpdateColumn("following_count", gorm.Expr("following_count + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to update following count: %w", err)
	}
	if err := tx.Model(&models.User{}).Where("id = ?", followingID).
		UpdateColumn("followers_count", gorm.Expr("followers_count + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to update followers count: %w", err)
	}
	return nil
}
