package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeInteraction is one swipe decision. Rows are never updated or
// deduplicated; a recipe shown twice produces two rows.
type RecipeInteraction struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
	RecipeID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeId"`
	Recipe     *Recipe   `gorm:"foreignKey:RecipeID" json:"-"`
	Liked      bool      `gorm:"not null" json:"liked"`
	SuperLiked bool      `gorm:"not null;default:false" json:"superLiked"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (RecipeInteraction) TableName() string {
	return "recipe_interactions"
}

func (i *RecipeInteraction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// SavedRecipe is a bookmark. Append-only, like interactions.
type SavedRecipe struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeId"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}

func (s *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
