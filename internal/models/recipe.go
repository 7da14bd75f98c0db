package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Difficulty is the effort level a recipe's author assigns it
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates s, treating the empty string as the default
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case "":
		return DifficultyEasy, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("invalid difficulty %q", s)
	}
}

// EmbeddingDims is the width of the recipe embedding column
const EmbeddingDims = 8

type Recipe struct {
	ID           uuid.UUID       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	ImageURL     string          `gorm:"size:1024" json:"imageUrl"`
	CookTime     string          `gorm:"size:50" json:"cookTime"`
	Servings     string          `gorm:"size:50" json:"servings"`
	Difficulty   Difficulty      `gorm:"size:10;not null;default:'easy';check:chk_recipes_difficulty,difficulty IN ('easy','medium','hard')" json:"difficulty"`
	Ingredients  string          `gorm:"type:text;not null" json:"ingredients"`
	Instructions string          `gorm:"type:text;not null" json:"instructions"`
	CreatorID    uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"creatorId"`
	Creator      *User           `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	LikesCount   int             `gorm:"not null;default:0" json:"likesCount"`
	SavesCount   int             `gorm:"not null;default:0" json:"savesCount"`
	Embedding    pgvector.Vector `gorm:"type:vector(8)" json:"-"`
	CreatedAt    time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Difficulty == "" {
		r.Difficulty = DifficultyEasy
	}
	if len(r.Embedding.Slice()) == 0 {
		r.Embedding = Embed(r.EmbeddingText())
	}
	return nil
}

// EmbeddingText is the text the recipe's embedding is computed from
func (r *Recipe) EmbeddingText() string {
	return r.Title + " " + r.Description + " " + r.Ingredients
}
