package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFollow is a directed edge: FollowerID follows FollowingID
type UserFollow struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_following" json:"followerId"`
	Follower    *User     `gorm:"foreignKey:FollowerID" json:"-"`
	FollowingID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_following;index" json:"followingId"`
	Following   *User     `gorm:"foreignKey:FollowingID" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}

func (f *UserFollow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&RecipeInteraction{},
		&SavedRecipe{},
		&UserFollow{},
	}
}
