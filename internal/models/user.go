package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can author, swipe and save recipes
type User struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username        string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email           *string   `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	FirstName       string    `gorm:"size:100" json:"firstName"`
	LastName        string    `gorm:"size:100" json:"lastName"`
	ProfileImageURL string    `gorm:"size:512" json:"profileImageUrl"`
	Bio             string    `gorm:"type:text" json:"bio"`
	FollowersCount  int       `gorm:"not null;default:0" json:"followersCount"`
	FollowingCount  int       `gorm:"not null;default:0" json:"followingCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the primary key so sqlite and postgres behave the same
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserRef is the short form used in follower and following lists
type UserRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Ref returns the short form of the user
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username}
}
