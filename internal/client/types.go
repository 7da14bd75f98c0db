package client

import (
	"time"

	"github.com/google/uuid"
)

// User is the public part of an account as the API returns it
type User struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           *string   `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Bio             string    `json:"bio"`
	ProfileImageURL string    `json:"profileImageUrl"`
	FollowersCount  int       `json:"followersCount"`
	FollowingCount  int       `json:"followingCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type UserRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Recipe is a card in the discover feed
type Recipe struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	CookTime     string    `json:"cookTime"`
	Servings     string    `json:"servings"`
	Difficulty   string    `json:"difficulty"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	CreatorID    uuid.UUID `json:"creatorId"`
	Creator      *User     `json:"creator,omitempty"`
	LikesCount   int       `json:"likesCount"`
	SavesCount   int       `json:"savesCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the signed-in user with their recipes and social graph
type Profile struct {
	User
	Recipes   []Recipe  `json:"recipes"`
	Followers []UserRef `json:"followers"`
	Following []UserRef `json:"following"`
}

type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user"`
}

type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// NewRecipe is posted to the create endpoint with the web form's field names
type NewRecipe struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url,omitempty"`
	CookTime     string `json:"cook_time,omitempty"`
	Servings     string `json:"servings,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}
