package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes short-lived access tokens from refresh tokens
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	TokenType TokenType `json:"typ"`
}

// GetExpirationTime implements jwt.Claims
func (c *TokenClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return c.RegisteredClaims.GetExpirationTime()
}

// GetSubject implements jwt.Claims
func (c *TokenClaims) GetSubject() (string, error) {
	return c.RegisteredClaims.GetSubject()
}
