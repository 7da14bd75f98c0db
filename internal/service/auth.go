package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/models"
	"github.com/pageza/recipeswipe/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db         *gorm.DB
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	denyList   TokenDenyList
	now        func() time.Time
}

// Ensure AuthService implements IAuthService
var _ IAuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, jwtSecret string, accessTTL, refreshTTL time.Duration, denyList TokenDenyList) *AuthService {
	if denyList == nil {
		denyList = NewMemoryDenyList()
	}
	return &AuthService{
		db:         db,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		denyList:   denyList,
		now:        time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)

	// Check if user already exists
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	var email *string
	if e := strings.TrimSpace(req.Email); e != "" {
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", e).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			return nil, ErrUserExists
		}
		email = &e
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:        username,
		Email:           email,
		PasswordHash:    string(hashedPassword),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AuthService] Registered user %s (%s)", user.Username, user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*types.LoginResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.GenerateToken(&user, types.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := s.GenerateToken(&user, types.RefreshToken)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{Access: access, Refresh: refresh, User: &user}, nil
}

// Refresh exchanges a valid refresh token for a new access token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parse(ctx, refreshToken, types.RefreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return s.GenerateToken(user, types.AccessToken)
}

// GenerateToken signs a token of the given type for user
func (s *AuthService) GenerateToken(user *models.User, typ types.TokenType) (string, error) {
	ttl := s.accessTTL
	if typ == types.RefreshToken {
		ttl = s.refreshTTL
	}

	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: typ,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken accepts only unrevoked access tokens
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	return s.parse(ctx, tokenString, types.AccessToken)
}

func (s *AuthService) parse(ctx context.Context, tokenString string, want types.TokenType) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != want || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.denyList.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	if claims == nil || claims.ID == "" {
		return ErrInvalidToken
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.denyList.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return err
	}
	log.Printf("[AuthService] User %s logged out", claims.Username)
	return nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
