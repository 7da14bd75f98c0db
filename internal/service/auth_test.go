package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/recipeswipe/internal/service"
	"github.com/pageza/recipeswipe/internal/testhelpers"
	"github.com/pageza/recipeswipe/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *service.AuthService) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret", 24*time.Hour, 7*24*time.Hour, service.NewMemoryDenyList())
	return db, authSvc
}

func TestRegister(t *testing.T) {
	_, authSvc := setupAuthTest(t)
	ctx := context.Background()

	user, err := authSvc.Register(ctx, &types.RegisterRequest{
		Username:  "tester",
		Password:  "password123",
		Email:     "t@example.com",
		FirstName: "Tess",
	})
	require.NoError(t, err)
	assert.Equal(t, "tester", user.Username)
	require.NotNil(t, user.Email)
	assert.Equal(t, "t@example.com", *user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// Duplicate username
	_, err = authSvc.Register(ctx, &types.RegisterRequest{Username: "tester", Password: "password123"})
	assert.ErrorIs(t, err, service.ErrUserExists)

	// Duplicate email
	_, err = authSvc.Register(ctx, &types.RegisterRequest{Username: "other", Password: "password123", Email: "t@example.com"})
	assert.ErrorIs(t, err, service.ErrUserExists)

	// Email is optional, and several users may omit it
	_, err = authSvc.Register(ctx, &types.RegisterRequest{Username: "noemail1", Password: "password123"})
	require.NoError(t, err)
	_, err = authSvc.Register(ctx, &types.RegisterRequest{Username: "noemail2", Password: "password123"})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	db, authSvc := setupAuthTest(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "chef")

	resp, err := authSvc.Login(ctx, "chef", testhelpers.TestPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := authSvc.ValidateToken(ctx, resp.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "chef", claims.Username)
	assert.Equal(t, types.AccessToken, claims.TokenType)

	_, err = authSvc.Login(ctx, "chef", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authSvc.Login(ctx, "nobody", testhelpers.TestPassword)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRefreshTokenCannotAuthenticate(t *testing.T) {
	db, authSvc := setupAuthTest(t)
	ctx := context.Background()
	testhelpers.CreateTestUser(t, db, "chef")

	resp, err := authSvc.Login(ctx, "chef", testhelpers.TestPassword)
	require.NoError(t, err)

	_, err = authSvc.ValidateToken(ctx, resp.Refresh)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	access, err := authSvc.Refresh(ctx, resp.Refresh)
	require.NoError(t, err)
	_, err = authSvc.ValidateToken(ctx, access)
	assert.NoError(t, err)

	_, err = authSvc.Refresh(ctx, resp.Access)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	db, authSvc := setupAuthTest(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "chef")

	other := service.NewAuthService(db, "another-secret", time.Hour, time.Hour, nil)
	token, err := other.GenerateToken(user, types.AccessToken)
	require.NoError(t, err)

	_, err = authSvc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = authSvc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "chef")

	authSvc := service.NewAuthService(db, "test-secret", -time.Minute, time.Hour, nil)
	token, err := authSvc.GenerateToken(user, types.AccessToken)
	require.NoError(t, err)

	_, err = authSvc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	db, authSvc := setupAuthTest(t)
	ctx := context.Background()
	testhelpers.CreateTestUser(t, db, "chef")

	resp, err := authSvc.Login(ctx, "chef", testhelpers.TestPassword)
	require.NoError(t, err)
	claims, err := authSvc.ValidateToken(ctx, resp.Access)
	require.NoError(t, err)

	require.NoError(t, authSvc.Logout(ctx, claims))

	_, err = authSvc.ValidateToken(ctx, resp.Access)
	assert.ErrorIs(t, err, service.ErrTokenRevoked)
}

func TestGetUserByID(t *testing.T) {
	db, authSvc := setupAuthTest(t)
	user := testhelpers.CreateTestUser(t, db, "chef")

	found, err := authSvc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "chef", found.Username)
}
