// Package integration runs the whole stack against real postgres and redis
// containers and drives it through the swipe client.
package integration

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipeswipe/config"
	"github.com/pageza/recipeswipe/internal/client"
	"github.com/pageza/recipeswipe/internal/deck"
	"github.com/pageza/recipeswipe/internal/feed"
	"github.com/pageza/recipeswipe/internal/reporter"
	"github.com/pageza/recipeswipe/internal/server"
	"github.com/pageza/recipeswipe/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

type stack struct {
	url string
}

func setupStack(t *testing.T) *stack {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupPostgresDatabase(t, migrationsDir())
	rdb := testhelpers.SetupTestRedis(t)

	cfg := &config.Config{
		CORSOrigins:      []string{"http://localhost:5173"},
		JWTSecret:        "integration-secret",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  24 * time.Hour,
		DiscoverLimit:    50,
		DiscoverCacheTTL: time.Minute,
	}
	srv := httptest.NewServer(server.New(cfg, db, rdb, nil).Handler())
	t.Cleanup(srv.Close)
	return &stack{url: srv.URL}
}

func (s *stack) user(t *testing.T, username string) *client.Client {
	t.Helper()
	settings := client.DefaultSettings()
	settings.APIBaseURL = s.url
	settings.RequestsPerSecond = 0
	c := client.New(settings, &client.MemoryTokenStore{})

	ctx := context.Background()
	_, err := c.Register(ctx, client.Registration{Username: username, Password: "password123"})
	require.NoError(t, err)
	_, err = c.Login(ctx, username, "password123")
	require.NoError(t, err)
	return c
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}

func TestSwipeSession(t *testing.T) {
	s := setupStack(t)
	ctx := context.Background()

	chef := s.user(t, "chef")
	for _, title := range []string{"Gumbo", "Jambalaya", "Beignets"} {
		_, err := chef.CreateRecipe(ctx, client.NewRecipe{
			Title:        title,
			Description:  "A New Orleans classic",
			Difficulty:   "medium",
			Ingredients:  "love",
			Instructions: "cook it",
		})
		require.NoError(t, err)
	}

	eater := s.user(t, "eater")
	toasts := noopNotifier{}
	ctrl := feed.New(ctx, feed.Config{
		Source:   eater,
		Reporter: reporter.New(eater, toasts, nil),
		Notifier: toasts,
	})
	defer ctrl.Close()

	require.NoError(t, ctrl.Load())
	require.Equal(t, 3, ctrl.Deck().Len())
	liked := ctrl.Deck().Current().ID

	require.NoError(t, ctrl.Like())
	ctrl.Wait()
	require.NoError(t, ctrl.Pass())
	ctrl.Wait()
	require.NoError(t, ctrl.SuperLike())
	ctrl.Wait()
	assert.Equal(t, deck.Exhausted, ctrl.Deck().State())

	// Everything has been swiped, so a re-ranked feed is empty
	require.NoError(t, ctrl.Refresh())
	assert.Equal(t, deck.Exhausted, ctrl.Deck().State())

	me, err := eater.Me(ctx)
	require.NoError(t, err)
	saved, err := eater.SavedRecipes(ctx, me.ID)
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	recipes, err := eater.UserRecipes(ctx, "chef")
	require.NoError(t, err)
	for _, r := range recipes {
		if r.ID == liked {
			assert.Equal(t, 1, r.LikesCount)
		}
	}
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	s := setupStack(t)
	ctx := context.Background()
	c := s.user(t, "leaver")

	tokens, err := c.Tokens()
	require.NoError(t, err)
	require.NoError(t, c.Logout(ctx))

	// Reuse the revoked access token through a fresh client
	settings := client.DefaultSettings()
	settings.APIBaseURL = s.url
	settings.RequestsPerSecond = 0
	store := &client.MemoryTokenStore{}
	require.NoError(t, store.Save(tokens))
	stale := client.New(settings, store)

	_, err = stale.Discover(ctx, false)
	assert.True(t, client.IsUnauthorized(err))
}
