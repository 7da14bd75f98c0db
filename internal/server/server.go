package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipeswipe/config"
	"github.com/pageza/recipeswipe/internal/api"
	"github.com/pageza/recipeswipe/internal/database"
	"github.com/pageza/recipeswipe/internal/middleware"
	"github.com/pageza/recipeswipe/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	http    *http.Server
	db      *gorm.DB
	auth    *service.AuthService
	profile *service.ProfileService
	recipe  *service.RecipeService
}

// New wires the services onto a gin router. rdb and store may be nil:
// without redis the token deny-list, feed cache and rate limiters are kept
// in process, and without a store image uploads answer 503.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, store service.ObjectStore) *Server {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		gin.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSOrigins),
	)
	router.NoRoute(middleware.NotFound())

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, service.NewTokenDenyList(rdb))
	profile := service.NewProfileService(db)
	recipe := service.NewRecipeService(db, service.NewFeedCache(rdb, cfg.DiscoverCacheTTL), cfg.DiscoverLimit)

	if store == nil {
		log.Printf("[Server] Image storage not configured, uploads are disabled")
	}

	api.RegisterRoutes(router, api.Dependencies{
		Auth:            auth,
		Profile:         profile,
		Recipe:          recipe,
		Image:           service.NewImageService(store),
		CreateLimiter:   middleware.NewLimiter(rdb, middleware.RecipeCreationLimit),
		InteractLimiter: middleware.NewLimiter(rdb, middleware.InteractionLimit),
		Ping: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	})

	return &Server{
		router:  router,
		db:      db,
		auth:    auth,
		profile: profile,
		recipe:  recipe,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr and blocks until the server stops or ctx is cancelled.
// Cancelling ctx triggers a graceful shutdown with a 5 second deadline.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s", addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("[Server] Shutting down")
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
