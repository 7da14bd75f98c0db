package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipeswipe/internal/middleware"
	"github.com/pageza/recipeswipe/internal/service"
)

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Auth    service.IAuthService
	Profile service.IProfileService
	Recipe  service.IRecipeService
	Image   service.IImageService

	// Nil limiters disable rate limiting on their routes
	CreateLimiter   middleware.Limiter
	InteractLimiter middleware.Limiter

	// Ping reports database health; nil skips the check
	Ping func(ctx context.Context) error
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	health := HealthCheck(deps.Ping)
	router.GET("/health", health)

	api := router.Group("/api")
	api.GET("/health", health)

	authHandler := NewAuthHandler(deps.Auth, deps.Profile)
	recipeHandler := NewRecipeHandler(deps.Recipe, deps.Image)
	profileHandler := NewProfileHandler(deps.Profile)

	auth := api.Group("/auth")
	{
		auth.POST("/login/", authHandler.Login)
		auth.POST("/register/", authHandler.Register)
		auth.POST("/refresh/", authHandler.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth))
	{
		protected.GET("/auth/me/", authHandler.Me)
		protected.POST("/logout", authHandler.Logout)

		protected.GET("/recipes/discover", recipeHandler.Discover)
		protected.POST("/recipes/:id/interact/", limit(deps.InteractLimiter), recipeHandler.Interact)
		protected.POST("/recipes/:id/save/", limit(deps.InteractLimiter), recipeHandler.Save)
		protected.POST("/recipes/create/", limit(deps.CreateLimiter), recipeHandler.Create)
		protected.POST("/recipes/images/", limit(deps.CreateLimiter), recipeHandler.UploadImage)
		protected.GET("/recipes/:id/saved-recipes/", recipeHandler.SavedRecipes)

		protected.GET("/:username/recipes/", profileHandler.UserRecipes)
		protected.POST("/users/:id/follow/", profileHandler.Follow)
		protected.DELETE("/users/:id/follow/", profileHandler.Unfollow)
	}
}

func limit(limiter middleware.Limiter) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimitMiddleware(limiter)
}

// HealthCheck returns the health status of the API
func HealthCheck(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				log.Printf("[Health] database check failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Recipe swipe API is running",
		})
	}
}
