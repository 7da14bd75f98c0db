package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/middleware"
	"github.com/pageza/recipeswipe/internal/service"
)

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNotFollowing):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenRevoked):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserExists), errors.Is(err, service.ErrAlreadyFollowing):
		status = http.StatusConflict
	case errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrInvalidDifficulty),
		errors.Is(err, service.ErrInvalidImage):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrImageTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrStorageDisabled):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		log.Printf("[API] %s %s failed (request %s): %v", c.Request.Method, c.FullPath(), c.GetString(middleware.RequestIDKey), err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return userID, ok
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
