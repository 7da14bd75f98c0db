package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipeswipe/internal/service"
)

type ProfileHandler struct {
	profileService service.IProfileService
}

func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UserRecipes lists the recipes created by :username
func (h *ProfileHandler) UserRecipes(c *gin.Context) {
	recipes, err := h.profileService.UserRecipes(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.Follow(c.Request.Context(), userID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "followed"})
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.Unfollow(c.Request.Context(), userID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}
