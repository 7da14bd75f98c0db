package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipeswipe/internal/service"
	"github.com/pageza/recipeswipe/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
	imageService  service.IImageService
}

func NewRecipeHandler(recipeService service.IRecipeService, imageService service.IImageService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
	}
}

// Discover returns the next batch of recipes for the swipe feed
func (h *RecipeHandler) Discover(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	recipes, err := h.recipeService.Discover(c.Request.Context(), userID, refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) Interact(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.InteractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interaction, err := h.recipeService.Interact(c.Request.Context(), userID, recipeID, req.Liked, req.SuperLiked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interaction)
}

func (h *RecipeHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	saved, err := h.recipeService.Save(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[RecipeHandler] Validation error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// SavedRecipes lists a user's saved recipes. Only the owner may read them.
func (h *RecipeHandler) SavedRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ownerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if ownerID != userID {
		respondError(c, service.ErrForbidden)
		return
	}

	recipes, err := h.recipeService.SavedRecipes(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// UploadImage stores a recipe photo and returns its public URL
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+1<<20)
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, service.ErrImageTooLarge)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.imageService.Upload(c.Request.Context(), userID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.ImageUploadResponse{ImageURL: url})
}
