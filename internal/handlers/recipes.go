package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"recipebox/internal/models"
	"recipebox/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateRecipeRequest requires a positive minutes_to_complete; zero counts as missing.
type CreateRecipeRequest struct {
	Title             string `json:"title" binding:"required"`
	Instructions      string `json:"instructions" binding:"required"`
	MinutesToComplete int    `json:"minutes_to_complete" binding:"required,gt=0"`
}

func (h *Handler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list recipes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *Handler) CreateRecipe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Title, instructions, and minutes to complete are required"})
		return
	}

	minutes := req.MinutesToComplete
	recipe, err := h.recipeService.Create(c.Request.Context(), services.RecipeDTO{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: &minutes,
		UserID:            user.ID,
	})
	if errors.Is(err, models.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("Failed to create recipe", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	h.auditService.LogAction(c.Request.Context(), &user.ID, models.ActionCreateRecipe, strconv.FormatUint(uint64(recipe.ID), 10), map[string]interface{}{
		"title": recipe.Title,
	}, c.ClientIP())

	c.JSON(http.StatusCreated, recipe)
}
