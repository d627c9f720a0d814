package handlers

import (
	"net/http"

	"recipebox/internal/models"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// AuthRequired resolves the session's user and stores it in the request context.
// Sessions pointing at deleted users are cleared.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.sessions.ClearIfOrphaned(c)
		if err != nil {
			h.logger.Error("Failed to resolve session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok && user != nil
}
