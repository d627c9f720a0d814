package handlers

import (
	"errors"
	"net/http"

	"recipebox/internal/models"
	"recipebox/internal/services"

	"github.com/gin-gonic/gin"
)

const errCredentialsRequired = "Username and password are required"

type SignupRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errCredentialsRequired})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), services.SignupDTO{
		Username: req.Username,
		Password: req.Password,
		ImageURL: req.ImageURL,
		Bio:      req.Bio,
	})
	switch {
	case errors.Is(err, services.ErrCredentialsRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errCredentialsRequired})
		return
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username already exists"})
		return
	case err != nil:
		h.logger.Error("Failed to create user", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		h.logger.Error("Failed to save session", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	h.auditService.LogAction(c.Request.Context(), &user.ID, models.ActionSignup, user.Username, nil, c.ClientIP())

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) CheckSession(c *gin.Context) {
	user, err := h.sessions.ClearIfOrphaned(c)
	if err != nil {
		h.logger.Error("Failed to resolve session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errCredentialsRequired})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrCredentialsRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errCredentialsRequired})
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		h.auditService.LogAction(c.Request.Context(), nil, models.ActionLoginFailed, req.Username, nil, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	case err != nil:
		h.logger.Error("Failed to look up user", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		h.logger.Error("Failed to save session", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	h.auditService.LogAction(c.Request.Context(), &user.ID, models.ActionLogin, user.Username, nil, c.ClientIP())

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	userID, loggedIn := h.sessions.Current(c)

	if err := h.sessions.End(c); err != nil {
		h.logger.Error("Failed to clear session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}

	if loggedIn {
		h.auditService.LogAction(c.Request.Context(), &userID, models.ActionLogout, "", nil, c.ClientIP())
	}

	c.Status(http.StatusNoContent)
}
