package handlers

import (
	"recipebox/internal/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(store sessions.Store) *gin.Engine {
	r := gin.Default()

	r.Use(session.Middleware(h.cfg, store))

	r.GET("/health", h.Health)

	// Public Routes
	r.POST("/signup", h.Signup)
	r.GET("/check_session", h.CheckSession)
	r.POST("/login", h.Login)
	r.DELETE("/logout", h.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(h.AuthRequired())
	{
		authorized.GET("/recipes", h.ListRecipes)
		authorized.POST("/recipes", h.CreateRecipe)
	}

	return r
}
