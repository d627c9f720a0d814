package handlers

import (
	"log/slog"

	"recipebox/internal/config"
	"recipebox/internal/services"
	"recipebox/internal/session"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	cfg           config.Config
	logger        *slog.Logger
	db            *gorm.DB
	rdb           *redis.Client
	userService   *services.UserService
	recipeService *services.RecipeService
	auditService  *services.AuditService
	sessions      *session.Manager
}

// NewHandler wires the services the HTTP layer needs. rdb may be nil when Redis is not configured.
func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	userService *services.UserService,
	recipeService *services.RecipeService,
	auditService *services.AuditService,
	sessions *session.Manager,
) *Handler {
	return &Handler{
		cfg:           cfg,
		logger:        logger,
		db:            db,
		rdb:           rdb,
		userService:   userService,
		recipeService: recipeService,
		auditService:  auditService,
		sessions:      sessions,
	}
}
