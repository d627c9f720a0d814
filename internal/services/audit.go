package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// AuditService records security-relevant actions. Writes happen inline with the
// request; a failed write is logged and otherwise ignored.
type AuditService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:     db,
		logger: logger,
	}
}

func (s *AuditService) LogAction(ctx context.Context, userID *uint, action, entityID string, details interface{}, ip string) {
	var detailText string
	if details != nil {
		detailBytes, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("Failed to encode audit details", "action", action, "error", err)
		} else {
			detailText = string(detailBytes)
		}
	}

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Details:   detailText,
		IPAddress: ip,
		Timestamp: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.logger.Error("Failed to write audit log", "action", action, "error", err)
	}
}
