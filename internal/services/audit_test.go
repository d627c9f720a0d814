package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"recipebox/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuditService(t *testing.T) {
	db := setupTestDB()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewAuditService(db, logger)
	ctx := context.Background()

	t.Run("Log Action", func(t *testing.T) {
		userID := uint(1)
		service.LogAction(ctx, &userID, models.ActionLogin, "alice", map[string]string{"foo": "bar"}, "127.0.0.1")

		var log models.AuditLog
		err := db.First(&log).Error
		assert.NoError(t, err)
		assert.Equal(t, models.ActionLogin, log.Action)
		assert.Equal(t, "alice", log.EntityID)
		assert.Contains(t, log.Details, "foo")
		assert.Equal(t, uint(1), *log.UserID)
	})

	t.Run("Nil details", func(t *testing.T) {
		service.LogAction(ctx, nil, models.ActionLoginFailed, "nobody", nil, "127.0.0.1")

		var log models.AuditLog
		err := db.Where("action = ?", models.ActionLoginFailed).First(&log).Error
		assert.NoError(t, err)
		assert.Empty(t, log.Details)
		assert.Nil(t, log.UserID)
	})

	t.Run("DB Error", func(t *testing.T) {
		dbErr := setupTestDB()
		dbErr.Migrator().DropTable(&models.AuditLog{})
		serviceErr := NewAuditService(dbErr, logger)

		assert.NotPanics(t, func() {
			serviceErr.LogAction(ctx, nil, "ERROR", "ID", nil, "IP")
		})
	})
}
