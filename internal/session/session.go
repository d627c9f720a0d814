// Package session ties a client's cookie to an authenticated user id.
package session

import (
	"context"
	"fmt"

	"recipebox/internal/config"
	"recipebox/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// UserFinder resolves the user a session points at.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type Manager struct {
	users   UserFinder
	options sessions.Options
	// regenerate is set for server-side stores, which must issue a fresh id on login.
	regenerate bool
}

func NewManager(cfg config.Config, users UserFinder) *Manager {
	return &Manager{
		users:      users,
		options:    CookieOptions(cfg),
		regenerate: cfg.SessionBackend == config.SessionBackendRedis,
	}
}

// Start binds the current client's session to userID and refreshes the cookie.
// Any session id the client presented is discarded.
func (m *Manager) Start(c *gin.Context, userID uint) error {
	s := sessions.Default(c)
	if err := loadError(s); err != nil {
		return err
	}
	s.Clear()
	s.Options(m.options)
	if m.regenerate {
		s.Set(regenerateKey{}, true)
	}
	s.Set(userIDKey, userID)
	return s.Save()
}

func loadError(s sessions.Session) error {
	if err, ok := s.Get(loadErrorKey{}).(error); ok {
		return fmt.Errorf("load session: %w", err)
	}
	return nil
}

// Current returns the user id stored in the session, if any.
func (m *Manager) Current(c *gin.Context) (uint, bool) {
	switch v := sessions.Default(c).Get(userIDKey).(type) {
	case uint:
		return v, v != 0
	case int:
		return uint(v), v > 0
	case int64:
		return uint(v), v > 0
	case float64:
		return uint(v), v > 0
	default:
		return 0, false
	}
}

// End drops the session values and expires the cookie.
func (m *Manager) End(c *gin.Context) error {
	s := sessions.Default(c)
	if err := loadError(s); err != nil {
		return err
	}
	s.Clear()
	expired := m.options
	expired.MaxAge = -1
	s.Options(expired)
	return s.Save()
}

// ClearIfOrphaned resolves the session's user. When the session references a user that
// no longer exists the session is ended and nil is returned. A session store failure
// is returned as an error.
func (m *Manager) ClearIfOrphaned(c *gin.Context) (*models.User, error) {
	if err := loadError(sessions.Default(c)); err != nil {
		return nil, err
	}

	userID, ok := m.Current(c)
	if !ok {
		return nil, nil
	}

	user, err := m.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, m.End(c)
	}
	return user, nil
}
