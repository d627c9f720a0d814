package models

import (
	"time"
)

const (
	ActionSignup       = "SIGNUP"
	ActionLogin        = "LOGIN"
	ActionLoginFailed  = "LOGIN_FAILED"
	ActionLogout       = "LOGOUT"
	ActionCreateRecipe = "CREATE_RECIPE"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"` // nil for failed logins
	Action    string    `gorm:"size:50;not null" json:"action"`
	EntityID  string    `gorm:"size:80" json:"entity_id"` // username or recipe id
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
