package models

import (
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// MinInstructionsLength is counted in characters, not bytes.
const MinInstructionsLength = 50

type Recipe struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"not null;size:255" json:"title"`
	Instructions      string    `gorm:"type:text;not null" json:"instructions"`
	MinutesToComplete *int      `json:"minutes_to_complete"`
	UserID            uint      `gorm:"not null;index" json:"-"`
	User              *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
}

// Validate checks the fields a recipe needs before it may be stored.
func (r *Recipe) Validate() error {
	if r.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if r.Instructions == "" {
		return &ValidationError{Field: "instructions", Message: "instructions are required"}
	}
	if utf8.RuneCountInString(r.Instructions) < MinInstructionsLength {
		return &ValidationError{Field: "instructions", Message: "instructions must be at least 50 characters"}
	}
	if r.UserID == 0 {
		return &ValidationError{Field: "user_id", Message: "recipe must belong to a user"}
	}
	return nil
}

func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}
