package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionID returns a random identifier for a server-side session record
func GenerateSessionID() string {
	return uuid.NewString()
}
