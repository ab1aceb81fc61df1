package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Password hash is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name,omitempty"`

	// ThemePreference is display-only: light, dark or custom.
	ThemePreference string `json:"theme_preference"`
}
