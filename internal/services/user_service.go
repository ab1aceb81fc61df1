package services

import (
	"database/sql"

	"github.com/daybookapp/daybook-backend/internal/database"
	"github.com/daybookapp/daybook-backend/internal/models"
	"github.com/google/uuid"
)

// GetUserByID returns the user row for an id, or ErrNotFound.
func GetUserByID(userID uuid.UUID) (*models.User, error) {
	var u models.User
	var fullName sql.NullString
	err := database.PostgresDB.QueryRow(`
		SELECT id, username, password_hash, full_name, theme_preference, created_at, updated_at
		FROM users WHERE id = $1
	`, userID).Scan(&u.ID, &u.Username, &u.PasswordHash, &fullName, &u.ThemePreference, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.FullName = fullName.String
	return &u, nil
}

// GetUserByUsername resolves a user by normalized (lowercase) username.
func GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	var fullName sql.NullString
	err := database.PostgresDB.QueryRow(`
		SELECT id, username, password_hash, full_name, theme_preference, created_at, updated_at
		FROM users WHERE LOWER(username) = LOWER($1)
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &fullName, &u.ThemePreference, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.FullName = fullName.String
	return &u, nil
}

// UpdateThemePreference persists the user's display theme choice.
func UpdateThemePreference(userID uuid.UUID, theme string) error {
	_, err := database.PostgresDB.Exec(
		"UPDATE users SET theme_preference = $1, updated_at = NOW() WHERE id = $2", theme, userID)
	return err
}
