package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/daybookapp/daybook-backend/internal/database"
	"github.com/daybookapp/daybook-backend/internal/services"
	"github.com/daybookapp/daybook-backend/pkg/utils"
	"github.com/google/uuid"
)

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

// AuthResponse is the envelope for signup/signin/me.
type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Token   string                 `json:"token,omitempty"`
	User    map[string]interface{} `json:"user,omitempty"`
}

func userMap(id uuid.UUID, username, fullName, theme string) map[string]interface{} {
	return map[string]interface{}{
		"id":               id.String(),
		"username":         username,
		"full_name":        fullName,
		"theme_preference": theme,
	}
}

// Signup registers a new account and opens a session.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	normalized := utils.NormalizeUsername(req.Username)

	var existing string
	err := database.PostgresDB.QueryRow(
		"SELECT username FROM users WHERE LOWER(username) = $1", normalized).Scan(&existing)
	if err != sql.ErrNoRows {
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create account")
			return
		}
		writeError(w, http.StatusConflict, "Username is already taken")
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	userID := uuid.New()
	_, err = database.PostgresDB.Exec(`
		INSERT INTO users (id, username, password_hash, full_name, theme_preference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'light', $5, $5)
	`, userID, normalized, passwordHash, nullableString(req.FullName), time.Now())
	if err != nil {
		log.Printf("[Signup] insert user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Account created but sign-in failed, please sign in")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created",
		Token:   token,
		User:    userMap(userID, normalized, req.FullName, "light"),
	})
}

// Signin verifies credentials and opens a session.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := services.GetUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		// Same message as a bad password so usernames can't be probed
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := services.CreateSession(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in",
		Token:   token,
		User:    userMap(user.ID, user.Username, user.FullName, user.ThemePreference),
	})
}

// Signout invalidates the current session.
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		services.InvalidateSession(token)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Signed out"})
}

// GetMe returns the authenticated user's profile.
func GetMe(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	user, err := services.GetUserByID(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		User:    userMap(user.ID, user.Username, user.FullName, user.ThemePreference),
	})
}

var validThemes = map[string]bool{"light": true, "dark": true, "custom": true}

// UpdateTheme persists the user's display theme preference.
func UpdateTheme(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validThemes[req.Theme] {
		writeError(w, http.StatusBadRequest, "Theme must be light, dark or custom")
		return
	}

	if err := services.UpdateThemePreference(userID, req.Theme); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update theme")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "theme": req.Theme})
}

func nullableString(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
