package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/daybookapp/daybook-backend/internal/services"
	"github.com/google/uuid"
)

// extractBearerToken pulls the token out of an "Authorization: Bearer x"
// header. Returns "" when the header is missing or malformed.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth validates the session and returns the authenticated user's id
// and session token. Writes the 401 envelope itself and returns ok=false
// when the request is not authenticated.
func requireAuth(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, "", false
	}
	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, "", false
	}
	return userID, token, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// parseDate accepts the date formats clients send: full RFC 3339 timestamps
// or bare YYYY-MM-DD dates.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
