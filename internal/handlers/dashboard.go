package handlers

import (
	"log"
	"net/http"

	"github.com/daybookapp/daybook-backend/internal/services"
)

// GetDashboard returns the summary view: entry counts, streak, 30-day mood
// statistics, recent entries and the 7-day mood trend.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	summary, err := services.GetDashboard(userID)
	if err != nil {
		log.Printf("[GetDashboard] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"dashboard": summary,
	})
}

// GetDashboardStreak mirrors the journal streak endpoint for the dashboard
// widget that polls it.
func GetDashboardStreak(w http.ResponseWriter, r *http.Request) {
	GetJournalStreak(w, r)
}
