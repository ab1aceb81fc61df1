package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/daybookapp/daybook-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type MoodEntryRequest struct {
	ID        string `json:"id,omitempty"`
	EntryDate string `json:"entry_date"`
	Mood      string `json:"mood"`
	Notes     string `json:"notes,omitempty"`
	Intensity *int   `json:"intensity,omitempty"`
}

// MoodCalendar returns one month of mood entries plus the date -> mood map.
// Query params: year, month (default: current month).
func MoodCalendar(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	result, err := services.GetMoodMonth(userID, year, month)
	if err != nil {
		log.Printf("[MoodCalendar] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load calendar")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"calendar": result,
	})
}

// GetMoodEntry returns the mood recorded for a date, for form pre-fill.
func GetMoodEntry(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	date, ok := parseDate(r.URL.Query().Get("date"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	entry, err := services.GetMoodEntryByDate(userID, date)
	if err == services.ErrNotFound {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"entry":   nil,
			"date":    date.Format("2006-01-02"),
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load mood entry")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entry":   entry,
	})
}

// SaveMoodEntry creates or updates a mood entry. Without an id the save
// upserts by date; with an id the id must resolve to an owned row.
func SaveMoodEntry(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req MoodEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, ok := parseDate(req.EntryDate)
	if !ok {
		writeError(w, http.StatusBadRequest, "Date is required (YYYY-MM-DD)")
		return
	}
	mood := strings.TrimSpace(req.Mood)
	if mood == "" {
		writeError(w, http.StatusBadRequest, "Please select a mood")
		return
	}
	if len(mood) > 50 {
		writeError(w, http.StatusBadRequest, "Mood cannot exceed 50 characters")
		return
	}
	if len(req.Notes) > 500 {
		writeError(w, http.StatusBadRequest, "Notes cannot exceed 500 characters")
		return
	}
	if req.Intensity != nil && (*req.Intensity < 1 || *req.Intensity > 10) {
		writeError(w, http.StatusBadRequest, "Intensity must be between 1 and 10")
		return
	}

	in := services.MoodEntryInput{
		EntryDate: date,
		Mood:      mood,
		Notes:     req.Notes,
		Intensity: req.Intensity,
	}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			writeError(w, http.StatusNotFound, "Mood entry not found")
			return
		}
		in.ID = &id
	}

	id, err := services.CreateOrUpdateMood(userID, in)
	if err == services.ErrNotFound {
		writeError(w, http.StatusNotFound, "Mood entry not found")
		return
	}
	if err != nil {
		log.Printf("[SaveMoodEntry] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save mood")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id.String(),
	})
}

// DeleteMoodEntry removes a mood entry. Unknown or foreign ids are a silent
// no-op.
func DeleteMoodEntry(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err == nil {
		if err := services.DeleteMoodEntry(userID, entryID); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to delete mood entry")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// MoodStatistics returns the mood breakdown over a trailing window.
// Query param: days (default 30).
func MoodStatistics(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	days := 30
	if d, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && d > 0 {
		days = d
	}

	stats, err := services.GetMoodStatistics(userID, days)
	if err != nil {
		log.Printf("[MoodStatistics] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"statistics": stats,
	})
}
