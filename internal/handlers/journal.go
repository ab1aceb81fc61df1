package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/daybookapp/daybook-backend/internal/models"
	"github.com/daybookapp/daybook-backend/internal/services"
	"github.com/daybookapp/daybook-backend/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type JournalEntryRequest struct {
	EntryDate   string `json:"entry_date"`
	Content     string `json:"content"`
	Title       string `json:"title,omitempty"`
	Tags        string `json:"tags,omitempty"`
	IsProtected bool   `json:"is_protected"`
	Pin         string `json:"pin,omitempty"`
}

type VerifyPinRequest struct {
	EntryID string `json:"entry_id"`
	Pin     string `json:"pin"`
}

// parseJournalInput validates the shared create/update payload.
func parseJournalInput(req JournalEntryRequest) (services.JournalEntryInput, string) {
	date, ok := parseDate(req.EntryDate)
	if !ok {
		return services.JournalEntryInput{}, "Date is required (YYYY-MM-DD)"
	}
	if strings.TrimSpace(req.Content) == "" {
		return services.JournalEntryInput{}, "Content is required"
	}
	if len(req.Title) > 200 {
		return services.JournalEntryInput{}, "Title cannot exceed 200 characters"
	}
	if req.Pin != "" {
		if err := utils.ValidatePin(req.Pin); err != nil {
			return services.JournalEntryInput{}, err.Error()
		}
	}
	return services.JournalEntryInput{
		EntryDate:   date,
		Content:     req.Content,
		Title:       strings.TrimSpace(req.Title),
		Tags:        strings.TrimSpace(req.Tags),
		IsProtected: req.IsProtected,
		Pin:         req.Pin,
	}, ""
}

// ListJournal returns one page of entries with search/tag/date filters.
// Query params: search, tag, date_from, date_to, page, page_size.
func ListJournal(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	opts := services.JournalListOptions{
		Search: r.URL.Query().Get("search"),
		Tag:    r.URL.Query().Get("tag"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		opts.Page = page
	}
	if size, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		opts.PageSize = size
	}
	if from, ok := parseDate(r.URL.Query().Get("date_from")); ok {
		opts.DateFrom = &from
	}
	if to, ok := parseDate(r.URL.Query().Get("date_to")); ok {
		opts.DateTo = &to
	}

	result, err := services.ListJournalEntries(userID, opts)
	if err != nil {
		log.Printf("[ListJournal] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load journal entries")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

// JournalCalendar returns one month of entries grouped by date.
// Query params: year, month (default: current month).
func JournalCalendar(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	result, err := services.GetJournalMonth(userID, year, month)
	if err != nil {
		log.Printf("[JournalCalendar] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load calendar")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"calendar": result,
	})
}

// GetJournalEntry resolves an entry by id (takes precedence) or by date.
// A protected entry whose PIN this session has not verified yields a
// pin_required response instead of the body. A miss with a date steers the
// client to the create form pre-filled with that date.
func GetJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, token, ok := requireAuth(w, r)
	if !ok {
		return
	}

	idStr := r.URL.Query().Get("id")
	dateStr := r.URL.Query().Get("date")

	var entry *models.JournalEntry
	if idStr != "" {
		entryID, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		e, err := services.GetJournalEntry(userID, entryID)
		if err == services.ErrNotFound {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"success": false, "message": "Entry not found", "redirect": "list",
			})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load entry")
			return
		}
		entry = e
	} else if dateStr != "" {
		date, ok := parseDate(dateStr)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		e, err := services.GetJournalEntryByDate(userID, date)
		if err == services.ErrNotFound {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"success":  false,
				"message":  "No entry for this date",
				"redirect": "create",
				"date":     date.Format("2006-01-02"),
			})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load entry")
			return
		}
		entry = e
	} else {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false, "message": "Entry not found", "redirect": "list",
		})
		return
	}

	if services.PinGateActive(entry) && !services.IsPinVerified(token, entry.ID) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":      false,
			"pin_required": true,
			"entry_id":     entry.ID.String(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entry":   entry,
	})
}

// VerifyJournalPin checks a PIN against a protected entry and, on success,
// marks it verified for the rest of the session.
func VerifyJournalPin(w http.ResponseWriter, r *http.Request) {
	userID, token, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req VerifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	entryID, err := uuid.Parse(req.EntryID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	entry, err := services.GetJournalEntry(userID, entryID)
	if err == services.ErrNotFound {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entry")
		return
	}
	if !entry.IsProtected || entry.PinHash == nil || *entry.PinHash == "" {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	if !utils.VerifyPinHash(req.Pin, *entry.PinHash) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success":      false,
			"pin_required": true,
			"message":      "Invalid PIN. Please try again.",
		})
		return
	}

	if err := services.MarkPinVerified(token, entryID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to verify PIN")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entry":   entry,
	})
}

// CreateJournalEntry inserts a new journal entry.
func CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, token, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req JournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in, msg := parseJournalInput(req)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	id, err := services.CreateJournalEntry(userID, in)
	if err != nil {
		log.Printf("[CreateJournalEntry] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save entry")
		return
	}

	// A fresh entry starts locked for this session too
	services.ClearPinVerified(token, id)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      id.String(),
	})
}

// UpdateJournalEntry overwrites an owned entry.
func UpdateJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	var req JournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in, msg := parseJournalInput(req)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	err = services.UpdateJournalEntry(userID, entryID, in)
	if err == services.ErrNotFound {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		log.Printf("[UpdateJournalEntry] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save entry")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteJournalEntry removes an entry. Deleting an unknown or foreign id is
// a silent no-op.
func DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err == nil {
		if err := services.DeleteJournalEntry(userID, entryID); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to delete entry")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ExportJournal streams every entry as a JSON or CSV download. Any other
// format steers the client back to the list.
func ExportJournal(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  false,
			"redirect": "list",
		})
		return
	}

	entries, err := services.AllJournalEntries(userID)
	if err != nil {
		log.Printf("[ExportJournal] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to export entries")
		return
	}

	filename := fmt.Sprintf("journal_export_%s.%s", time.Now().Format("20060102"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(services.GenerateJournalCSV(entries)))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export entries")
		return
	}
	w.Write(out)
}

// GetJournalStreak returns the current consecutive-day streak.
func GetJournalStreak(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	streak, err := services.JournalStreak(userID)
	if err != nil {
		log.Printf("[GetJournalStreak] %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute streak")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"streak": streak})
}
