package models

import (
	"time"

	"github.com/google/uuid"
)

// MoodEntry records how a user felt on a given day.
// One entry per (user, date) is intended; the mood service enforces this
// with an upsert, there is no storage constraint backing it.
type MoodEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	EntryDate time.Time `json:"entry_date"`
	Mood      string    `json:"mood"`
	Notes     string    `json:"notes,omitempty"`
	Intensity *int      `json:"intensity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
