package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a dated free-text entry owned by a single user.
// Tags is a raw comma-separated string; it is split and trimmed only at
// read time so filter semantics stay substring-based.
// PinHash is set only when the entry is protected and a PIN was supplied.
type JournalEntry struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"`
	EntryDate   time.Time  `json:"entry_date"`
	Content     string     `json:"content"`
	Title       string     `json:"title,omitempty"`
	Tags        string     `json:"tags,omitempty"`
	IsProtected bool       `json:"is_protected"`
	PinHash     *string    `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
