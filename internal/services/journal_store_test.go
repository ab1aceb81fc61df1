package services

import (
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/daybookapp/daybook-backend/internal/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	prev := database.PostgresDB
	database.PostgresDB = db
	t.Cleanup(func() {
		database.PostgresDB = prev
		db.Close()
	})
	return mock
}

func emptyJournalRows() *sqlmock.Rows {
	return sqlmock.NewRows(strings.Split(journalColumns, ", "))
}

// A foreign or unknown id must be indistinguishable from a missing row: the
// lookup always carries the caller's user id, so another user's entry simply
// never matches.
func TestGetJournalEntryForeignIDBehavesAsMissing(t *testing.T) {
	mock := setupMockDB(t)
	caller := uuid.New()
	foreignEntry := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+journalColumns+" FROM journal_entries WHERE id = $1 AND user_id = $2")).
		WithArgs(foreignEntry, caller).
		WillReturnRows(emptyJournalRows())

	_, err := GetJournalEntry(caller, foreignEntry)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateJournalEntryForeignIDNotFound(t *testing.T) {
	mock := setupMockDB(t)
	caller := uuid.New()
	foreignEntry := uuid.New()

	// The owner-scoped fetch misses, so no UPDATE is ever issued
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+journalColumns+" FROM journal_entries WHERE id = $1 AND user_id = $2")).
		WithArgs(foreignEntry, caller).
		WillReturnRows(emptyJournalRows())

	err := UpdateJournalEntry(caller, foreignEntry, JournalEntryInput{Content: "mine now"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteJournalEntryForeignIDIsNoOp(t *testing.T) {
	mock := setupMockDB(t)
	caller := uuid.New()
	foreignEntry := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM journal_entries WHERE id = $1 AND user_id = $2")).
		WithArgs(foreignEntry, caller).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, DeleteJournalEntry(caller, foreignEntry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrUpdateMoodForeignIDNotFound(t *testing.T) {
	mock := setupMockDB(t)
	caller := uuid.New()
	foreignEntry := uuid.New()

	mock.ExpectExec("UPDATE mood_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := CreateOrUpdateMood(caller, MoodEntryInput{
		ID:   &foreignEntry,
		Mood: "happy",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
