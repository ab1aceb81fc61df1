package services

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/daybookapp/daybook-backend/internal/database"
	"github.com/daybookapp/daybook-backend/internal/models"
	"github.com/daybookapp/daybook-backend/pkg/utils"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a row does not exist or is owned by another
// user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

const (
	// DefaultPageSize is the journal list page size
	DefaultPageSize = 10
	// SummaryLength is where list-view content gets truncated
	SummaryLength = 200
)

// JournalListOptions are the filters for ListJournalEntries. Zero values mean
// "no filter"; Page/PageSize get defaulted when out of range.
type JournalListOptions struct {
	Search   string
	Tag      string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// JournalListResult is one page of summarized entries plus the data the list
// view needs to render its filter controls.
type JournalListResult struct {
	Entries    []models.JournalEntry `json:"entries"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalCount int                   `json:"total_count"`
	TotalPages int                   `json:"total_pages"`
	AllTags    []string              `json:"all_tags"`
}

const journalColumns = "id, user_id, entry_date, content, title, tags, is_protected, pin_hash, created_at, updated_at"

func scanJournalEntry(row interface{ Scan(...interface{}) error }) (*models.JournalEntry, error) {
	var e models.JournalEntry
	var title, tags sql.NullString
	var pinHash sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Content, &title, &tags, &e.IsProtected, &pinHash, &e.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	e.Title = title.String
	e.Tags = tags.String
	if pinHash.Valid {
		e.PinHash = &pinHash.String
	}
	if updatedAt.Valid {
		e.UpdatedAt = &updatedAt.Time
	}
	return &e, nil
}

// ListJournalEntries returns one page of the user's entries, newest entry
// date first, after applying search/tag/date filters. The distinct tag list
// is always computed over the full unfiltered set so the filter dropdown
// stays stable while filters are active.
func ListJournalEntries(userID uuid.UUID, opts JournalListOptions) (*JournalListResult, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	size := opts.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	where := "user_id = $1"
	args := []interface{}{userID}

	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		where += fmt.Sprintf(" AND (title LIKE $%d OR content LIKE $%d)", len(args), len(args))
	}
	if opts.Tag != "" {
		// Substring match against the raw comma-separated string, not a
		// normalized membership test: "art" also matches "cart".
		args = append(args, "%"+opts.Tag+"%")
		where += fmt.Sprintf(" AND tags LIKE $%d", len(args))
	}
	if opts.DateFrom != nil {
		args = append(args, *opts.DateFrom)
		where += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if opts.DateTo != nil {
		args = append(args, *opts.DateTo)
		where += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}

	var total int
	err := database.PostgresDB.QueryRow("SELECT COUNT(*) FROM journal_entries WHERE "+where, args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * size
	query := fmt.Sprintf("SELECT %s FROM journal_entries WHERE %s ORDER BY entry_date DESC LIMIT %d OFFSET %d",
		journalColumns, where, size, offset)
	rows, err := database.PostgresDB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		e.Content = SummarizeContent(e.Content)
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	allTags, err := AllJournalTags(userID)
	if err != nil {
		return nil, err
	}

	return &JournalListResult{
		Entries:    entries,
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: TotalPages(total, size),
		AllTags:    allTags,
	}, nil
}

// TotalPages is ceil(total/size). An out-of-range page is not an error; the
// query above just comes back empty.
func TotalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// SummarizeContent truncates content for the list projection. Full content is
// only returned from the single-entry view. The cut counts runes, not bytes,
// so multi-byte characters are never split.
func SummarizeContent(content string) string {
	runes := []rune(content)
	if len(runes) > SummaryLength {
		return string(runes[:SummaryLength]) + "..."
	}
	return content
}

// AllJournalTags returns the user's distinct tags: every non-empty tags field
// split on commas, trimmed, deduplicated and sorted. No case folding, so
// "Work" and "work" stay separate.
func AllJournalTags(userID uuid.UUID) ([]string, error) {
	rows, err := database.PostgresDB.Query(
		"SELECT tags FROM journal_entries WHERE user_id = $1 AND tags IS NOT NULL AND tags <> ''", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raw []string
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		raw = append(raw, tags)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return AggregateTags(raw), nil
}

// AggregateTags splits, trims, deduplicates and sorts raw comma-separated
// tag strings.
func AggregateTags(rawTags []string) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, raw := range rawTags {
		for _, t := range strings.Split(raw, ",") {
			t = strings.TrimSpace(t)
			if t != "" && !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// MonthWindow returns the half-open [start, end) window for a calendar month.
// Zero year/month default to now's month.
func MonthWindow(year, month int, now time.Time) (time.Time, time.Time) {
	if year == 0 || month == 0 {
		year, month = now.Year(), int(now.Month())
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// JournalMonthResult holds a month of entries for the calendar view.
type JournalMonthResult struct {
	Year          int                              `json:"year"`
	Month         int                              `json:"month"`
	MonthName     string                           `json:"month_name"`
	PrevYear      int                              `json:"prev_year"`
	PrevMonth     int                              `json:"prev_month"`
	NextYear      int                              `json:"next_year"`
	NextMonth     int                              `json:"next_month"`
	Entries       []models.JournalEntry            `json:"entries"`
	EntriesByDate map[string][]models.JournalEntry `json:"entries_by_date"`
}

// GetJournalMonth returns the user's entries for one calendar month, newest
// first, grouped by YYYY-MM-DD date for calendar rendering.
func GetJournalMonth(userID uuid.UUID, year, month int) (*JournalMonthResult, error) {
	start, end := MonthWindow(year, month, time.Now().UTC())

	rows, err := database.PostgresDB.Query(fmt.Sprintf(
		"SELECT %s FROM journal_entries WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3 ORDER BY entry_date DESC",
		journalColumns), userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	byDate := make(map[string][]models.JournalEntry)
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
		day := e.EntryDate.Format("2006-01-02")
		byDate[day] = append(byDate[day], *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prev := start.AddDate(0, -1, 0)
	next := start.AddDate(0, 1, 0)

	return &JournalMonthResult{
		Year:          start.Year(),
		Month:         int(start.Month()),
		MonthName:     start.Format("January 2006"),
		PrevYear:      prev.Year(),
		PrevMonth:     int(prev.Month()),
		NextYear:      next.Year(),
		NextMonth:     int(next.Month()),
		Entries:       entries,
		EntriesByDate: byDate,
	}, nil
}

// GetJournalEntry fetches one entry by id, scoped to the owner. Foreign or
// unknown ids yield ErrNotFound.
func GetJournalEntry(userID, entryID uuid.UUID) (*models.JournalEntry, error) {
	row := database.PostgresDB.QueryRow(fmt.Sprintf(
		"SELECT %s FROM journal_entries WHERE id = $1 AND user_id = $2", journalColumns), entryID, userID)
	e, err := scanJournalEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetJournalEntryByDate fetches the first entry on a calendar date. Multiple
// entries per date are allowed; date lookup is a calendar convenience.
func GetJournalEntryByDate(userID uuid.UUID, date time.Time) (*models.JournalEntry, error) {
	day := Day(date)
	row := database.PostgresDB.QueryRow(fmt.Sprintf(
		"SELECT %s FROM journal_entries WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3 ORDER BY entry_date LIMIT 1",
		journalColumns), userID, day, day.AddDate(0, 0, 1))
	e, err := scanJournalEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// PinGateActive reports whether viewing this entry requires a verified PIN.
// An entry marked protected without a stored hash is not gated: no PIN could
// ever match, so gating it would make the entry permanently unreadable.
func PinGateActive(e *models.JournalEntry) bool {
	return e.IsProtected && e.PinHash != nil && *e.PinHash != ""
}

// JournalEntryInput carries the writable fields shared by create and update.
type JournalEntryInput struct {
	EntryDate   time.Time
	Content     string
	Title       string
	Tags        string
	IsProtected bool
	Pin         string
}

// nextPinHash decides what hash an entry carries after a write. Turning
// protection off clears the hash even when a PIN value was also submitted;
// keeping it on preserves the existing hash unless a new non-empty PIN
// replaces it. On create, existing is nil, so a protected entry without a
// PIN stores no hash and never gates.
func nextPinHash(existing *string, isProtected bool, pin string) *string {
	if !isProtected {
		return nil
	}
	if pin != "" {
		h := utils.HashPin(pin)
		return &h
	}
	return existing
}

// CreateJournalEntry inserts a new entry. The PIN hash is stored only when
// the entry is protected and a PIN was actually supplied; a protected entry
// without a PIN simply never gates.
func CreateJournalEntry(userID uuid.UUID, in JournalEntryInput) (uuid.UUID, error) {
	id := uuid.New()
	pinHash := nextPinHash(nil, in.IsProtected, in.Pin)

	_, err := database.PostgresDB.Exec(`
		INSERT INTO journal_entries (id, user_id, entry_date, content, title, tags, is_protected, pin_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, userID, in.EntryDate, in.Content, nullable(in.Title), nullable(in.Tags), in.IsProtected, pinHash, time.Now())
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateJournalEntry overwrites date, content, title and tags and stamps
// updated_at. Protection transitions follow nextPinHash.
func UpdateJournalEntry(userID, entryID uuid.UUID, in JournalEntryInput) error {
	existing, err := GetJournalEntry(userID, entryID)
	if err != nil {
		return err
	}

	pinHash := nextPinHash(existing.PinHash, in.IsProtected, in.Pin)

	_, err = database.PostgresDB.Exec(`
		UPDATE journal_entries
		SET entry_date = $1, content = $2, title = $3, tags = $4, is_protected = $5, pin_hash = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`, in.EntryDate, in.Content, nullable(in.Title), nullable(in.Tags), in.IsProtected, pinHash, time.Now(), entryID, userID)
	return err
}

// DeleteJournalEntry removes an entry. Unknown or foreign ids are a silent
// no-op.
func DeleteJournalEntry(userID, entryID uuid.UUID) error {
	_, err := database.PostgresDB.Exec(
		"DELETE FROM journal_entries WHERE id = $1 AND user_id = $2", entryID, userID)
	return err
}

// AllJournalEntries returns every entry for the user, newest entry date
// first. Used by export, which is always unfiltered.
func AllJournalEntries(userID uuid.UUID) ([]models.JournalEntry, error) {
	rows, err := database.PostgresDB.Query(fmt.Sprintf(
		"SELECT %s FROM journal_entries WHERE user_id = $1 ORDER BY entry_date DESC", journalColumns), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GenerateJournalCSV renders entries as CSV with a fixed header. Quotes are
// doubled; newlines inside content become single spaces so each record stays
// on one line.
func GenerateJournalCSV(entries []models.JournalEntry) string {
	var sb strings.Builder
	sb.WriteString("Date,Title,Content,Tags\n")
	for _, e := range entries {
		content := strings.NewReplacer("\"", "\"\"", "\n", " ", "\r", " ").Replace(e.Content)
		title := strings.ReplaceAll(e.Title, "\"", "\"\"")
		tags := strings.ReplaceAll(e.Tags, "\"", "\"\"")
		sb.WriteString(fmt.Sprintf("\"%s\",\"%s\",\"%s\",\"%s\"\n",
			e.EntryDate.Format("2006-01-02"), title, content, tags))
	}
	return sb.String()
}

// JournalEntryDates returns the user's distinct entry days, newest first.
// Input shape for CalculateStreak.
func JournalEntryDates(userID uuid.UUID) ([]time.Time, error) {
	rows, err := database.PostgresDB.Query(`
		SELECT DISTINCT (entry_date)::date AS d
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY d DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// JournalStreak computes the user's current streak from stored entry dates.
func JournalStreak(userID uuid.UUID) (int, error) {
	dates, err := JournalEntryDates(userID)
	if err != nil {
		return 0, err
	}
	return CalculateStreak(dates, time.Now().UTC()), nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
