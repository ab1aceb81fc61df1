package services

import (
	"database/sql"
	"sort"
	"time"

	"github.com/daybookapp/daybook-backend/internal/database"
	"github.com/daybookapp/daybook-backend/internal/models"
	"github.com/google/uuid"
)

const moodColumns = "id, user_id, entry_date, mood, notes, intensity, created_at"

func scanMoodEntry(row interface{ Scan(...interface{}) error }) (*models.MoodEntry, error) {
	var e models.MoodEntry
	var notes sql.NullString
	var intensity sql.NullInt64
	err := row.Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Mood, &notes, &intensity, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Notes = notes.String
	if intensity.Valid {
		v := int(intensity.Int64)
		e.Intensity = &v
	}
	return &e, nil
}

// MoodMonthResult is a month of mood entries for the calendar view, with a
// date -> mood map for coloring calendar cells.
type MoodMonthResult struct {
	Year        int                `json:"year"`
	Month       int                `json:"month"`
	MonthName   string             `json:"month_name"`
	PrevYear    int                `json:"prev_year"`
	PrevMonth   int                `json:"prev_month"`
	NextYear    int                `json:"next_year"`
	NextMonth   int                `json:"next_month"`
	Entries     []models.MoodEntry `json:"entries"`
	MoodsByDate map[string]string  `json:"moods_by_date"`
}

// GetMoodMonth returns the user's mood entries for one calendar month,
// newest first. Same window semantics as the journal calendar.
func GetMoodMonth(userID uuid.UUID, year, month int) (*MoodMonthResult, error) {
	start, end := MonthWindow(year, month, time.Now().UTC())

	rows, err := database.PostgresDB.Query(
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3 ORDER BY entry_date DESC",
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.MoodEntry, 0)
	byDate := make(map[string]string)
	for rows.Next() {
		e, err := scanMoodEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
		byDate[e.EntryDate.Format("2006-01-02")] = e.Mood
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prev := start.AddDate(0, -1, 0)
	next := start.AddDate(0, 1, 0)

	return &MoodMonthResult{
		Year:        start.Year(),
		Month:       int(start.Month()),
		MonthName:   start.Format("January 2006"),
		PrevYear:    prev.Year(),
		PrevMonth:   int(prev.Month()),
		NextYear:    next.Year(),
		NextMonth:   int(next.Month()),
		Entries:     entries,
		MoodsByDate: byDate,
	}, nil
}

// GetMoodEntryByDate fetches the mood entry recorded for a calendar day, so
// the client can pre-fill the edit form. ErrNotFound when the day is empty.
func GetMoodEntryByDate(userID uuid.UUID, date time.Time) (*models.MoodEntry, error) {
	day := Day(date)
	row := database.PostgresDB.QueryRow(
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3 ORDER BY entry_date LIMIT 1",
		userID, day, day.AddDate(0, 0, 1))
	e, err := scanMoodEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// MoodEntryInput carries the writable mood fields.
type MoodEntryInput struct {
	ID        *uuid.UUID
	EntryDate time.Time
	Mood      string
	Notes     string
	Intensity *int
}

// CreateOrUpdateMood writes a mood entry. With an id it must resolve to an
// owned row, which is overwritten in full. Without an id the write upserts by
// (user, date): one mood per day is the data model's intent, so a second save
// on the same day replaces the first instead of inserting a duplicate. The
// check-then-write is not guarded by a storage constraint, so concurrent
// saves for the same day can still race.
func CreateOrUpdateMood(userID uuid.UUID, in MoodEntryInput) (uuid.UUID, error) {
	targetID := in.ID
	if targetID == nil {
		existing, err := GetMoodEntryByDate(userID, in.EntryDate)
		if err == nil {
			targetID = &existing.ID
		} else if err != ErrNotFound {
			return uuid.Nil, err
		}
	}

	if targetID != nil {
		res, err := database.PostgresDB.Exec(`
			UPDATE mood_entries
			SET entry_date = $1, mood = $2, notes = $3, intensity = $4
			WHERE id = $5 AND user_id = $6
		`, in.EntryDate, in.Mood, nullable(in.Notes), in.Intensity, *targetID, userID)
		if err != nil {
			return uuid.Nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return uuid.Nil, err
		}
		if affected == 0 {
			return uuid.Nil, ErrNotFound
		}
		return *targetID, nil
	}

	id := uuid.New()
	_, err := database.PostgresDB.Exec(`
		INSERT INTO mood_entries (id, user_id, entry_date, mood, notes, intensity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, userID, in.EntryDate, in.Mood, nullable(in.Notes), in.Intensity, time.Now())
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// DeleteMoodEntry removes a mood entry. Unknown or foreign ids are a silent
// no-op.
func DeleteMoodEntry(userID, entryID uuid.UUID) error {
	_, err := database.PostgresDB.Exec(
		"DELETE FROM mood_entries WHERE id = $1 AND user_id = $2", entryID, userID)
	return err
}

// MoodCount is one mood label with its occurrence count in the window.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// MoodStats summarizes moods over a trailing window.
type MoodStats struct {
	MoodCounts       []MoodCount `json:"mood_counts"`
	TotalEntries     int         `json:"total_entries"`
	AverageIntensity float64     `json:"average_intensity"`
}

// GetMoodStatistics aggregates the user's moods over the last windowDays
// days. Average intensity covers only entries that recorded one; it is 0
// when none did.
func GetMoodStatistics(userID uuid.UUID, windowDays int) (*MoodStats, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	since := Day(time.Now().UTC()).AddDate(0, 0, -windowDays)

	rows, err := database.PostgresDB.Query(
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = $1 AND entry_date >= $2",
		userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		e, err := scanMoodEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats := ComputeMoodStats(entries)
	return &stats, nil
}

// ComputeMoodStats builds the counts-by-mood breakdown (descending by count)
// and average intensity for a set of entries.
func ComputeMoodStats(entries []models.MoodEntry) MoodStats {
	counts := make(map[string]int)
	intensitySum := 0
	intensityN := 0
	for _, e := range entries {
		counts[e.Mood]++
		if e.Intensity != nil {
			intensitySum += *e.Intensity
			intensityN++
		}
	}

	moodCounts := make([]MoodCount, 0, len(counts))
	for mood, count := range counts {
		moodCounts = append(moodCounts, MoodCount{Mood: mood, Count: count})
	}
	sort.Slice(moodCounts, func(i, j int) bool {
		if moodCounts[i].Count != moodCounts[j].Count {
			return moodCounts[i].Count > moodCounts[j].Count
		}
		return moodCounts[i].Mood < moodCounts[j].Mood
	})

	avg := 0.0
	if intensityN > 0 {
		avg = float64(intensitySum) / float64(intensityN)
	}

	return MoodStats{
		MoodCounts:       moodCounts,
		TotalEntries:     len(entries),
		AverageIntensity: avg,
	}
}

// MoodTrendPoint is one day of the dashboard's mood trend.
type MoodTrendPoint struct {
	Date      string `json:"date"`
	Mood      string `json:"mood"`
	Intensity int    `json:"intensity"`
}

// GetMoodTrend returns the user's moods over the last windowDays days,
// oldest first. Entries without an intensity default to 5 (scale midpoint)
// so the trend chart has no holes.
func GetMoodTrend(userID uuid.UUID, windowDays int) ([]MoodTrendPoint, error) {
	since := Day(time.Now().UTC()).AddDate(0, 0, -windowDays)

	rows, err := database.PostgresDB.Query(
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = $1 AND entry_date >= $2 ORDER BY entry_date ASC",
		userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]MoodTrendPoint, 0)
	for rows.Next() {
		e, err := scanMoodEntry(rows)
		if err != nil {
			return nil, err
		}
		intensity := 5
		if e.Intensity != nil {
			intensity = *e.Intensity
		}
		points = append(points, MoodTrendPoint{
			Date:      e.EntryDate.Format("2006-01-02"),
			Mood:      e.Mood,
			Intensity: intensity,
		})
	}
	return points, rows.Err()
}
