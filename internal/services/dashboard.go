package services

import (
	"math"
	"time"

	"github.com/daybookapp/daybook-backend/internal/database"
	"github.com/daybookapp/daybook-backend/internal/models"
	"github.com/google/uuid"
)

// DashboardSummary is the read-only composition the dashboard view renders.
type DashboardSummary struct {
	TotalEntries     int                   `json:"total_entries"`
	EntriesLast30    int                   `json:"entries_last_30_days"`
	EntriesLast7     int                   `json:"entries_last_7_days"`
	Streak           int                   `json:"streak"`
	MoodCounts       []MoodCount           `json:"mood_counts"`
	AverageIntensity float64               `json:"average_intensity"`
	RecentEntries    []models.JournalEntry `json:"recent_entries"`
	MoodTrend        []MoodTrendPoint      `json:"mood_trend"`
}

func countJournalEntriesSince(userID uuid.UUID, since *time.Time) (int, error) {
	var count int
	var err error
	if since == nil {
		err = database.PostgresDB.QueryRow(
			"SELECT COUNT(*) FROM journal_entries WHERE user_id = $1", userID).Scan(&count)
	} else {
		err = database.PostgresDB.QueryRow(
			"SELECT COUNT(*) FROM journal_entries WHERE user_id = $1 AND entry_date >= $2", userID, *since).Scan(&count)
	}
	return count, err
}

// RecentJournalEntries returns the user's n most recent entries by entry
// date, summarized for display.
func RecentJournalEntries(userID uuid.UUID, n int) ([]models.JournalEntry, error) {
	all, err := ListJournalEntries(userID, JournalListOptions{Page: 1, PageSize: n})
	if err != nil {
		return nil, err
	}
	return all.Entries, nil
}

// GetDashboard composes journal counts, the current streak, 30-day mood
// statistics, the five most recent entries and a 7-day mood trend. Pure
// composition of the journal and mood service primitives.
func GetDashboard(userID uuid.UUID) (*DashboardSummary, error) {
	now := time.Now().UTC()
	last30 := now.AddDate(0, 0, -30)
	last7 := now.AddDate(0, 0, -7)

	total, err := countJournalEntriesSince(userID, nil)
	if err != nil {
		return nil, err
	}
	count30, err := countJournalEntriesSince(userID, &last30)
	if err != nil {
		return nil, err
	}
	count7, err := countJournalEntriesSince(userID, &last7)
	if err != nil {
		return nil, err
	}

	streak, err := JournalStreak(userID)
	if err != nil {
		return nil, err
	}

	moodStats, err := GetMoodStatistics(userID, 30)
	if err != nil {
		return nil, err
	}

	recent, err := RecentJournalEntries(userID, 5)
	if err != nil {
		return nil, err
	}

	trend, err := GetMoodTrend(userID, 7)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalEntries:     total,
		EntriesLast30:    count30,
		EntriesLast7:     count7,
		Streak:           streak,
		MoodCounts:       moodStats.MoodCounts,
		AverageIntensity: math.Round(moodStats.AverageIntensity*10) / 10,
		RecentEntries:    recent,
		MoodTrend:        trend,
	}, nil
}
