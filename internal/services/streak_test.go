package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func days(today time.Time, offsets ...int) []time.Time {
	// offsets are days back from today, and must be given newest first
	out := make([]time.Time, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, Day(today).AddDate(0, 0, -o))
	}
	return out
}

func TestCalculateStreak(t *testing.T) {
	today := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"empty set", nil, 0},
		{"only today", []int{0}, 1},
		{"three consecutive days ending today", []int{0, 1, 2}, 3},
		{"streak ending yesterday still counts", []int{1, 2}, 2},
		{"gap after today stops the walk", []int{0, 2}, 1},
		{"gap before yesterday means no streak", []int{2, 3}, 0},
		{"long run with old gap", []int{0, 1, 2, 3, 7, 8}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStreak(days(today, tt.offsets...), today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateStreakNormalizesTimeParts(t *testing.T) {
	today := time.Date(2026, 3, 15, 23, 59, 59, 0, time.Local)
	// Entry dates come back from the store as UTC midnights
	dates := []time.Time{
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, CalculateStreak(dates, today))
}
