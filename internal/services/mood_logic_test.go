package services

import (
	"testing"

	"github.com/daybookapp/daybook-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func TestComputeMoodStats(t *testing.T) {
	entries := []models.MoodEntry{
		{Mood: "Happy", Intensity: intp(8)},
		{Mood: "Happy", Intensity: intp(6)},
		{Mood: "Calm"},
		{Mood: "Anxious", Intensity: intp(4)},
		{Mood: "Happy"},
	}

	stats := ComputeMoodStats(entries)

	assert.Equal(t, 5, stats.TotalEntries)
	// Counts descending; ties break alphabetically
	assert.Equal(t, []MoodCount{
		{Mood: "Happy", Count: 3},
		{Mood: "Anxious", Count: 1},
		{Mood: "Calm", Count: 1},
	}, stats.MoodCounts)
	// Average covers only entries that recorded an intensity
	assert.InDelta(t, 6.0, stats.AverageIntensity, 0.001)
}

func TestComputeMoodStatsNoIntensities(t *testing.T) {
	entries := []models.MoodEntry{
		{Mood: "Tired"},
		{Mood: "Tired"},
	}

	stats := ComputeMoodStats(entries)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 0.0, stats.AverageIntensity)
}

func TestComputeMoodStatsEmpty(t *testing.T) {
	stats := ComputeMoodStats(nil)
	assert.Equal(t, 0, stats.TotalEntries)
	assert.Empty(t, stats.MoodCounts)
	assert.Equal(t, 0.0, stats.AverageIntensity)
}
