package services

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/daybookapp/daybook-backend/internal/models"
	"github.com/daybookapp/daybook-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
		want  int
	}{
		{"no entries", 0, 10, 0},
		{"exact fit", 20, 10, 2},
		{"partial last page", 25, 10, 3},
		{"single short page", 3, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.size))
		})
	}
}

func TestSummarizeContent(t *testing.T) {
	short := "a short entry"
	assert.Equal(t, short, SummarizeContent(short))

	long := strings.Repeat("x", 250)
	got := SummarizeContent(long)
	assert.Len(t, got, SummaryLength+3)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, long[:SummaryLength], got[:SummaryLength])

	exact := strings.Repeat("y", SummaryLength)
	assert.Equal(t, exact, SummarizeContent(exact))
}

func TestSummarizeContentCutsOnRunes(t *testing.T) {
	// 250 three-byte runes: a byte-indexed cut would land mid-rune
	long := strings.Repeat("日", 250)
	got := SummarizeContent(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("日", SummaryLength)+"...", got)
}

func TestAggregateTags(t *testing.T) {
	// Trim and dedupe, but no case folding: "Work" and "work" stay distinct
	got := AggregateTags([]string{"Work, personal", "work", ""})
	assert.Equal(t, []string{"Work", "personal", "work"}, got)
}

func TestAggregateTagsDropsEmptySegments(t *testing.T) {
	got := AggregateTags([]string{" , ,travel", "travel,  food  "})
	assert.Equal(t, []string{"food", "travel"}, got)
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	start, end := MonthWindow(2026, 2, now)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)

	// Zero year/month default to the current month
	start, end = MonthWindow(0, 0, now)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls over the year
	start, end = MonthWindow(2026, 12, now)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestGenerateJournalCSV(t *testing.T) {
	entries := []models.JournalEntry{
		{
			EntryDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			Title:     `My "big" day`,
			Content:   "line one\nline two\r\nquote \"here\"",
			Tags:      "work,personal",
		},
	}

	csv := GenerateJournalCSV(entries)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "Date,Title,Content,Tags", lines[0])
	assert.Equal(t, `"2026-01-15","My ""big"" day","line one line two  quote ""here""","work,personal"`, lines[1])
}

func TestGenerateJournalCSVEmpty(t *testing.T) {
	csv := GenerateJournalCSV(nil)
	assert.Equal(t, "Date,Title,Content,Tags\n", csv)
}

func TestPinGateActive(t *testing.T) {
	hash := "somehash"
	empty := ""

	tests := []struct {
		name  string
		entry models.JournalEntry
		want  bool
	}{
		{"unprotected", models.JournalEntry{}, false},
		{"protected with hash", models.JournalEntry{IsProtected: true, PinHash: &hash}, true},
		// Protected but no PIN was ever set: gating would lock the entry
		// out forever, so the gate stays open
		{"protected without hash", models.JournalEntry{IsProtected: true}, false},
		{"protected with empty hash", models.JournalEntry{IsProtected: true, PinHash: &empty}, false},
		{"hash left behind but unprotected", models.JournalEntry{IsProtected: false, PinHash: &hash}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PinGateActive(&tt.entry))
		})
	}
}

func TestNextPinHash(t *testing.T) {
	oldHash := "oldhash"
	newHash := utils.HashPin("5678")

	tests := []struct {
		name        string
		existing    *string
		isProtected bool
		pin         string
		want        *string
	}{
		{"stays protected, no new pin, hash kept", &oldHash, true, "", &oldHash},
		{"stays protected, new pin replaces hash", &oldHash, true, "5678", &newHash},
		// Unprotecting clears the hash even when a pin value rides
		// along in the same request
		{"unprotected with pin still clears hash", &oldHash, false, "5678", nil},
		{"unprotected without pin clears hash", &oldHash, false, "", nil},
		{"fresh protected entry with pin", nil, true, "5678", &newHash},
		{"fresh protected entry without pin never gates", nil, true, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextPinHash(tt.existing, tt.isProtected, tt.pin)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}
