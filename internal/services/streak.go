package services

import "time"

// Day truncates a timestamp to its calendar date, normalized to UTC so dates
// scanned from the store and dates built from time.Now compare equal.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalculateStreak counts consecutive calendar days with at least one journal
// entry, ending today or yesterday. entryDates must be distinct calendar
// dates sorted descending (newest first).
//
// If today has an entry it seeds the streak; otherwise the walk starts at
// yesterday, so a streak that has not been extended yet today still counts.
// The first gap terminates the walk; dates newer than the cursor are skipped
// without terminating (they were consumed by the today check).
func CalculateStreak(entryDates []time.Time, today time.Time) int {
	if len(entryDates) == 0 {
		return 0
	}

	streak := 0
	cursor := Day(today)

	hasToday := false
	for _, d := range entryDates {
		if Day(d).Equal(cursor) {
			hasToday = true
			break
		}
	}
	if hasToday {
		streak = 1
	}
	cursor = cursor.AddDate(0, 0, -1)

	for _, d := range entryDates {
		day := Day(d)
		if day.Equal(cursor) {
			streak++
			cursor = cursor.AddDate(0, 0, -1)
		} else if day.Before(cursor) {
			break
		}
	}

	return streak
}
