// Package timeslot holds the calendar arithmetic for the hourly booking
// grid. All slots live on the top of an hour in local time.
package timeslot

import "time"

// StartOfHour truncates t to the top of its hour, preserving location.
func StartOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// At returns the slot instant for the given local calendar hour.
func At(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

// EndOfDay returns the last instant (23:59:59) of the given local
// calendar day.
func EndOfDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 23, 59, 59, 0, time.Local)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
