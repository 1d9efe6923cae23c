// Package calendar projects an entry snapshot onto a month grid.
package calendar

import (
	"time"

	"github.com/starford/dagaz/internal/models"
)

// Rows and columns of the month grid. The grid always spans six full
// weeks so adjacent months render with a stable height.
const (
	Columns = 7
	Rows    = 6
)

// Day is one cell of the month grid.
type Day struct {
	// Day is the calendar day number within its own month.
	Day int `json:"day"`
	// Date is the cell's concrete date at midnight local time.
	Date time.Time `json:"date"`
	// OtherMonth marks leading/trailing cells from adjacent months.
	OtherMonth bool `json:"otherMonth"`
	// IsToday marks the current real-world date.
	IsToday bool `json:"isToday"`
	// Entries whose date falls on this calendar day, regardless of
	// time-of-day.
	Entries []models.JournalEntry `json:"entries"`
	// Moods observed on this day, distinct, in first-seen order.
	Moods []models.Mood `json:"moods"`
}

// Month projects entries onto the grid for the given year and month:
// leading days from the previous month align the 1st onto its weekday,
// then every day of the target month, then trailing days from the next
// month until the grid is full.
func Month(entries []models.JournalEntry, year int, month time.Month) []Day {
	return monthAt(entries, year, month, time.Now())
}

func monthAt(entries []models.JournalEntry, year int, month time.Month, now time.Time) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lead := int(first.Weekday())

	grid := make([]Day, 0, Rows*Columns)
	for i := 0; i < Rows*Columns; i++ {
		date := first.AddDate(0, 0, i-lead)
		dayEntries := entriesOn(entries, date)
		grid = append(grid, Day{
			Day:        date.Day(),
			Date:       date,
			OtherMonth: date.Month() != month,
			IsToday:    sameDay(date, now),
			Entries:    dayEntries,
			Moods:      moodSummary(dayEntries),
		})
	}
	return grid
}

// Prev steps one month back, wrapping the year at January.
func Prev(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// Next steps one month forward, wrapping the year at December.
func Next(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func entriesOn(entries []models.JournalEntry, date time.Time) []models.JournalEntry {
	var out []models.JournalEntry
	for _, e := range entries {
		if sameDay(e.Date, date) {
			out = append(out, e)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func moodSummary(entries []models.JournalEntry) []models.Mood {
	var moods []models.Mood
	for _, e := range entries {
		seen := false
		for _, m := range moods {
			if m == e.Mood {
				seen = true
				break
			}
		}
		if !seen {
			moods = append(moods, e.Mood)
		}
	}
	return moods
}
