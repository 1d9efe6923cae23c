package stats

import (
	"testing"
	"time"

	"github.com/starford/dagaz/internal/models"
)

func entry(words int, date time.Time) models.JournalEntry {
	return models.JournalEntry{WordCount: words, Date: date}
}

func TestGoalsWindows(t *testing.T) {
	// Wednesday Jan 17 2024; the week started Sunday Jan 14.
	now := time.Date(2024, 1, 17, 15, 0, 0, 0, time.UTC)
	goals := models.WritingGoals{Daily: 500, Weekly: 3000, Monthly: 12000}

	entries := []models.JournalEntry{
		entry(100, time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)),   // today
		entry(200, time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)),  // this week
		entry(400, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)),   // this month
		entry(800, time.Date(2023, 12, 30, 10, 0, 0, 0, time.UTC)), // last month
	}

	got := Goals(entries, goals, now)

	if got.Daily != (Progress{Words: 100, Target: 500}) {
		t.Errorf("daily = %+v", got.Daily)
	}
	if got.Weekly != (Progress{Words: 300, Target: 3000}) {
		t.Errorf("weekly = %+v", got.Weekly)
	}
	if got.Monthly != (Progress{Words: 700, Target: 12000}) {
		t.Errorf("monthly = %+v", got.Monthly)
	}
}

func TestGoalsIgnoresFutureEntries(t *testing.T) {
	now := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	entries := []models.JournalEntry{
		entry(100, time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)),
		entry(500, time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC)), // future
	}

	got := Goals(entries, models.WritingGoals{}, now)
	if got.Daily.Words != 100 || got.Monthly.Words != 100 {
		t.Errorf("progress = %+v", got)
	}
}

func TestGoalsEmpty(t *testing.T) {
	goals := models.WritingGoals{Daily: 500, Weekly: 3000, Monthly: 12000}
	got := Goals(nil, goals, time.Now())
	if got.Daily.Words != 0 || got.Weekly.Words != 0 || got.Monthly.Words != 0 {
		t.Errorf("expected zero progress, got %+v", got)
	}
	if got.Daily.Target != 500 || got.Monthly.Target != 12000 {
		t.Errorf("targets not carried: %+v", got)
	}
}
