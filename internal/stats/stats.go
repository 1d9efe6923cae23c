// Package stats computes writing-goal progress from an entry snapshot.
package stats

import (
	"time"

	"github.com/starford/dagaz/internal/models"
)

// Progress reports words written against one configured target.
type Progress struct {
	Words  int `json:"words"`
	Target int `json:"target"`
}

// GoalProgress aggregates daily, weekly, and monthly progress.
type GoalProgress struct {
	Daily   Progress `json:"daily"`
	Weekly  Progress `json:"weekly"`
	Monthly Progress `json:"monthly"`
}

// Goals sums entry word counts for today, the current week (starting
// Sunday), and the current month, against the configured targets.
func Goals(entries []models.JournalEntry, goals models.WritingGoals, now time.Time) GoalProgress {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var daily, weekly, monthly int
	for _, e := range entries {
		if e.Date.After(now) {
			continue
		}
		if !e.Date.Before(monthStart) {
			monthly += e.WordCount
		}
		if !e.Date.Before(weekStart) {
			weekly += e.WordCount
		}
		if !e.Date.Before(dayStart) {
			daily += e.WordCount
		}
	}

	return GoalProgress{
		Daily:   Progress{Words: daily, Target: goals.Daily},
		Weekly:  Progress{Words: weekly, Target: goals.Weekly},
		Monthly: Progress{Words: monthly, Target: goals.Monthly},
	}
}
