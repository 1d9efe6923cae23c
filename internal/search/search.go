// Package search filters an entry snapshot by text, mood, tag, and date
// range.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/plaintext"
)

// Filter is the conjunctive filter over entries. Zero-valued dimensions match
// everything.
type Filter struct {
	// Query matches case-insensitively as a substring of the title,
	// the plain-text content, or any tag.
	Query string
	Mood  models.Mood
	Tag   string
	// Start and End bound the entry date, inclusive on both ends,
	// normalized to whole-day boundaries regardless of the
	// time-of-day stored on entries.
	Start *time.Time
	End   *time.Time
}

// Apply returns the entries matching every set dimension of the filter,
// sorted newest-first by date. An inverted date range yields an empty
// result rather than an error.
func Apply(entries []models.JournalEntry, f Filter) []models.JournalEntry {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	var start, end time.Time
	if f.Start != nil {
		start = dayStart(*f.Start)
	}
	if f.End != nil {
		end = dayEnd(*f.End)
	}

	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		if f.Mood != "" && e.Mood != f.Mood {
			continue
		}
		if f.Tag != "" && !hasTag(e, f.Tag) {
			continue
		}
		if f.Start != nil && e.Date.Before(start) {
			continue
		}
		if f.End != nil && e.Date.After(end) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func matchesQuery(e models.JournalEntry, query string) bool {
	if strings.Contains(strings.ToLower(e.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(plaintext.Strip(e.Content)), query) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func hasTag(e models.JournalEntry, tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}
