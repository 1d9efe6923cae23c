// Package trend projects an entry snapshot onto the mood trend series.
package trend

import (
	"sort"

	"github.com/starford/dagaz/internal/models"
)

// Point is one sample of the mood trend line.
type Point struct {
	// Label is the short date label for the chart axis, e.g. "Jan 5".
	Label string `json:"label"`
	// Score is the mood's 1..5 position on the trend axis.
	Score int         `json:"score"`
	Mood  models.Mood `json:"mood"`
}

// Series maps entries to chart points, oldest first. Fewer than two
// entries yield no series; a single sample draws no line.
func Series(entries []models.JournalEntry) []Point {
	if len(entries) < 2 {
		return nil
	}

	sorted := make([]models.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]Point, len(sorted))
	for i, e := range sorted {
		points[i] = Point{
			Label: e.Date.Format("Jan 2"),
			Score: e.Mood.Score(),
			Mood:  e.Mood,
		}
	}
	return points
}
