package calendar

import (
	"testing"
	"time"

	"github.com/starford/dagaz/internal/models"
)

func TestMonthGridShape(t *testing.T) {
	grid := Month(nil, 2024, time.January)
	if len(grid) != Rows*Columns {
		t.Fatalf("expected %d cells, got %d", Rows*Columns, len(grid))
	}

	// January 1st 2024 is a Monday, so exactly one leading cell.
	if !grid[0].OtherMonth || grid[0].Day != 31 {
		t.Errorf("cell 0 = %+v, expected Dec 31", grid[0])
	}
	if grid[1].OtherMonth || grid[1].Day != 1 {
		t.Errorf("cell 1 = %+v, expected Jan 1", grid[1])
	}

	// Every day of the month appears exactly once with OtherMonth false.
	seen := make(map[int]int)
	for _, d := range grid {
		if !d.OtherMonth {
			seen[d.Day]++
		}
	}
	for day := 1; day <= 31; day++ {
		if seen[day] != 1 {
			t.Errorf("day %d appears %d times", day, seen[day])
		}
	}
	if len(seen) != 31 {
		t.Errorf("expected 31 in-month days, got %d", len(seen))
	}
}

func TestMonthLeadingWhenFirstIsSunday(t *testing.T) {
	// September 2024 starts on a Sunday: no leading cells.
	grid := Month(nil, 2024, time.September)
	if grid[0].OtherMonth || grid[0].Day != 1 {
		t.Errorf("cell 0 = %+v, expected Sep 1", grid[0])
	}
	// 30 in-month days leaves 12 trailing cells from October.
	if !grid[30].OtherMonth || grid[30].Day != 1 {
		t.Errorf("cell 30 = %+v, expected Oct 1", grid[30])
	}
	if !grid[41].OtherMonth || grid[41].Day != 12 {
		t.Errorf("cell 41 = %+v, expected Oct 12", grid[41])
	}
}

func TestMonthPlacesEntriesByCalendarDay(t *testing.T) {
	entries := []models.JournalEntry{
		{ID: "a", Mood: models.MoodHappy, Date: time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local)},
		{ID: "b", Mood: models.MoodSad, Date: time.Date(2024, 1, 5, 23, 30, 0, 0, time.Local)},
		{ID: "c", Mood: models.MoodHappy, Date: time.Date(2024, 1, 5, 12, 0, 0, 0, time.Local)},
		{ID: "d", Mood: models.MoodTired, Date: time.Date(2024, 2, 5, 12, 0, 0, 0, time.Local)},
	}
	grid := Month(entries, 2024, time.January)

	var jan5 Day
	for _, d := range grid {
		if !d.OtherMonth && d.Day == 5 {
			jan5 = d
		}
	}
	if len(jan5.Entries) != 3 {
		t.Fatalf("expected 3 entries on Jan 5, got %d", len(jan5.Entries))
	}
	// Moods are distinct and first-seen ordered.
	if len(jan5.Moods) != 2 || jan5.Moods[0] != models.MoodHappy || jan5.Moods[1] != models.MoodSad {
		t.Errorf("moods = %v", jan5.Moods)
	}

	for _, d := range grid {
		for _, e := range d.Entries {
			if e.ID == "d" {
				t.Error("February entry leaked into January grid")
			}
		}
	}
}

func TestMonthMarksToday(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 0, 0, 0, time.Local)
	grid := monthAt(nil, 2024, time.January, now)

	count := 0
	for _, d := range grid {
		if d.IsToday {
			count++
			if d.Day != 15 || d.OtherMonth {
				t.Errorf("today cell = %+v", d)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one today cell, got %d", count)
	}

	// A grid for a different month carries no today marker on in-month cells.
	grid = monthAt(nil, 2024, time.March, now)
	for _, d := range grid {
		if d.IsToday && !d.OtherMonth {
			t.Errorf("unexpected today cell in March: %+v", d)
		}
	}
}

func TestPrevNextWrap(t *testing.T) {
	if y, m := Prev(2024, time.January); y != 2023 || m != time.December {
		t.Errorf("Prev(2024, Jan) = %d, %v", y, m)
	}
	if y, m := Prev(2024, time.June); y != 2024 || m != time.May {
		t.Errorf("Prev(2024, Jun) = %d, %v", y, m)
	}
	if y, m := Next(2024, time.December); y != 2025 || m != time.January {
		t.Errorf("Next(2024, Dec) = %d, %v", y, m)
	}
	if y, m := Next(2024, time.June); y != 2024 || m != time.July {
		t.Errorf("Next(2024, Jun) = %d, %v", y, m)
	}
}
