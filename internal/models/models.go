// Package models defines the domain types for Dagaz.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Mood is one value from the fixed set of moods an entry can carry.
type Mood string

// The fixed mood set. Persisted as lowercase strings.
const (
	MoodHappy     Mood = "happy"
	MoodContent   Mood = "content"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodAngry     Mood = "angry"
	MoodMotivated Mood = "motivated"
	MoodAnxious   Mood = "anxious"
	MoodGrateful  Mood = "grateful"
	MoodTired     Mood = "tired"
	MoodExcited   Mood = "excited"
)

// MoodInfo carries display metadata for a mood.
type MoodInfo struct {
	Mood  Mood   `json:"mood"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
	// Score positions the mood on the 1..5 trend axis.
	Score int `json:"score"`
}

// Moods lists every supported mood in display order.
var Moods = []MoodInfo{
	{MoodHappy, "Happy", "\U0001F600", "#4CAF50", 5},
	{MoodContent, "Content", "\U0001F60A", "#8BC34A", 4},
	{MoodNeutral, "Neutral", "\U0001F610", "#FFC107", 3},
	{MoodSad, "Sad", "\U0001F614", "#FF9800", 1},
	{MoodAngry, "Angry", "\U0001F621", "#F44336", 1},
	{MoodMotivated, "Motivated", "\U0001F4AA", "#3F51B5", 4},
	{MoodAnxious, "Anxious", "\U0001F630", "#9C27B0", 2},
	{MoodGrateful, "Grateful", "\U0001F64F", "#009688", 4},
	{MoodTired, "Tired", "\U0001F634", "#795548", 2},
	{MoodExcited, "Excited", "\U0001F929", "#E91E63", 5},
}

// Valid reports whether m is one of the fixed moods.
func (m Mood) Valid() bool {
	for _, info := range Moods {
		if info.Mood == m {
			return true
		}
	}
	return false
}

// Emoji returns the display emoji for the mood, or "?" for unknown values.
func (m Mood) Emoji() string {
	for _, info := range Moods {
		if info.Mood == m {
			return info.Emoji
		}
	}
	return "?"
}

// Score returns the 1..5 trend-axis position of the mood.
// Unknown moods sit in the middle of the axis.
func (m Mood) Score() int {
	for _, info := range Moods {
		if info.Mood == m {
			return info.Score
		}
	}
	return 3
}

// Color returns the display color for the mood.
func (m Mood) Color() string {
	for _, info := range Moods {
		if info.Mood == m {
			return info.Color
		}
	}
	return "#CCCCCC"
}

// moodValues is the validation.In argument list built from Moods.
func moodValues() []interface{} {
	vals := make([]interface{}, len(Moods))
	for i, info := range Moods {
		vals[i] = info.Mood
	}
	return vals
}

// JournalEntry is a single dated journal record.
//
// WordCount is derived from Content at save time and never trusted from
// caller input. LastEdited is set only by update, never by create.
type JournalEntry struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Mood             Mood       `json:"mood"`
	Activities       []string   `json:"activities,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	Date             time.Time  `json:"date"`
	WordCount        int        `json:"wordCount"`
	IsGratitudeEntry bool       `json:"isGratitudeEntry,omitempty"`
	GratitudeItems   []string   `json:"gratitudeItems,omitempty"`
	LastEdited       *time.Time `json:"lastEdited,omitempty"`
}

// Validate checks the fields a caller must supply before the entry can be
// stored. Derived fields (WordCount, LastEdited) are not validated here.
func (e JournalEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Title, validation.Required),
		validation.Field(&e.Content, validation.Required),
		validation.Field(&e.Mood, validation.Required, validation.In(moodValues()...)),
		validation.Field(&e.Date, validation.Required),
	)
}

// JournalDraft is the single in-progress entry being composed. Exactly one
// draft slot exists at a time; its ID is session-scoped and distinct from
// any entry id.
type JournalDraft struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Mood       Mood      `json:"mood"`
	Activities []string  `json:"activities,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	LastSaved  time.Time `json:"lastSaved"`
}

// FontSettings selects the journal typeface.
type FontSettings struct {
	Family string `json:"family"`
	Size   string `json:"size"`
}

// WritingGoals holds daily/weekly/monthly word targets.
type WritingGoals struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
}

// UserSettings is the singleton settings record. An absent or corrupt
// persisted copy is replaced by DefaultSettings, never left undefined.
type UserSettings struct {
	Theme        string       `json:"theme"`
	Font         FontSettings `json:"font"`
	WritingGoals WritingGoals `json:"writingGoals"`
	ShowPrompts  bool         `json:"showPrompts"`
	// AutosaveInterval is in seconds, clamped to [5, 300] by the
	// autosave controller.
	AutosaveInterval int `json:"autosaveInterval"`
}

// DefaultSettings returns the documented default settings record.
func DefaultSettings() UserSettings {
	return UserSettings{
		Theme: "light",
		Font: FontSettings{
			Family: "Segoe UI, sans-serif",
			Size:   "medium",
		},
		WritingGoals: WritingGoals{
			Daily:   500,
			Weekly:  3000,
			Monthly: 12000,
		},
		ShowPrompts:      true,
		AutosaveInterval: 30,
	}
}
