// Package codec serializes journal entities to and from the backing
// store's JSON-textual payload format.
//
// Decoding is defensive: a malformed payload yields the entity's zero or
// default value alongside the parse error, so a corrupt read can never
// poison the in-memory state. Temporal fields travel as RFC 3339 text and
// are reconstructed as time values. Unknown fields in a payload are
// dropped on round-trip.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/starford/dagaz/internal/models"
)

// EncodeEntries serializes the entries collection.
func EncodeEntries(entries []models.JournalEntry) ([]byte, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("codec: encode entries: %w", err)
	}
	return data, nil
}

// DecodeEntries deserializes the entries collection. Malformed payloads
// yield a nil slice and the parse error.
func DecodeEntries(data []byte) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("codec: decode entries: %w", err)
	}
	return entries, nil
}

// EncodeDraft serializes the draft slot.
func EncodeDraft(draft models.JournalDraft) ([]byte, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("codec: encode draft: %w", err)
	}
	return data, nil
}

// DecodeDraft deserializes the draft slot. Malformed payloads yield a nil
// draft and the parse error.
func DecodeDraft(data []byte) (*models.JournalDraft, error) {
	var draft models.JournalDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("codec: decode draft: %w", err)
	}
	return &draft, nil
}

// EncodeTags serializes the tag registry.
func EncodeTags(tags []string) ([]byte, error) {
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("codec: encode tags: %w", err)
	}
	return data, nil
}

// DecodeTags deserializes the tag registry. Malformed payloads yield a
// nil slice and the parse error.
func DecodeTags(data []byte) ([]string, error) {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("codec: decode tags: %w", err)
	}
	return tags, nil
}

// EncodeSettings serializes the settings singleton.
func EncodeSettings(settings models.UserSettings) ([]byte, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("codec: encode settings: %w", err)
	}
	return data, nil
}

// DecodeSettings deserializes the settings singleton. Malformed payloads
// yield the documented defaults and the parse error.
func DecodeSettings(data []byte) (models.UserSettings, error) {
	var settings models.UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.DefaultSettings(), fmt.Errorf("codec: decode settings: %w", err)
	}
	return settings, nil
}
