// Package journal implements the persisted reactive data layer: the
// store owning entries, tags, settings, and the draft slot, plus the
// draft autosave controller.
package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/broadcast"
	"github.com/starford/dagaz/internal/codec"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/plaintext"
	"github.com/starford/dagaz/internal/storage"
)

// Persisted keys. Four independent keys, no namespacing scheme beyond
// these fixed literal names.
const (
	KeyEntries  = "journal_entries"
	KeyDraft    = "journal_draft"
	KeyTags     = "journal_tags"
	KeySettings = "journal_settings"
)

// Store owns the authoritative in-memory copies of all journal
// collections and keeps them durable through the backing store.
//
// Every mutation runs to completion under one mutex: persist first, then
// apply in memory, then broadcast the full resulting collection. A failed
// persist leaves both memory and subscribers untouched, so readers only
// ever observe states that survived a complete mutation+persist cycle.
type Store struct {
	mu      sync.Mutex
	backing storage.Provider
	logger  *slog.Logger

	entries  []models.JournalEntry
	tags     []string
	settings models.UserSettings
	draft    *models.JournalDraft

	// hashes fingerprints the payload last written to (or read from)
	// each persisted key, so out-of-band modifications of the backing
	// store can be detected without re-decoding.
	hashes map[string]string

	entriesHub  *broadcast.Hub[[]models.JournalEntry]
	tagsHub     *broadcast.Hub[[]string]
	settingsHub *broadcast.Hub[models.UserSettings]
}

// Open loads all collections from the backing store and starts the
// notification hubs. Malformed persisted payloads are replaced by empty
// or default values and logged, never surfaced.
func Open(backing storage.Provider, logger *slog.Logger) *Store {
	s := &Store{
		backing:  backing,
		logger:   logger,
		settings: models.DefaultSettings(),
		hashes:   make(map[string]string),
	}
	s.load()

	s.entriesHub = broadcast.NewHub(s.snapshotEntries())
	s.tagsHub = broadcast.NewHub(s.snapshotTags())
	s.settingsHub = broadcast.NewHub(s.settings)
	return s
}

// Close shuts down the notification hubs.
func (s *Store) Close() {
	s.entriesHub.Close()
	s.tagsHub.Close()
	s.settingsHub.Close()
}

func (s *Store) load() {
	if data, ok := s.readKey(KeyEntries); ok {
		entries, err := codec.DecodeEntries(data)
		if err != nil {
			s.logger.Warn("discarding corrupt entries payload", slog.String("error", err.Error()))
		}
		s.entries = entries
	}

	if data, ok := s.readKey(KeyTags); ok {
		tags, err := codec.DecodeTags(data)
		if err != nil {
			s.logger.Warn("discarding corrupt tags payload", slog.String("error", err.Error()))
		}
		s.tags = tags
	}

	if data, ok := s.readKey(KeySettings); ok {
		settings, err := codec.DecodeSettings(data)
		if err != nil {
			s.logger.Warn("discarding corrupt settings payload", slog.String("error", err.Error()))
		}
		s.settings = settings
	}

	if data, ok := s.readKey(KeyDraft); ok {
		draft, err := codec.DecodeDraft(data)
		if err != nil {
			s.logger.Warn("discarding corrupt draft payload", slog.String("error", err.Error()))
		}
		s.draft = draft
	}
}

// readKey reads one persisted key and records its fingerprint. A missing
// key is not an error; any other read failure is logged and treated as
// absent.
func (s *Store) readKey(key string) ([]byte, bool) {
	data, err := s.backing.Read(key)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn("reading persisted key failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}
		delete(s.hashes, key)
		return nil, false
	}
	s.hashes[key] = payloadHash(data)
	return data, true
}

// Reload re-reads every collection from the backing store and
// re-broadcasts. Used when the data directory was modified out-of-band.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.tags = nil
	s.settings = models.DefaultSettings()
	s.draft = nil
	s.hashes = make(map[string]string)
	s.load()

	s.entriesHub.Publish(s.snapshotEntries())
	s.tagsHub.Publish(s.snapshotTags())
	s.settingsHub.Publish(s.settings)
}

// DiskChanged reports whether any persisted key's payload differs from
// the fingerprint of what this store last wrote or read. Used by the
// data-directory watcher to ignore the store's own writes.
func (s *Store) DiskChanged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{KeyEntries, KeyDraft, KeyTags, KeySettings} {
		data, err := s.backing.Read(key)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				if _, ok := s.hashes[key]; ok {
					return true
				}
			}
			continue
		}
		if s.hashes[key] != payloadHash(data) {
			return true
		}
	}
	return false
}

// ListEntries returns the current snapshot, most-recent-first by date.
func (s *Store) ListEntries() []models.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotEntries()
}

// GetEntry returns the entry with the given id.
func (s *Store) GetEntry(id string) (models.JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.JournalEntry{}, false
}

// AddEntry inserts a new entry, registers any unseen tags, clears the
// draft slot, and broadcasts the resulting tag and entry collections.
// The caller supplies the id; uniqueness is not enforced here.
func (s *Store) AddEntry(entry models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addEntryLocked(entry)
}

func (s *Store) addEntryLocked(entry models.JournalEntry) error {
	stampDerived(&entry, nil)

	tags, tagsChanged := mergeTags(s.tags, entry.Tags)
	entries := append([]models.JournalEntry{entry}, s.entries...)

	if err := s.persistEntries(entries); err != nil {
		return err
	}
	if tagsChanged {
		if err := s.persistTags(tags); err != nil {
			return err
		}
	}

	s.entries = entries
	s.tags = tags
	s.draft = nil
	// Draft removal is best-effort: the entry itself is already durable.
	if err := s.backing.Delete(KeyDraft); err != nil {
		s.logger.Warn("clearing draft after save failed", slog.String("error", err.Error()))
	} else {
		delete(s.hashes, KeyDraft)
	}

	if tagsChanged {
		s.tagsHub.Publish(s.snapshotTags())
	}
	s.entriesHub.Publish(s.snapshotEntries())
	return nil
}

// UpdateEntry replaces the entry with a matching id, stamping LastEdited.
// An unknown id is a silent no-op.
func (s *Store) UpdateEntry(entry models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.entries {
		if e.ID == entry.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	now := time.Now()
	stampDerived(&entry, &now)

	tags, tagsChanged := mergeTags(s.tags, entry.Tags)
	entries := make([]models.JournalEntry, len(s.entries))
	copy(entries, s.entries)
	entries[idx] = entry

	if err := s.persistEntries(entries); err != nil {
		return err
	}
	if tagsChanged {
		if err := s.persistTags(tags); err != nil {
			return err
		}
	}

	s.entries = entries
	s.tags = tags

	if tagsChanged {
		s.tagsHub.Publish(s.snapshotTags())
	}
	s.entriesHub.Publish(s.snapshotEntries())
	return nil
}

// DeleteEntry removes the entry with the given id. An unknown id is a
// silent no-op.
func (s *Store) DeleteEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	entries := make([]models.JournalEntry, 0, len(s.entries)-1)
	entries = append(entries, s.entries[:idx]...)
	entries = append(entries, s.entries[idx+1:]...)

	if err := s.persistEntries(entries); err != nil {
		return err
	}

	s.entries = entries
	s.entriesHub.Publish(s.snapshotEntries())
	return nil
}

// Tags returns the current tag registry.
func (s *Store) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotTags()
}

// DeleteTag removes a tag from the registry and strips it from every
// entry that references it. One logical operation, two persisted writes
// (tags, entries) and two broadcasts; a crash between the writes leaves a
// narrow, documented inconsistency window that the next Reload resolves
// toward the registry-is-superset invariant.
func (s *Store) DeleteTag(tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make([]string, 0, len(s.tags))
	for _, t := range s.tags {
		if t != tag {
			tags = append(tags, t)
		}
	}

	entries := make([]models.JournalEntry, len(s.entries))
	copy(entries, s.entries)
	entriesChanged := false
	for i, e := range entries {
		stripped := stripTag(e.Tags, tag)
		if len(stripped) != len(e.Tags) {
			entries[i].Tags = stripped
			entriesChanged = true
		}
	}

	if err := s.persistTags(tags); err != nil {
		return err
	}
	if entriesChanged {
		if err := s.persistEntries(entries); err != nil {
			return err
		}
	}

	s.tags = tags
	s.tagsHub.Publish(s.snapshotTags())
	if entriesChanged {
		s.entries = entries
		s.entriesHub.Publish(s.snapshotEntries())
	}
	return nil
}

// Settings returns the current settings record.
func (s *Store) Settings() models.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the settings singleton wholesale, persists, and
// broadcasts. There are no merge semantics.
func (s *Store) UpdateSettings(settings models.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := codec.EncodeSettings(settings)
	if err != nil {
		return err
	}
	if err := s.backing.Write(KeySettings, data); err != nil {
		return fmt.Errorf("journal: persist settings: %w", err)
	}
	s.hashes[KeySettings] = payloadHash(data)

	s.settings = settings
	s.settingsHub.Publish(settings)
	return nil
}

// Draft returns the current draft, or nil when the slot is empty.
// The draft has no broadcast channel; it is pull-only.
func (s *Store) Draft() *models.JournalDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil
	}
	d := *s.draft
	return &d
}

// SaveDraft replaces the single draft slot, stamping LastSaved to now
// regardless of the caller-provided value.
func (s *Store) SaveDraft(draft models.JournalDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveDraftLocked(draft)
}

func (s *Store) saveDraftLocked(draft models.JournalDraft) error {
	draft.LastSaved = time.Now()

	data, err := codec.EncodeDraft(draft)
	if err != nil {
		return err
	}
	if err := s.backing.Write(KeyDraft, data); err != nil {
		return fmt.Errorf("journal: persist draft: %w", err)
	}
	s.hashes[KeyDraft] = payloadHash(data)

	s.draft = &draft
	return nil
}

// ClearDraft empties the draft slot.
func (s *Store) ClearDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearDraftLocked()
}

func (s *Store) clearDraftLocked() error {
	if err := s.backing.Delete(KeyDraft); err != nil {
		return fmt.Errorf("journal: clear draft: %w", err)
	}
	delete(s.hashes, KeyDraft)
	s.draft = nil
	return nil
}

// SubscribeEntries registers against the entries channel: the latest
// snapshot is delivered immediately, then every subsequent snapshot in
// mutation order.
func (s *Store) SubscribeEntries() chan []models.JournalEntry {
	return s.entriesHub.Subscribe()
}

// UnsubscribeEntries removes an entries subscriber.
func (s *Store) UnsubscribeEntries(ch chan []models.JournalEntry) {
	s.entriesHub.Unsubscribe(ch)
}

// SubscribeTags registers against the tags channel.
func (s *Store) SubscribeTags() chan []string {
	return s.tagsHub.Subscribe()
}

// UnsubscribeTags removes a tags subscriber.
func (s *Store) UnsubscribeTags(ch chan []string) {
	s.tagsHub.Unsubscribe(ch)
}

// SubscribeSettings registers against the settings channel.
func (s *Store) SubscribeSettings() chan models.UserSettings {
	return s.settingsHub.Subscribe()
}

// UnsubscribeSettings removes a settings subscriber.
func (s *Store) UnsubscribeSettings(ch chan models.UserSettings) {
	s.settingsHub.Unsubscribe(ch)
}

func (s *Store) persistEntries(entries []models.JournalEntry) error {
	data, err := codec.EncodeEntries(entries)
	if err != nil {
		return err
	}
	if err := s.backing.Write(KeyEntries, data); err != nil {
		return fmt.Errorf("journal: persist entries: %w", err)
	}
	s.hashes[KeyEntries] = payloadHash(data)
	return nil
}

func (s *Store) persistTags(tags []string) error {
	data, err := codec.EncodeTags(tags)
	if err != nil {
		return err
	}
	if err := s.backing.Write(KeyTags, data); err != nil {
		return fmt.Errorf("journal: persist tags: %w", err)
	}
	s.hashes[KeyTags] = payloadHash(data)
	return nil
}

func payloadHash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// snapshotEntries clones the collection sorted most-recent-first by date.
// Callers outside the store only ever see these snapshots.
func (s *Store) snapshotEntries() []models.JournalEntry {
	out := make([]models.JournalEntry, len(s.entries))
	copy(out, s.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (s *Store) snapshotTags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// stampDerived recomputes the derived fields of an entry: word count from
// the plain-text content, gratitude normalization, and LastEdited for
// updates (nil for creates).
func stampDerived(e *models.JournalEntry, edited *time.Time) {
	e.WordCount = plaintext.WordCount(e.Content)
	e.LastEdited = edited

	if !e.IsGratitudeEntry {
		e.GratitudeItems = nil
		return
	}
	items := make([]string, 0, len(e.GratitudeItems))
	for _, item := range e.GratitudeItems {
		if strings.TrimSpace(item) != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		e.IsGratitudeEntry = false
		e.GratitudeItems = nil
		return
	}
	e.GratitudeItems = items
}

// mergeTags appends unseen tags (case-sensitive) to the registry,
// preserving registration order.
func mergeTags(registry, tags []string) ([]string, bool) {
	merged := registry
	changed := false
	for _, tag := range tags {
		seen := false
		for _, t := range merged {
			if t == tag {
				seen = true
				break
			}
		}
		if !seen {
			if !changed {
				merged = append([]string(nil), registry...)
				changed = true
			}
			merged = append(merged, tag)
		}
	}
	return merged, changed
}

func stripTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}
