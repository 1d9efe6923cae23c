package journal

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

// Autosave interval bounds, in seconds.
const (
	MinAutosaveSeconds = 5
	MaxAutosaveSeconds = 300
)

// DraftContent is the in-progress field state captured from an open
// entry form.
type DraftContent struct {
	Title      string
	Content    string
	Mood       models.Mood
	Activities []string
	Tags       []string
}

// CaptureFunc returns the current field values of the composing form.
type CaptureFunc func() DraftContent

// Session is the draft autosave controller for one composing session.
//
// A session is minted with a fresh draft id when composition begins and
// retired on submit or discard. While active it captures the form state
// into the store's single draft slot every interval tick and on demand
// (loss of focus). Saves and the final clear are serialized under one
// mutex, so a tick can never resurrect a draft after it was cleared.
type Session struct {
	store   *Store
	logger  *slog.Logger
	capture CaptureFunc
	id      string

	ticker *time.Ticker
	done   chan struct{}
}

// NewSession starts a composing session. The autosave interval comes
// from the store's current settings, clamped to [MinAutosaveSeconds,
// MaxAutosaveSeconds].
func NewSession(store *Store, logger *slog.Logger, capture CaptureFunc) *Session {
	s := &Session{
		store:   store,
		logger:  logger,
		capture: capture,
		id:      uuid.NewString(),
		ticker:  time.NewTicker(clampInterval(store.Settings().AutosaveInterval)),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// DraftID returns the session-scoped draft id.
func (s *Session) DraftID() string {
	return s.id
}

func (s *Session) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			if err := s.Flush(); err != nil && err != apperr.ErrDraftRetired {
				s.logger.Warn("autosave tick failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Flush captures the current form state into the draft slot. Called by
// the interval ticker and on loss of focus. After the session is retired
// it returns apperr.ErrDraftRetired and writes nothing.
func (s *Session) Flush() error {
	// The store mutex serializes this save against Submit/Discard; the
	// retired check below runs under the same lock as the clear, so a
	// late tick observes the retirement instead of racing it.
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	select {
	case <-s.done:
		return apperr.ErrDraftRetired
	default:
	}

	content := s.capture()
	return s.store.saveDraftLocked(models.JournalDraft{
		ID:         s.id,
		Title:      content.Title,
		Content:    content.Content,
		Mood:       content.Mood,
		Activities: content.Activities,
		Tags:       content.Tags,
	})
}

// Submit finalizes the composition: the entry is added (which clears the
// draft slot), the ticker is released, and the session is retired.
func (s *Session) Submit(entry models.JournalEntry) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	select {
	case <-s.done:
		return apperr.ErrDraftRetired
	default:
	}
	s.retireLocked()

	return s.store.addEntryLocked(entry)
}

// Discard abandons the composition: the draft slot is cleared, the
// ticker is released, and the session is retired.
func (s *Session) Discard() error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	select {
	case <-s.done:
		return apperr.ErrDraftRetired
	default:
	}
	s.retireLocked()

	if err := s.store.clearDraftLocked(); err != nil {
		return err
	}
	return nil
}

// Close retires the session without touching the draft slot (session
// teardown, e.g. navigation away). Safe to call more than once.
func (s *Session) Close() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	select {
	case <-s.done:
	default:
		s.retireLocked()
	}
}

func (s *Session) retireLocked() {
	s.ticker.Stop()
	close(s.done)
}

func clampInterval(seconds int) time.Duration {
	if seconds < MinAutosaveSeconds {
		seconds = MinAutosaveSeconds
	}
	if seconds > MaxAutosaveSeconds {
		seconds = MaxAutosaveSeconds
	}
	return time.Duration(seconds) * time.Second
}
