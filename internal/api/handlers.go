package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/export"
	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/prompt"
	"github.com/starford/dagaz/internal/search"
	"github.com/starford/dagaz/internal/stats"
	"github.com/starford/dagaz/internal/trend"
)

// dateLayout is the wire format for date-only query parameters.
const dateLayout = "2006-01-02"

// Handler holds API route handlers over the journal store.
type Handler struct {
	store *journal.Store
}

// NewHandler creates a new Handler.
func NewHandler(store *journal.Store) *Handler {
	return &Handler{store: store}
}

// ListEntries handles GET /entries.
func (h *Handler) ListEntries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ListEntries())
}

// GetEntry handles GET /entries/{id}.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.store.GetEntry(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// CreateEntry handles POST /entries. A missing id is assigned server-side;
// the date defaults to now.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var entry models.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	if err := entry.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.store.AddEntry(entry); err != nil {
		slog.Error("add entry failed", slog.String("id", entry.ID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	created, _ := h.store.GetEntry(entry.ID)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateEntry handles PUT /entries/{id}.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.store.GetEntry(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var entry models.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	entry.ID = id
	if err := entry.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.store.UpdateEntry(entry); err != nil {
		slog.Error("update entry failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	updated, _ := h.store.GetEntry(id)
	writeJSON(w, http.StatusOK, updated)
}

// DeleteEntry handles DELETE /entries/{id}. Unknown ids delete nothing
// and still succeed.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEntry(chi.URLParam(r, "id")); err != nil {
		slog.Error("delete entry failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTags handles GET /tags.
func (h *Handler) ListTags(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Tags())
}

// DeleteTag handles DELETE /tags/{tag}: the tag is removed from the
// registry and stripped from every entry.
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	if err := h.store.DeleteTag(tag); err != nil {
		slog.Error("delete tag failed", slog.String("tag", tag), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings handles GET /settings.
func (h *Handler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Settings())
}

// UpdateSettings handles PUT /settings. Full replacement, no merge.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.store.UpdateSettings(settings); err != nil {
		slog.Error("update settings failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// GetDraft handles GET /draft.
func (h *Handler) GetDraft(w http.ResponseWriter, _ *http.Request) {
	draft := h.store.Draft()
	if draft == nil {
		writeJSON(w, http.StatusNotFound, errorBody("no draft"))
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// SaveDraft handles PUT /draft.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var draft models.JournalDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if err := h.store.SaveDraft(draft); err != nil {
		slog.Error("save draft failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	saved := h.store.Draft()
	writeJSON(w, http.StatusOK, saved)
}

// ClearDraft handles DELETE /draft.
func (h *Handler) ClearDraft(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.ClearDraft(); err != nil {
		slog.Error("clear draft failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /search with query/mood/tag/start/end parameters.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := search.Filter{
		Query: q.Get("q"),
		Mood:  models.Mood(q.Get("mood")),
		Tag:   q.Get("tag"),
	}
	if raw := q.Get("start"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid start date"))
			return
		}
		f.Start = &t
	}
	if raw := q.Get("end"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid end date"))
			return
		}
		f.End = &t
	}

	results := search.Apply(h.store.ListEntries(), f)
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"total":   len(results),
	})
}

// Calendar handles GET /calendar/{year}/{month}.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid year"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid month"))
		return
	}

	grid := calendar.Month(h.store.ListEntries(), year, time.Month(month))
	prevYear, prevMonth := calendar.Prev(year, time.Month(month))
	nextYear, nextMonth := calendar.Next(year, time.Month(month))
	writeJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": month,
		"days":  grid,
		"prev":  map[string]int{"year": prevYear, "month": int(prevMonth)},
		"next":  map[string]int{"year": nextYear, "month": int(nextMonth)},
	})
}

// Export handles GET /export?order=newest|stored.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	doc := export.Render(h.store.ListEntries(), export.Options{
		NewestFirst: r.URL.Query().Get("order") != "stored",
	})
	writeJSON(w, http.StatusOK, doc)
}

// Prompt handles GET /prompt. When prompts are disabled in settings it
// answers 204 with no body.
func (h *Handler) Prompt(w http.ResponseWriter, _ *http.Request) {
	if !h.store.Settings().ShowPrompts {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"prompt": prompt.OfDay(time.Now()),
		"quote":  prompt.RandomQuote(),
	})
}

// Trend handles GET /trend.
func (h *Handler) Trend(w http.ResponseWriter, _ *http.Request) {
	points := trend.Series(h.store.ListEntries())
	if points == nil {
		points = []trend.Point{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points})
}

// Goals handles GET /goals.
func (h *Handler) Goals(w http.ResponseWriter, _ *http.Request) {
	progress := stats.Goals(h.store.ListEntries(), h.store.Settings().WritingGoals, time.Now())
	writeJSON(w, http.StatusOK, progress)
}

// Moods handles GET /moods.
func (h *Handler) Moods(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.Moods)
}
