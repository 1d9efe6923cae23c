package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/journal"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(store *journal.Store, authEnabled bool, token string) chi.Router {
	h := NewHandler(store)
	events := NewEventsHandler(store)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Entries CRUD.
	r.Get("/entries", h.ListEntries)
	r.Post("/entries", h.CreateEntry)
	r.Get("/entries/{id}", h.GetEntry)
	r.Put("/entries/{id}", h.UpdateEntry)
	r.Delete("/entries/{id}", h.DeleteEntry)

	// Tags.
	r.Get("/tags", h.ListTags)
	r.Delete("/tags/{tag}", h.DeleteTag)

	// Settings singleton.
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	// Draft slot.
	r.Get("/draft", h.GetDraft)
	r.Put("/draft", h.SaveDraft)
	r.Delete("/draft", h.ClearDraft)

	// Derived read models.
	r.Get("/search", h.Search)
	r.Get("/calendar/{year}/{month}", h.Calendar)
	r.Get("/trend", h.Trend)
	r.Get("/goals", h.Goals)
	r.Get("/export", h.Export)

	// Form helpers.
	r.Get("/prompt", h.Prompt)
	r.Get("/moods", h.Moods)

	// Change notifications (protected by same auth middleware).
	r.Get("/events", events.ServeHTTP)

	return r
}
