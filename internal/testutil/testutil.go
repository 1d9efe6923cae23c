// Package testutil provides shared test helpers for setting up journal stores.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/storage"
)

// Logger returns a logger that discards all output.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// TestBacking creates a temporary data directory with a storage.Provider.
func TestBacking(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dataDir := t.TempDir()
	backing, err := storage.NewDisk(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	return dataDir, backing
}

// TestStore creates a journal store over a temporary data directory
// that is automatically closed when the test ends.
func TestStore(t *testing.T) *journal.Store {
	t.Helper()
	_, backing := TestBacking(t)
	store := journal.Open(backing, Logger())
	t.Cleanup(store.Close)
	return store
}
