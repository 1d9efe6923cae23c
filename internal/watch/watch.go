// Package watch reloads the journal store when its data directory is
// modified out-of-band (another process, manual edits, file sync tools).
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/dagaz/internal/journal"
)

// debounce batches bursts of file events into one reload check.
const debounce = 200 * time.Millisecond

// Run starts an fsnotify watcher on the data directory and processes
// change events until ctx is cancelled. The store's own writes are
// filtered out by payload fingerprint; anything else triggers a full
// reload and re-broadcast.
func Run(ctx context.Context, store *journal.Store, dataDir string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dataDir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", dataDir))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			if store.DiskChanged() {
				logger.Info("watcher: external change detected, reloading")
				store.Reload()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
