package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pagescan/internal/core/ports/driving"
	"github.com/custodia-labs/pagescan/internal/logger"
)

// defaultSettleDelay gives writers time to finish before a reload.
const defaultSettleDelay = 100 * time.Millisecond

// LibraryWatcher keeps the library in step with a JSON book file.
// It imports the file once, then again whenever it changes.
type LibraryWatcher struct {
	library  driving.LibraryService
	path     string
	settle   time.Duration
	onImport func(*driving.ImportResult, error)
}

// NewLibraryWatcher creates a watcher for the book file at path.
func NewLibraryWatcher(library driving.LibraryService, path string) *LibraryWatcher {
	return &LibraryWatcher{
		library: library,
		path:    path,
		settle:  defaultSettleDelay,
	}
}

// SetSettleDelay sets how long to wait after a change before re-importing.
func (w *LibraryWatcher) SetSettleDelay(d time.Duration) {
	w.settle = d
}

// OnImport registers a callback invoked after every import attempt.
func (w *LibraryWatcher) OnImport(fn func(*driving.ImportResult, error)) {
	w.onImport = fn
}

// Run imports the file and watches it until ctx is cancelled.
// A failing initial import is returned; later failures are logged and
// the previous library content stays in place.
func (w *LibraryWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// The directory is watched rather than the file so the watch survives
	// deletion and atomic replacement. Watching starts before the first
	// import so no change in between is lost.
	target := filepath.Clean(w.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}

	if _, err := w.importFile(ctx); err != nil {
		return err
	}
	logger.Info("Watching library file: %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			logger.Debug("Library file changed: %s (%s)", event.Name, event.Op)

			if !w.wait(ctx) {
				return nil
			}

			if _, err := os.Stat(target); os.IsNotExist(err) {
				logger.Warn("Library file removed, keeping current library")
				continue
			}

			if _, err := w.importFile(ctx); err != nil {
				logger.Warn("Reloading library failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error: %v", err)
		}
	}
}

func (w *LibraryWatcher) wait(ctx context.Context) bool {
	timer := time.NewTimer(w.settle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (w *LibraryWatcher) importFile(ctx context.Context) (*driving.ImportResult, error) {
	result, err := w.open(ctx)
	if w.onImport != nil {
		w.onImport(result, err)
	}
	return result, err
}

func (w *LibraryWatcher) open(ctx context.Context) (*driving.ImportResult, error) {
	f, err := os.Open(w.path)
	if err != nil {
		return nil, fmt.Errorf("opening library file: %w", err)
	}
	defer f.Close()

	result, err := w.library.Import(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", w.path, err)
	}
	return result, nil
}
