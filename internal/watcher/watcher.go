// Package watcher turns filesystem events on a hot folder into intake queue
// observations. It watches a single directory non-recursively; files inside
// nested success or error directories never produce events. Event delivery is
// best effort, so the supervisor pairs every watcher with a periodic rescan.
package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"batchprint/internal/config"
	"batchprint/internal/intake"
	"batchprint/internal/logging"
)

// Watcher feeds one hot folder's filesystem events into its intake queue.
type Watcher struct {
	folder config.HotFolder
	queue  *intake.Queue
	logger *slog.Logger

	mu sync.Mutex
	fw *fsnotify.Watcher
	wg sync.WaitGroup
}

// New constructs a watcher for one hot folder. Call Start to begin receiving
// events.
func New(folder config.HotFolder, queue *intake.Queue, logger *slog.Logger) *Watcher {
	return &Watcher{
		folder: folder,
		queue:  queue,
		logger: logging.NewComponentLogger(logger, "watcher").With(logging.String(logging.FieldFolder, folder.Name)),
	}
}

// Start registers the hot folder with fsnotify and launches the event loop.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fw != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(w.folder.WatchPath); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch %s: %w", w.folder.WatchPath, err)
	}

	w.fw = fw
	w.wg.Add(1)
	go w.loop(fw)

	w.logger.Info("watching hot folder", logging.String("path", w.folder.WatchPath))
	return nil
}

// Stop closes the underlying watcher and waits for the event loop to exit.
// Pending intake entries survive; only event delivery stops.
func (w *Watcher) Stop() {
	w.mu.Lock()
	fw := w.fw
	w.fw = nil
	w.mu.Unlock()

	if fw == nil {
		return
	}
	_ = fw.Close()
	w.wg.Wait()
	w.logger.Info("watcher stopped")
}

func (w *Watcher) loop(fw *fsnotify.Watcher) {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

// handleEvent observes newly appearing or still-growing files. Removal and
// rename-away events are ignored; the intake queue drops vanished paths on
// drain.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	// Non-recursive watch: only direct children of the hot folder count. This
	// also shields nested success and error directories.
	if filepath.Dir(path) != filepath.Clean(w.folder.WatchPath) {
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	if w.queue.Observe(path) {
		w.logger.Info("file observed", logging.String(logging.FieldSource, path))
	}
}
