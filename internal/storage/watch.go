package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the bursts of events a single save produces.
const watchDebounce = 250 * time.Millisecond

// Watch calls onChange once the file for key was created, written or
// replaced and then left alone for a short quiet period, until ctx is
// done. The directory is watched rather than the file so atomic
// replacements by Write are seen too. Watch blocks; run it on its own
// goroutine.
func (backend *FileBackend) Watch(ctx context.Context, key string, logger *slog.Logger, onChange func()) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(backend.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(backend.dir); err != nil {
		return fmt.Errorf("watch %s: %w", backend.dir, err)
	}

	target := filepath.Clean(backend.Path(key))
	quiet := time.NewTimer(watchDebounce)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quiet.C:
			onChange()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("settings file changed", "path", target, "op", event.Op.String())
				quiet.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("settings watcher error", "error", err)
		}
	}
}
