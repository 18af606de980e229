package app

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mitropolia-targovistei/calendar-site/internal/chrome"
)

// Watch reloads the store whenever a file in dir changes, until ctx is cancelled.
// Bursts of events (editors write, rename and chmod in quick succession) collapse into
// a single reload after ReloadDebounce.
func Watch(ctx context.Context, dir string, store *Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching data directory", zap.String("dir", dir))

	deb := chrome.NewDebouncer(ReloadDebounce)
	defer deb.Stop()

	reload := func() {
		if err := store.Load(ctx); err != nil {
			logger.Error(ErrFailedToReload, zap.Error(err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("data file changed", zap.String("name", ev.Name), zap.String("op", ev.Op.String()))
			deb.Trigger(reload)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}
