package server

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watcherDebounce = 500 * time.Millisecond

// WatchAssets watches the asset root and logs changes so operators can see
// deploys land. Purely diagnostic; served content always comes straight
// from disk. It blocks until the context is cancelled.
func (s *Server) WatchAssets(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.root); err != nil {
		return err
	}

	s.logger.Info("watching asset root for changes", "dir", s.root)

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug("asset changed", "file", event.Name, "op", event.Op)

			// Debounce: reset timer on each event
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watcherDebounce, func() {
				s.logger.Info("asset root changed", "dir", s.root)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("asset watcher error", "error", err)
		}
	}
}
