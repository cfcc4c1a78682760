package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jmorrow/granola-flow/internal/logger"
)

type implWatcher struct {
	cachePath string
	debounce  time.Duration
	handler   Handler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	running   chan struct{}
	wg        sync.WaitGroup
}

// Start blocks, re-running the handler whenever the cache file changes.
// Events are debounced because Granola rewrites the cache in bursts, and
// runs are single-flight: a trigger arriving while a run is in progress
// is dropped, the next cache write will pick the changes up.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Cache watcher started. Monitoring: %s", w.cachePath)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-progress sync to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Cache watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Name != w.cachePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.logger.Debug(ctx, "Cache changed: %s", event.Op)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil

			select {
			case w.running <- struct{}{}:
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-w.running }()

					if err := w.handler(ctx); err != nil {
						w.logger.Error(ctx, "Sync after cache change failed: %v", err)
					}
				}()
			default:
				w.logger.Debug(ctx, "Sync already running, trigger dropped")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
