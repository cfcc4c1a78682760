package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jmorrow/granola-flow/internal/logger"
)

// New creates a Watcher that triggers handler after the cache file at
// cachePath is rewritten, debounced by the given interval. Granola
// replaces the file rather than appending, so the watch sits on the
// parent directory.
func New(cachePath string, debounce time.Duration, handler Handler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(cachePath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if debounce <= 0 {
		debounce = time.Second
	}

	return &implWatcher{
		cachePath: cachePath,
		debounce:  debounce,
		handler:   handler,
		logger:    log,
		watcher:   fsw,
		running:   make(chan struct{}, 1),
	}, nil
}
