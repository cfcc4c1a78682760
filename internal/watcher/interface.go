package watcher

import "context"

// Watcher defines the interface for cache file monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler is the function invoked after the cache file changes
type Handler func(ctx context.Context) error
