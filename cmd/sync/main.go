package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmorrow/granola-flow/internal/config"
	"github.com/jmorrow/granola-flow/internal/logger"
	"github.com/jmorrow/granola-flow/internal/syncer"
	"github.com/jmorrow/granola-flow/internal/watcher"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	s := syncer.New(cfg, log)

	watch := len(os.Args) > 1 && os.Args[1] == "--watch"

	// Always run one pass up front; watch mode keeps going afterwards.
	if _, err := s.Run(ctx); err != nil {
		log.Error(ctx, "Sync failed: %v", err)
		os.Exit(1)
	}
	if !watch {
		return
	}

	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	w, err := watcher.New(cfg.Paths.Cache, debounce, func(ctx context.Context) error {
		_, err := s.Run(ctx)
		return err
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Watching %s for changes. Press Ctrl+C to stop", cfg.Paths.Cache)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
}

func configPath() string {
	if path := os.Getenv("GRANOLA_FLOW_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}
