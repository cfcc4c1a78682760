package syncer

import (
	"github.com/jmorrow/granola-flow/internal/config"
	"github.com/jmorrow/granola-flow/internal/logger"
)

type implSyncer struct {
	cfg    *config.Config
	logger logger.Logger
}

// New creates a new Syncer instance
func New(cfg *config.Config, log logger.Logger) Syncer {
	return &implSyncer{
		cfg:    cfg,
		logger: log,
	}
}
