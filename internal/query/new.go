package query

import (
	"io"

	"github.com/jmorrow/granola-flow/internal/config"
	"github.com/jmorrow/granola-flow/internal/logger"
)

type implQuery struct {
	cfg    *config.Config
	logger logger.Logger
	out    io.Writer
}

// New creates a new Query instance writing results to out
func New(cfg *config.Config, log logger.Logger, out io.Writer) Query {
	return &implQuery{
		cfg:    cfg,
		logger: log,
		out:    out,
	}
}
