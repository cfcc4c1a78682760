package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a yaml config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Paths.Cache = expandHome(cfg.Paths.Cache)
	cfg.Paths.Inbox = expandHome(cfg.Paths.Inbox)
	cfg.Paths.Clients = expandHome(cfg.Paths.Clients)
	cfg.Paths.Ledger = expandHome(cfg.Paths.Ledger)
	cfg.Paths.Exports = expandHome(cfg.Paths.Exports)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// expandHome resolves a leading ~ so config files can use the same
// home-relative paths Granola documents.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
