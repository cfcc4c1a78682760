package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Routes  []Route       `yaml:"routes"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

type PathsConfig struct {
	Cache   string `yaml:"cache"`
	Inbox   string `yaml:"inbox"`
	Clients string `yaml:"clients"`
	Ledger  string `yaml:"ledger"`
	Exports string `yaml:"exports"`
}

// Route maps a set of title keywords to a client/project folder.
// Routes are checked in the order they appear in the config file;
// the first route with a matching keyword wins.
type Route struct {
	Folder   string   `yaml:"folder"`
	Keywords []string `yaml:"keywords"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

const ledgerFilename = ".synced_ids.json"

func (c *Config) Validate() error {
	if c.Paths.Cache == "" {
		return fmt.Errorf("paths.cache is required")
	}
	if c.Paths.Inbox == "" {
		return fmt.Errorf("paths.inbox is required")
	}
	if c.Paths.Clients == "" {
		return fmt.Errorf("paths.clients is required")
	}

	for i, r := range c.Routes {
		if r.Folder == "" {
			return fmt.Errorf("routes[%d].folder is required", i)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("routes[%d].keywords must not be empty", i)
		}
	}

	if c.Paths.Ledger == "" {
		c.Paths.Ledger = filepath.Join(c.Paths.Inbox, ledgerFilename)
	}
	if c.Paths.Exports == "" {
		c.Paths.Exports = filepath.Join(filepath.Dir(c.Paths.Inbox), "exports")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Watch.DebounceMS == 0 {
		c.Watch.DebounceMS = 1000
	}

	return nil
}
