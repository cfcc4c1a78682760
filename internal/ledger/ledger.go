package ledger

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry records where a transcript last landed on disk. File names the
// actual file inside the directory implied by Routed/Client at the time
// the entry was written.
type Entry struct {
	SyncedAt string `json:"synced_at"`
	Routed   bool   `json:"routed"`
	Client   string `json:"client,omitempty"`
	File     string `json:"file"`
	Title    string `json:"title,omitempty"`
}

// Ledger maps transcript ids to their last-known sync state.
type Ledger map[string]Entry

// Load reads the ledger file. A missing file yields an empty ledger. The
// pre-metadata format, a bare array of ids, is upgraded in memory: each id
// becomes a stub entry that the next sync pass can flesh out.
func Load(path string) (Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Ledger{}, nil
		}
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}

	var entries Ledger
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}

	var legacy []string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}

	upgraded := make(Ledger, len(legacy))
	for _, id := range legacy {
		upgraded[id] = Entry{SyncedAt: "unknown", Routed: false, File: ""}
	}
	return upgraded, nil
}

// Save writes the whole ledger as pretty-printed JSON, always in the
// current object format. One process, whole-file overwrite, no locking.
func Save(path string, entries Ledger) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write ledger %s: %w", path, err)
	}
	return nil
}
