package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmorrow/granola-flow/internal/cache"
	"github.com/jmorrow/granola-flow/internal/ledger"
	"github.com/jmorrow/granola-flow/internal/render"
	"github.com/jmorrow/granola-flow/internal/route"
)

// callNotesDir is the subfolder under each client directory that holds
// synced transcripts.
const callNotesDir = "call-notes"

// action is the single transition chosen for a transcript per run.
type action int

const (
	actionNone   action = iota
	actionCreate        // never seen before
	actionRoute         // previously in the inbox, now matches a client
	actionRename        // title changed since last sync
)

// decide picks exactly one transition from the prior ledger state and the
// current classification. The route case only fires for previously
// unrouted entries, and the rename case only when route did not fire, so
// the branches are mutually exclusive. A tracked entry without a file is a
// stub left by the legacy id-list ledger format; there is no old file to
// move, so it syncs like a new transcript and the stub gets filled in.
func decide(entry ledger.Entry, tracked bool, clientFolder, title string) action {
	switch {
	case !tracked, entry.File == "":
		return actionCreate
	case !entry.Routed && clientFolder != "" && entry.File != "":
		return actionRoute
	case entry.File != "" && entry.Title != title:
		return actionRename
	default:
		return actionNone
	}
}

// Run processes every completed transcript in the cache: new ones are
// written out, previously inboxed ones are re-routed when they now match a
// client, and renamed meetings get their files regenerated. The ledger is
// saved once at the end, so a mid-run fault loses that run's progress; an
// interrupted run can leave an unledgered file behind that the next run
// rewrites. That is the accepted cost of keeping the tool lock-free.
func (s *implSyncer) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if err := os.MkdirAll(s.cfg.Paths.Inbox, 0755); err != nil {
		return summary, fmt.Errorf("create inbox: %w", err)
	}

	state, err := cache.Load(s.cfg.Paths.Cache)
	if err != nil {
		return summary, err
	}

	tracking, err := ledger.Load(s.cfg.Paths.Ledger)
	if err != nil {
		return summary, err
	}

	// Stable iteration keeps run output and ledger diffs readable.
	ids := make([]string, 0, len(state.Transcripts))
	for id := range state.Transcripts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		segments := state.Transcripts[id]
		doc := state.Document(id)
		if !eligible(doc, segments) {
			continue
		}

		title := doc.Title
		clientFolder, _ := route.Match(s.cfg.Routes, title, doc.PeopleTitle)

		destDir := s.cfg.Paths.Inbox
		if clientFolder != "" {
			destDir = filepath.Join(s.cfg.Paths.Clients, clientFolder, callNotesDir)
		}
		filename := render.Filename(render.DatePrefix(doc), title)
		filePath := filepath.Join(destDir, filename)

		entry, tracked := tracking[id]

		switch decide(entry, tracked, clientFolder, title) {
		case actionCreate:
			if err := s.write(filePath, title, doc, segments); err != nil {
				return summary, err
			}
			tracking[id] = ledger.Entry{
				SyncedAt: time.Now().Format(time.RFC3339),
				Routed:   clientFolder != "",
				Client:   clientFolder,
				File:     filename,
				Title:    title,
			}
			summary.New++
			if clientFolder != "" {
				s.logger.Info(ctx, "Synced -> %s/%s/%s", clientFolder, callNotesDir, filename)
			} else {
				s.logger.Info(ctx, "Synced -> inbox/%s", filename)
			}

		case actionRoute:
			oldPath := filepath.Join(s.cfg.Paths.Inbox, entry.File)
			if !fileExists(oldPath) {
				s.logger.Debug(ctx, "Skipping route for %s: %s is gone", id, oldPath)
				continue
			}
			if err := s.write(filePath, title, doc, segments); err != nil {
				return summary, err
			}
			if err := os.Remove(oldPath); err != nil {
				return summary, fmt.Errorf("remove %s: %w", oldPath, err)
			}
			tracking[id] = ledger.Entry{
				SyncedAt: time.Now().Format(time.RFC3339),
				Routed:   true,
				Client:   clientFolder,
				File:     filename,
				Title:    title,
			}
			summary.Routed++
			s.logger.Info(ctx, "Routed: %s -> %s/%s/%s", entry.File, clientFolder, callNotesDir, filename)

		case actionRename:
			oldDir := s.cfg.Paths.Inbox
			if entry.Routed {
				oldDir = destDir
			}
			oldPath := filepath.Join(oldDir, entry.File)
			if !fileExists(oldPath) {
				s.logger.Debug(ctx, "Skipping rename for %s: %s is gone", id, oldPath)
				continue
			}
			if err := s.write(filePath, title, doc, segments); err != nil {
				return summary, err
			}
			if oldPath != filePath {
				if err := os.Remove(oldPath); err != nil {
					return summary, fmt.Errorf("remove %s: %w", oldPath, err)
				}
			}
			client := ""
			if entry.Routed {
				client = clientFolder
			}
			tracking[id] = ledger.Entry{
				SyncedAt: time.Now().Format(time.RFC3339),
				Routed:   entry.Routed,
				Client:   client,
				File:     filename,
				Title:    title,
			}
			summary.Updated++
			s.logger.Info(ctx, "Updated: %s -> %s", entry.File, filename)

		case actionNone:
			// already in sync
		}
	}

	if err := ledger.Save(s.cfg.Paths.Ledger, tracking); err != nil {
		return summary, err
	}

	if summary.Total() == 0 {
		s.logger.Info(ctx, "No new transcripts to sync.")
	} else {
		var parts []string
		if summary.New > 0 {
			parts = append(parts, fmt.Sprintf("%d new", summary.New))
		}
		if summary.Routed > 0 {
			parts = append(parts, fmt.Sprintf("%d routed", summary.Routed))
		}
		if summary.Updated > 0 {
			parts = append(parts, fmt.Sprintf("%d updated", summary.Updated))
		}
		s.logger.Info(ctx, "Done: %s.", strings.Join(parts, ", "))
	}

	return summary, nil
}

// write renders a transcript and writes it out, creating the destination
// directory when needed.
func (s *implSyncer) write(path, title string, doc cache.Document, segments []cache.Segment) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	content := render.Content(title, doc, segments)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
