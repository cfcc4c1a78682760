package query

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmorrow/granola-flow/internal/cache"
	"github.com/jmorrow/granola-flow/internal/render"
)

const rule = "============================================================"

// transcript pairs one meeting's segments with its display metadata.
type transcript struct {
	ID        string
	Title     string
	StartTime string
	Segments  []cache.Segment
	WordCount int
}

// collect joins transcripts with their documents, drops empty ones, and
// sorts newest first. Transcripts without a start time sort with the empty
// key, after everything that has one.
func (q *implQuery) collect() ([]transcript, error) {
	state, err := cache.Load(q.cfg.Paths.Cache)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(state.Transcripts))
	for id := range state.Transcripts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var results []transcript
	for _, id := range ids {
		segments := state.Transcripts[id]
		if len(segments) == 0 {
			continue
		}
		doc := state.Document(id)
		results = append(results, transcript{
			ID:        id,
			Title:     doc.DisplayTitle(),
			StartTime: doc.StartTime,
			Segments:  segments,
			WordCount: render.WordCount(segments),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].StartTime > results[j].StartTime
	})
	return results, nil
}

// List prints every transcript with a short preview.
func (q *implQuery) List(ctx context.Context) error {
	transcripts, err := q.collect()
	if err != nil {
		return err
	}

	fmt.Fprintln(q.out, rule)
	fmt.Fprintln(q.out, "GRANOLA TRANSCRIPTS")
	fmt.Fprintln(q.out, rule)

	for _, t := range transcripts {
		fmt.Fprintf(q.out, "\n%s\n", t.Title)
		fmt.Fprintf(q.out, "   ID: %s\n", t.ID)
		fmt.Fprintf(q.out, "   Words: ~%d\n", t.WordCount)

		preview := t.Segments
		if len(preview) > 5 {
			preview = preview[:5]
		}
		snippets := make([]string, len(preview))
		for i, seg := range preview {
			snippets[i] = truncate(seg.Text, 30)
		}
		fmt.Fprintf(q.out, "   Preview: %s...\n", truncate(strings.Join(snippets, " | "), 80))
	}

	return nil
}

// Show prints one full transcript, found by exact id or case-insensitive
// title substring.
func (q *implQuery) Show(ctx context.Context, idOrTitle string) error {
	transcripts, err := q.collect()
	if err != nil {
		return err
	}

	needle := strings.ToLower(idOrTitle)
	for _, t := range transcripts {
		if t.ID == idOrTitle || strings.Contains(strings.ToLower(t.Title), needle) {
			fmt.Fprintf(q.out, "# %s\n", t.Title)
			fmt.Fprintf(q.out, "Words: ~%d\n", t.WordCount)
			fmt.Fprintln(q.out, rule)
			fmt.Fprintln(q.out, render.Body(t.Segments))
			return nil
		}
	}

	fmt.Fprintf(q.out, "Transcript not found: %s\n", idOrTitle)
	return nil
}

// Search scans the full text of every transcript for a case-insensitive
// match, printing a 50-character context window around the first hit.
func (q *implQuery) Search(ctx context.Context, term string) error {
	transcripts, err := q.collect()
	if err != nil {
		return err
	}

	fmt.Fprintf(q.out, "Searching for: '%s'\n", term)
	fmt.Fprintln(q.out, rule)

	needle := strings.ToLower(term)
	found := 0
	for _, t := range transcripts {
		texts := make([]string, len(t.Segments))
		for i, seg := range t.Segments {
			texts[i] = seg.Text
		}
		fullText := strings.Join(texts, " ")

		idx := strings.Index(strings.ToLower(fullText), needle)
		if idx < 0 {
			continue
		}

		start := idx - 50
		if start < 0 {
			start = 0
		}
		end := idx + len(term) + 50
		if end > len(fullText) {
			end = len(fullText)
		}

		fmt.Fprintf(q.out, "\n%s\n", t.Title)
		fmt.Fprintf(q.out, "   ...%s...\n", fullText[start:end])
		found++
	}

	if found == 0 {
		fmt.Fprintf(q.out, "No matches for '%s'\n", term)
	}
	return nil
}

// ExportAll writes every transcript as markdown into the export directory.
// Filenames carry no date prefix; a later transcript with the same
// sanitized title overwrites an earlier one.
func (q *implQuery) ExportAll(ctx context.Context) error {
	return q.exportAll(ctx, func(t transcript, dir string) (string, error) {
		filename := render.ExportFilename(t.Title)
		content := render.ExportContent(t.Title, t.ID, t.Segments)
		if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
			return "", fmt.Errorf("write %s: %w", filename, err)
		}
		return filename, nil
	})
}

// ExportAllDocx writes every transcript as a Word document instead.
func (q *implQuery) ExportAllDocx(ctx context.Context) error {
	return q.exportAll(ctx, func(t transcript, dir string) (string, error) {
		filename := strings.TrimSuffix(render.ExportFilename(t.Title), ".md") + ".docx"
		if err := writeDocx(t, filepath.Join(dir, filename)); err != nil {
			return "", fmt.Errorf("write %s: %w", filename, err)
		}
		return filename, nil
	})
}

func (q *implQuery) exportAll(ctx context.Context, write func(t transcript, dir string) (string, error)) error {
	if err := os.MkdirAll(q.cfg.Paths.Exports, 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	transcripts, err := q.collect()
	if err != nil {
		return err
	}

	for _, t := range transcripts {
		filename, err := write(t, q.cfg.Paths.Exports)
		if err != nil {
			return err
		}
		fmt.Fprintf(q.out, "Exported: %s\n", filename)
	}

	fmt.Fprintf(q.out, "\nAll transcripts exported to: %s\n", q.cfg.Paths.Exports)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
