package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeCache wraps an inner cache object the way Granola does: serialized
// to a string and embedded in the top-level JSON.
func writeCache(t *testing.T, inner any) string {
	t.Helper()

	innerJSON, err := json.Marshal(inner)
	if err != nil {
		t.Fatal(err)
	}
	outer, err := json.Marshal(map[string]string{"cache": string(innerJSON)})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "cache-v3.json")
	if err := os.WriteFile(path, outer, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDocumentsMap(t *testing.T) {
	path := writeCache(t, map[string]any{
		"state": map[string]any{
			"transcripts": map[string]any{
				"doc1": []map[string]any{
					{"text": "hello there", "source": "microphone"},
					{"text": "hi", "source": "system"},
				},
			},
			"documents": map[string]any{
				"doc1": map[string]any{
					"title":             "Acme Sync",
					"start_time":        "2024-03-01T10:00:00Z",
					"meeting_end_count": 1,
				},
			},
		},
	})

	state, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	segs := state.Transcripts["doc1"]
	if len(segs) != 2 {
		t.Fatalf("len(segments) = %d, want 2", len(segs))
	}
	if segs[0].Source != SourceMicrophone {
		t.Errorf("source = %q, want %q", segs[0].Source, SourceMicrophone)
	}

	doc := state.Document("doc1")
	if doc.ID != "doc1" {
		t.Errorf("ID = %q, want doc1 (backfilled from map key)", doc.ID)
	}
	if doc.Title != "Acme Sync" {
		t.Errorf("Title = %q, want Acme Sync", doc.Title)
	}
	if doc.StartTime != "2024-03-01T10:00:00Z" {
		t.Errorf("StartTime = %q", doc.StartTime)
	}
}

func TestLoadDocumentsList(t *testing.T) {
	path := writeCache(t, map[string]any{
		"state": map[string]any{
			"transcripts": map[string]any{
				"doc1": []map[string]any{{"text": "hello", "source": "microphone"}},
			},
			"documents": []map[string]any{
				{"id": "doc1", "title": "Listed Meeting", "startTime": "2024-04-02T09:00:00Z"},
				{"title": "no id, dropped"},
			},
		},
	})

	state, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(state.Documents) != 1 {
		t.Fatalf("len(Documents) = %d, want 1", len(state.Documents))
	}
	doc := state.Document("doc1")
	if doc.Title != "Listed Meeting" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.StartTime != "2024-04-02T09:00:00Z" {
		t.Errorf("StartTime = %q, want the startTime spelling picked up", doc.StartTime)
	}
}

func TestLoadStartTimeFallback(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want string
	}{
		{"start_time wins", map[string]any{"start_time": "a", "startTime": "b", "created_at": "c"}, "a"},
		{"startTime second", map[string]any{"startTime": "b", "created_at": "c"}, "b"},
		{"created_at last", map[string]any{"created_at": "c"}, "c"},
		{"nothing present", map[string]any{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCache(t, map[string]any{
				"state": map[string]any{
					"transcripts": map[string]any{},
					"documents":   map[string]any{"d": tt.doc},
				},
			})
			state, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got := state.Document("d").StartTime; got != tt.want {
				t.Errorf("StartTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadPeopleAndCalendar(t *testing.T) {
	path := writeCache(t, map[string]any{
		"state": map[string]any{
			"transcripts": map[string]any{},
			"documents": map[string]any{
				"d1": map[string]any{
					"title":  "Weekly",
					"people": map[string]any{"title": "Jane <> Bob"},
					"google_calendar_event": map[string]any{
						"summary": "Weekly catch-up",
					},
				},
				// people sometimes arrives as a list, which carries no title
				"d2": map[string]any{
					"title":  "Other",
					"people": []any{"jane", "bob"},
				},
			},
		},
	})

	state, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := state.Document("d1").PeopleTitle; got != "Jane <> Bob" {
		t.Errorf("PeopleTitle = %q", got)
	}
	if got := state.Document("d1").CalendarTitle; got != "Weekly catch-up" {
		t.Errorf("CalendarTitle = %q", got)
	}
	if got := state.Document("d2").PeopleTitle; got != "" {
		t.Errorf("PeopleTitle for list-shaped people = %q, want empty", got)
	}
}

func TestLoadMissingSourceDefaults(t *testing.T) {
	path := writeCache(t, map[string]any{
		"state": map[string]any{
			"transcripts": map[string]any{
				"doc1": []map[string]any{{"text": "no source on this one"}},
			},
			"documents": map[string]any{},
		},
	})

	state, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := state.Transcripts["doc1"][0].Source; got != SourceUnknown {
		t.Errorf("Source = %q, want %q", got, SourceUnknown)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("not json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		os.WriteFile(path, []byte("not json at all"), 0644)
		_, err := Load(path)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("error = %v, want ErrMalformed", err)
		}
	})

	t.Run("no cache field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		os.WriteFile(path, []byte(`{"other": "thing"}`), 0644)
		_, err := Load(path)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("error = %v, want ErrMalformed", err)
		}
	})

	t.Run("embedded string is not json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		os.WriteFile(path, []byte(`{"cache": "{broken"}`), 0644)
		_, err := Load(path)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("error = %v, want ErrMalformed", err)
		}
	})

	t.Run("no state object", func(t *testing.T) {
		path := writeCache(t, map[string]any{"version": 3})
		_, err := Load(path)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("error = %v, want ErrMalformed", err)
		}
	})
}
