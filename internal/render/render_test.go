package render

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jmorrow/granola-flow/internal/cache"
)

func TestBody(t *testing.T) {
	segments := []cache.Segment{
		{Text: "Hello everyone.", Source: cache.SourceMicrophone},
		{Text: "Let's get started.", Source: cache.SourceMicrophone},
		{Text: "Sounds good.", Source: cache.SourceSystem},
		{Text: "  ", Source: cache.SourceMicrophone}, // dropped, must not flip the speaker
		{Text: "One more thing.", Source: cache.SourceSystem},
		{Text: "Noted.", Source: "webhook"},
	}

	got := Body(segments)
	want := "\n**[You]**  Hello everyone. Let's get started. " +
		"\n**[Other]**  Sounds good. One more thing. " +
		"\n**[webhook]**  Noted."
	if got != want {
		t.Errorf("Body() =\n%q\nwant\n%q", got, want)
	}
}

func TestBodyEmpty(t *testing.T) {
	if got := Body(nil); got != "" {
		t.Errorf("Body(nil) = %q, want empty", got)
	}
	if got := Body([]cache.Segment{{Text: "   ", Source: cache.SourceMicrophone}}); got != "" {
		t.Errorf("Body(blank segments) = %q, want empty", got)
	}
}

func TestWordCount(t *testing.T) {
	segments := []cache.Segment{
		{Text: "one two  three"},
		{Text: "   "},
		{Text: "four"},
	}
	if got := WordCount(segments); got != 4 {
		t.Errorf("WordCount() = %d, want 4", got)
	}
}

func TestContent(t *testing.T) {
	doc := cache.Document{
		ID:            "doc-42",
		Title:         "Acme Corp Sync",
		StartTime:     "2024-03-01T10:00:00Z",
		CalendarTitle: "Acme weekly",
	}
	segments := []cache.Segment{
		{Text: "Hello.", Source: cache.SourceMicrophone},
		{Text: "Hi.", Source: cache.SourceSystem},
	}

	got := Content("Acme Corp Sync", doc, segments)

	for _, want := range []string{
		"# Acme Corp Sync\n\n",
		"**Meeting ID:** doc-42\n",
		"**Calendar:** Acme weekly\n",
		"**Date:** 2024-03-01T10:00:00Z\n",
		"**Words:** ~2\n",
		"**Segments:** 2\n\n---\n\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Content() missing %q in:\n%s", want, got)
		}
	}
}

func TestContentCalendarOmitted(t *testing.T) {
	doc := cache.Document{ID: "d", Title: "Same Title", CalendarTitle: "Same Title"}
	got := Content("Same Title", doc, nil)
	if strings.Contains(got, "**Calendar:**") {
		t.Error("calendar line should be omitted when it equals the title")
	}

	got = Content("Same Title", cache.Document{}, nil)
	if !strings.Contains(got, "**Meeting ID:** unknown\n") {
		t.Errorf("missing meeting id fallback in:\n%s", got)
	}
	if !strings.Contains(got, "**Date:** Unknown\n") {
		t.Errorf("missing date fallback in:\n%s", got)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		title  string
		want   string
	}{
		{"plain", "2024-03-01", "Weekly Sync", "2024-03-01-Weekly-Sync.md"},
		{"punctuation stripped", "2024-03-01", "Q3 Planning: Acme & Co!!", "2024-03-01-Q3-Planning-Acme-Co.md"},
		{"hyphen runs collapse", "2024-03-01", "a - b -- c", "2024-03-01-a-b-c.md"},
		{"surrounding space trimmed", "2024-03-01", "  padded  ", "2024-03-01-padded.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.prefix, tt.title); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilenameSanitized(t *testing.T) {
	got := Filename("2024-03-01", "Q3 Planning: Acme & Co!!")

	if !strings.HasPrefix(got, "2024-03-01-") || !strings.HasSuffix(got, ".md") {
		t.Fatalf("Filename() = %q, want prefix and .md suffix", got)
	}
	middle := strings.TrimSuffix(strings.TrimPrefix(got, "2024-03-01-"), ".md")
	if ok, _ := regexp.MatchString(`^[\w-]+$`, middle); !ok {
		t.Errorf("sanitized title %q contains characters beyond word chars and hyphens", middle)
	}
}

func TestFilenameLengthBounded(t *testing.T) {
	long := strings.Repeat("verylongword ", 20)
	got := Filename("2024-03-01", long)
	// prefix (10) + joining hyphen + up to 60 title chars + ".md"
	if len(got) > 10+1+60+3 {
		t.Errorf("Filename() length = %d, want <= 74", len(got))
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename("Acme Corp Sync"); got != "Acme-Corp-Sync.md" {
		t.Errorf("ExportFilename() = %q", got)
	}
	if got := ExportFilename("Q3: Kickoff!"); got != "Q3-Kickoff.md" {
		t.Errorf("ExportFilename() = %q", got)
	}
}

func TestDatePrefix(t *testing.T) {
	doc := cache.Document{StartTime: "2024-03-01T10:00:00Z"}
	if got := DatePrefix(doc); got != "2024-03-01" {
		t.Errorf("DatePrefix() = %q, want 2024-03-01", got)
	}

	// too short to carry a date, falls back to today
	doc = cache.Document{StartTime: "2024"}
	want := time.Now().Format("2006-01-02")
	if got := DatePrefix(doc); got != want {
		t.Errorf("DatePrefix() = %q, want %q", got, want)
	}

	if got := DatePrefix(cache.Document{}); got != want {
		t.Errorf("DatePrefix() = %q, want %q", got, want)
	}
}
