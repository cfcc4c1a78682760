package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmorrow/granola-flow/internal/cache"
)

var (
	reUnsafe     = regexp.MustCompile(`[^\w\s-]`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reHyphenRun  = regexp.MustCompile(`-+`)
)

// Filename derives the synced markdown filename from a date prefix and a
// meeting title. Punctuation is stripped, the title is capped at 60
// characters, and whitespace collapses to single hyphens. Two meetings with
// the same title on the same day collide; the second write wins.
func Filename(datePrefix, title string) string {
	safe := reUnsafe.ReplaceAllString(title, "")
	safe = truncate(safe, 60)
	safe = strings.TrimSpace(safe)
	safe = reWhitespace.ReplaceAllString(safe, "-")
	safe = reHyphenRun.ReplaceAllString(safe, "-")
	return fmt.Sprintf("%s-%s.md", datePrefix, safe)
}

// ExportFilename is the simpler scheme used by bulk export: sanitized
// title only, no date prefix, no collision handling.
func ExportFilename(title string) string {
	safe := reUnsafe.ReplaceAllString(title, "")
	safe = truncate(safe, 50)
	safe = strings.TrimSpace(safe)
	safe = strings.ReplaceAll(safe, " ", "-")
	return safe + ".md"
}

// DatePrefix returns the first ten characters of the document's start time
// when one looks usable, otherwise today's local date.
func DatePrefix(doc cache.Document) string {
	if len(doc.StartTime) >= 10 {
		return doc.StartTime[:10]
	}
	return time.Now().Format("2006-01-02")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
