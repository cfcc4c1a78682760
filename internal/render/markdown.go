package render

import (
	"fmt"
	"strings"

	"github.com/jmorrow/granola-flow/internal/cache"
)

// WordCount sums whitespace-split tokens across all segment texts.
func WordCount(segments []cache.Segment) int {
	count := 0
	for _, seg := range segments {
		count += len(strings.Fields(seg.Text))
	}
	return count
}

// Body renders segments as a single flowing markdown text. Consecutive
// segments from the same source run together; a source change inserts a
// bold speaker label. Output must stay stable across runs, so the exact
// joining (single spaces, labels on their own leading newline) matters.
func Body(segments []cache.Segment) string {
	var parts []string
	currentSource := ""

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		if seg.Source != currentSource {
			switch seg.Source {
			case cache.SourceMicrophone:
				parts = append(parts, "\n**[You]** ")
			case cache.SourceSystem:
				parts = append(parts, "\n**[Other]** ")
			default:
				parts = append(parts, fmt.Sprintf("\n**[%s]** ", seg.Source))
			}
			currentSource = seg.Source
		}

		parts = append(parts, text)
	}

	return strings.Join(parts, " ")
}

// Content builds the full markdown document for a synced transcript:
// a metadata header, a horizontal rule, then the rendered body.
func Content(title string, doc cache.Document, segments []cache.Segment) string {
	docID := doc.ID
	if docID == "" {
		docID = "unknown"
	}
	startTime := doc.StartTime
	if startTime == "" {
		startTime = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Meeting ID:** %s\n", docID)
	if doc.CalendarTitle != "" && doc.CalendarTitle != title {
		fmt.Fprintf(&b, "**Calendar:** %s\n", doc.CalendarTitle)
	}
	fmt.Fprintf(&b, "**Date:** %s\n", startTime)
	fmt.Fprintf(&b, "**Words:** ~%d\n", WordCount(segments))
	fmt.Fprintf(&b, "**Segments:** %d\n\n", len(segments))
	b.WriteString("---\n\n")
	b.WriteString(Body(segments))

	return b.String()
}

// ExportContent is the shorter header used by the bulk export tool.
func ExportContent(title, id string, segments []cache.Segment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**ID:** %s\n", id)
	fmt.Fprintf(&b, "**Words:** ~%d\n\n", WordCount(segments))
	b.WriteString("---\n\n")
	b.WriteString(Body(segments))

	return b.String()
}
