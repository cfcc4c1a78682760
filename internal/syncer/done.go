package syncer

import (
	"github.com/jmorrow/granola-flow/internal/cache"
	"github.com/jmorrow/granola-flow/internal/render"
)

// minWords filters out aborted or very short recordings.
const minWords = 50

// eligible reports whether a meeting is finished and worth syncing: it has
// segments, was explicitly ended at least once, carries a title, and runs
// to at least minWords words.
func eligible(doc cache.Document, segments []cache.Segment) bool {
	if len(segments) == 0 {
		return false
	}
	if doc.MeetingEndCount < 1 {
		return false
	}
	if doc.Title == "" {
		return false
	}
	if render.WordCount(segments) < minWords {
		return false
	}
	return true
}
