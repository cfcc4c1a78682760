package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrUnavailable means the cache file is missing or unreadable.
	ErrUnavailable = errors.New("cache unavailable")
	// ErrMalformed means the cache file exists but could not be decoded.
	ErrMalformed = errors.New("cache malformed")
)

// Load reads Granola's cache file and returns its decoded state.
// Granola nests a JSON-encoded string inside the top-level JSON object,
// so two decode passes are needed.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, path, err)
	}

	var envelope struct {
		Cache string `json:"cache"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrMalformed, path, err)
	}
	if envelope.Cache == "" {
		return nil, fmt.Errorf("%w: %s has no cache field", ErrMalformed, path)
	}

	var inner struct {
		State *rawState `json:"state"`
	}
	if err := json.Unmarshal([]byte(envelope.Cache), &inner); err != nil {
		return nil, fmt.Errorf("%w: parse embedded cache in %s: %v", ErrMalformed, path, err)
	}
	if inner.State == nil {
		return nil, fmt.Errorf("%w: %s has no state object", ErrMalformed, path)
	}

	state, err := inner.State.normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return state, nil
}

type rawState struct {
	Transcripts map[string][]Segment `json:"transcripts"`
	Documents   json.RawMessage      `json:"documents"`
}

type rawDocument struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	StartTime       string          `json:"start_time"`
	StartTimeAlt    string          `json:"startTime"`
	CreatedAt       string          `json:"created_at"`
	MeetingEndCount int             `json:"meeting_end_count"`
	People          json.RawMessage `json:"people"`
	CalendarEvent   json.RawMessage `json:"google_calendar_event"`
}

// normalize maps the cache's loose document shapes onto typed records.
// Documents arrive either as a map keyed by id or as a flat list of
// records carrying their own ids; both collapse to the keyed form here.
func (rs *rawState) normalize() (*State, error) {
	state := &State{
		Transcripts: make(map[string][]Segment, len(rs.Transcripts)),
		Documents:   make(map[string]Document),
	}

	for id, segments := range rs.Transcripts {
		normalized := make([]Segment, len(segments))
		for i, seg := range segments {
			if seg.Source == "" {
				seg.Source = SourceUnknown
			}
			normalized[i] = seg
		}
		state.Transcripts[id] = normalized
	}

	docs := bytes.TrimSpace(rs.Documents)
	switch {
	case len(docs) == 0 || bytes.Equal(docs, []byte("null")):
		// tolerated: a cache with no documents yields only untitled transcripts
	case docs[0] == '{':
		var byID map[string]rawDocument
		if err := json.Unmarshal(docs, &byID); err != nil {
			return nil, fmt.Errorf("decode documents map: %v", err)
		}
		for id, raw := range byID {
			doc := raw.normalize(id)
			state.Documents[doc.ID] = doc
		}
	case docs[0] == '[':
		var list []rawDocument
		if err := json.Unmarshal(docs, &list); err != nil {
			return nil, fmt.Errorf("decode documents list: %v", err)
		}
		for _, raw := range list {
			doc := raw.normalize("")
			if doc.ID == "" {
				continue
			}
			state.Documents[doc.ID] = doc
		}
	default:
		return nil, fmt.Errorf("documents is neither a map nor a list")
	}

	return state, nil
}

func (rd rawDocument) normalize(key string) Document {
	doc := Document{
		ID:              rd.ID,
		Title:           rd.Title,
		MeetingEndCount: rd.MeetingEndCount,
	}
	if doc.ID == "" {
		doc.ID = key
	}

	// The start time has drifted across cache versions; take the first
	// spelling that is present.
	switch {
	case rd.StartTime != "":
		doc.StartTime = rd.StartTime
	case rd.StartTimeAlt != "":
		doc.StartTime = rd.StartTimeAlt
	default:
		doc.StartTime = rd.CreatedAt
	}

	// people and google_calendar_event are free-form; only the title-ish
	// fields matter and only when the value is actually an object.
	var people struct {
		Title string `json:"title"`
	}
	if json.Unmarshal(rd.People, &people) == nil {
		doc.PeopleTitle = people.Title
	}

	var event struct {
		Summary string `json:"summary"`
	}
	if json.Unmarshal(rd.CalendarEvent, &event) == nil {
		doc.CalendarTitle = event.Summary
	}

	return doc
}
