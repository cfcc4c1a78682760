package cache

// Source tags as Granola records them.
const (
	SourceMicrophone = "microphone" // the local speaker
	SourceSystem     = "system"     // everyone else on the call
	SourceUnknown    = "unknown"
)

// Segment is one span of transcribed speech attributed to a source.
// Ordering within a transcript is chronological.
type Segment struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Document is the normalized metadata record for one meeting. The cache
// stores these as loosely-shaped maps with several spellings for the same
// concept; normalization happens once, at load time.
type Document struct {
	ID              string
	Title           string
	StartTime       string
	MeetingEndCount int
	PeopleTitle     string
	CalendarTitle   string
}

// DefaultTitle is used for display when a document has no title.
const DefaultTitle = "Untitled Meeting"

// DisplayTitle returns the document title, or DefaultTitle when unset.
func (d Document) DisplayTitle() string {
	if d.Title == "" {
		return DefaultTitle
	}
	return d.Title
}

// State is the decoded cache content: transcripts keyed by document id,
// paired with their metadata.
type State struct {
	Transcripts map[string][]Segment
	Documents   map[string]Document
}

// Document looks up metadata by id, returning a zero Document when absent.
func (s *State) Document(id string) Document {
	return s.Documents[id]
}
