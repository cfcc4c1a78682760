package syncer

import "context"

// Syncer runs one batch pass over the cache, writing transcript files and
// updating the tracking ledger.
type Syncer interface {
	Run(ctx context.Context) (Summary, error)
}

// Summary reports what one sync run did.
type Summary struct {
	New     int
	Routed  int
	Updated int
}

// Total is the number of transcripts acted on.
func (s Summary) Total() int {
	return s.New + s.Routed + s.Updated
}
