package query

import "context"

// Query is the read-only side of the tool: it inspects and exports
// transcripts straight from the cache and never touches the ledger.
type Query interface {
	List(ctx context.Context) error
	Show(ctx context.Context, idOrTitle string) error
	Search(ctx context.Context, term string) error
	ExportAll(ctx context.Context) error
	ExportAllDocx(ctx context.Context) error
}
