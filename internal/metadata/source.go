// file: internal/metadata/source.go
// version: 1.0.0
// guid: a7c4d9e2-1f3b-4a5c-9d8e-2b6f0c1a3d5e

package metadata

import "context"

// Query carries the caller-supplied identification for one lookup.
// ISBN is preferred, then ItemID, else Title/Author search.
type Query struct {
	Title  string
	Author string
	ISBN   string
	ItemID string
}

// IsEmpty reports whether the query has nothing to search on.
func (q Query) IsEmpty() bool {
	return q.Title == "" && q.Author == "" && q.ISBN == "" && q.ItemID == ""
}

// Kind labels the query for logging and metrics.
func (q Query) Kind() string {
	switch {
	case q.ISBN != "":
		return "isbn"
	case q.ItemID != "":
		return "itemid"
	default:
		return "search"
	}
}

// Source is a pluggable metadata provider.
type Source interface {
	Name() string
	Lookup(ctx context.Context, q Query) ([]Book, error)
}
