// file: internal/server/lookup_service.go
// version: 1.1.0
// guid: e5f6a7b8-c9d0-e1f2-a3b4-c5d6e7f8a9b0

package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yschoi/aladin-lookup/internal/cache"
	"github.com/yschoi/aladin-lookup/internal/metadata"
	"github.com/yschoi/aladin-lookup/internal/metrics"
)

// CoverResolver is the extra surface of the Aladin client beyond plain
// lookups that the HTTP API exposes.
type CoverResolver interface {
	CoverForISBN(ctx context.Context, isbn string) (string, error)
}

// LookupService runs queries against a metadata source with a result cache
// in front. Identical queries within the TTL return the cached records, so
// repeat requests are idempotent and cheap.
type LookupService struct {
	source  metadata.Source
	covers  CoverResolver
	results *cache.Cache[[]metadata.Book]
}

// NewLookupService wires a source and an optional cover resolver.
func NewLookupService(source metadata.Source, covers CoverResolver, ttl time.Duration) *LookupService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &LookupService{
		source:  source,
		covers:  covers,
		results: cache.New[[]metadata.Book](ttl),
	}
}

// SourceName names the backing metadata source.
func (ls *LookupService) SourceName() string {
	return ls.source.Name()
}

// Lookup resolves a query, serving repeats from the cache.
func (ls *LookupService) Lookup(ctx context.Context, q metadata.Query) ([]metadata.Book, error) {
	key := cacheKey(q)
	if books, ok := ls.results.Get(key); ok {
		metrics.IncCacheHit()
		return books, nil
	}
	metrics.IncCacheMiss()

	books, err := ls.source.Lookup(ctx, q)
	if err != nil {
		return nil, err
	}
	ls.results.Set(key, books)
	return books, nil
}

// InvalidateResults drops every cached result. Called when the tag-mapping
// configuration reloads, since cached records carry tags from the old table.
func (ls *LookupService) InvalidateResults() {
	ls.results.InvalidateAll()
}

// CoverURL resolves a cover image URL for an ISBN.
func (ls *LookupService) CoverURL(ctx context.Context, isbn string) (string, error) {
	if ls.covers == nil {
		return "", fmt.Errorf("cover resolution not configured")
	}
	return ls.covers.CoverForISBN(ctx, isbn)
}

func cacheKey(q metadata.Query) string {
	return strings.Join([]string{q.ISBN, q.ItemID, q.Title, q.Author}, "\x00")
}
