// file: internal/aladin/lookup.go
// version: 1.3.0
// guid: 0a2c4e6f-8b9d-4c0e-9f1a-2b3c4d5e6f7a

package aladin

import (
	"context"
	"errors"
	"log"
	"net/url"
	"time"

	"github.com/yschoi/aladin-lookup/internal/metadata"
	"github.com/yschoi/aladin-lookup/internal/metrics"
)

// Lookup resolves a query to zero or more metadata records. ISBN and ItemID
// queries go straight to the product page; anything else runs a keyword
// search and fetches the best candidates. Candidates that fail to fetch or
// parse are dropped; an empty result with no operational error is ErrNoMatch.
func (c *Client) Lookup(ctx context.Context, q metadata.Query) ([]metadata.Book, error) {
	start := time.Now()
	kind := q.Kind()
	metrics.IncLookupStarted(kind)

	books, err := c.lookup(ctx, q)
	metrics.ObserveLookupDuration(kind, time.Since(start))
	switch {
	case errors.Is(err, ErrNoMatch):
		metrics.IncLookupNoMatch(kind)
	case err != nil:
		metrics.IncLookupFailed(kind)
	default:
		metrics.IncLookupCompleted(kind)
	}
	return books, err
}

func (c *Client) lookup(ctx context.Context, q metadata.Query) ([]metadata.Book, error) {
	if q.IsEmpty() {
		return nil, ErrNoMatch
	}

	var candidates []string
	isbn := metadata.NormalizeISBN(q.ISBN)
	switch {
	case isbn != "":
		candidates = []string{c.detailURLByISBN(isbn)}
	case q.ItemID != "":
		candidates = []string{c.detailURLByItemID(q.ItemID)}
	default:
		var err error
		candidates, err = c.searchCandidates(ctx, q.Title, q.Author)
		if err != nil {
			return nil, err
		}
	}

	var books []metadata.Book
	for _, detailURL := range candidates {
		book, err := c.fetchDetail(ctx, detailURL)
		if err != nil {
			if !errors.Is(err, ErrNoMatch) {
				log.Printf("[WARN] detail fetch failed for %s: %v", detailURL, err)
			}
			continue
		}
		books = append(books, book)
		if len(books) >= c.opts.MaxResults {
			break
		}
	}

	// An ISBN that resolves to nothing still often exists under a different
	// edition; retry once as a plain title/author search.
	if len(books) == 0 && isbn != "" && (q.Title != "" || q.Author != "") {
		log.Printf("[INFO] no match for ISBN %s, retrying with title/author", isbn)
		return c.lookup(ctx, metadata.Query{Title: q.Title, Author: q.Author})
	}

	if len(books) == 0 {
		return nil, ErrNoMatch
	}
	return books, nil
}

// searchCandidates runs the keyword search and returns matching detail URLs
// in relevance order.
func (c *Client) searchCandidates(ctx context.Context, title, author string) ([]string, error) {
	searchPage := c.searchURL(title, author)
	doc, err := c.fetchHTML(ctx, searchPage, "")
	if err != nil {
		return nil, err
	}
	base, _ := url.Parse(c.baseURL)
	results := parseSearchResults(doc, base)

	var out []string
	for _, r := range results {
		if !matchesQuery(r, title, author) {
			log.Printf("[DEBUG] rejecting search result %q, not close enough to %q/%q", r.title, title, author)
			continue
		}
		out = append(out, r.url)
		if len(out) >= c.opts.MaxResults {
			break
		}
	}
	return out, nil
}

// fetchDetail fetches one product page and assembles the final record.
func (c *Client) fetchDetail(ctx context.Context, detailURL string) (metadata.Book, error) {
	doc, err := c.fetchHTML(ctx, detailURL, "")
	if err != nil {
		return metadata.Book{}, err
	}
	d, err := parseDetail(doc, detailURL)
	if err != nil {
		return metadata.Book{}, err
	}

	d.book.Authors = filterAuthors(d.book.Authors, c.opts.AllContributors)
	d.book.Tags = c.mapper().Apply(d.categories, d.itemTags)
	c.fetchDescription(ctx, d, doc, detailURL)
	d.book.CoverURL = c.resolveCoverURL(ctx, d.book.CoverURL)

	c.rememberIdentifiers(&d.book)
	return d.book, nil
}

// rememberIdentifiers feeds the persistent identifier cache so later cover
// requests skip the identify step.
func (c *Client) rememberIdentifiers(b *metadata.Book) {
	if c.ids == nil || b.SourceID == "" {
		return
	}
	if b.ISBN != "" {
		if err := c.ids.RememberISBN(b.ISBN, b.SourceID); err != nil {
			log.Printf("[WARN] identifier cache write failed: %v", err)
		}
	}
	if b.CoverURL != "" {
		if err := c.ids.RememberCoverURL(b.SourceID, b.CoverURL); err != nil {
			log.Printf("[WARN] identifier cache write failed: %v", err)
		}
	}
}
