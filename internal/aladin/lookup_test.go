// file: internal/aladin/lookup_test.go
// version: 1.0.0
// guid: 7c9e1a3b-5d6f-4c7d-8e9f-0a1b2c3d4e5f

package aladin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yschoi/aladin-lookup/internal/cache"
	"github.com/yschoi/aladin-lookup/internal/metadata"
)

// lookupServer mimics the site's three endpoints with the fixture pages.
func lookupServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/wsearchresult.aspx", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(searchPageHTML))
	})
	mux.HandleFunc("/shop/wproduct.aspx", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("ItemId") == "27942886" || q.Get("ISBN") == "9788939205109":
			_, _ = w.Write([]byte(detailPageHTML))
		case q.Get("ItemId") == "66666":
			_, _ = w.Write([]byte(detailPageNoSeriesHTML))
		default:
			_, _ = w.Write([]byte(noResultPageHTML))
		}
	})
	mux.HandleFunc("/shop/product/getContents.aspx", func(w http.ResponseWriter, r *http.Request) {
		// the real endpoint rejects referer-less requests
		if r.Header.Get("Referer") == "" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(contentsPageHTML))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.SmallCover = true // keep cover resolution off the network
	opts.RequestInterval = time.Millisecond
	return opts
}

func TestLookupByISBN(t *testing.T) {
	srv := lookupServer(t)
	c := NewClientWithBaseURL(srv.URL, testOptions())

	books, err := c.Lookup(context.Background(), metadata.Query{ISBN: "9788939205109"})
	require.NoError(t, err)
	require.Len(t, books, 1)

	b := books[0]
	assert.Equal(t, "27942886", b.SourceID)
	assert.Equal(t, "체 게바라 평전", b.Title)
	assert.Equal(t, []string{"장 코르미에"}, b.AuthorNames())
	assert.Equal(t, "역사 인물 찾기", b.Series)
	assert.Equal(t, 10.0, b.SeriesIndex)
	assert.Equal(t, "9788939205109", b.ISBN)
	assert.Equal(t, 4.6, b.Rating)
	assert.Equal(t, "실천문학사", b.Publisher)
	assert.Equal(t, time.Date(2005, 5, 25, 0, 0, 0, 0, time.UTC), b.PubDate)
	assert.Equal(t, "kor", b.Language)
	assert.Equal(t, []string{"역사.인물이야기", "전기/자서전", "혁명", "쿠바"}, b.Tags)
	assert.Equal(t, "http://image.aladin.co.kr/product/39/20/cover/8939205103_1.jpg", b.CoverURL)

	assert.Contains(t, b.Comments, `<div id="comments">`)
	assert.Contains(t, b.Comments, "체 게바라의 전 생애를 다룬 평전.")
	assert.Contains(t, b.Comments, "[목차]")
	assert.Contains(t, b.TOC, "1장 유년 시절")
}

func TestLookupAllContributors(t *testing.T) {
	srv := lookupServer(t)
	opts := testOptions()
	opts.AllContributors = true
	c := NewClientWithBaseURL(srv.URL, opts)

	books, err := c.Lookup(context.Background(), metadata.Query{ISBN: "9788939205109"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, []string{"장 코르미에", "김미선"}, books[0].AuthorNames())
}

func TestLookupByItemID(t *testing.T) {
	srv := lookupServer(t)
	c := NewClientWithBaseURL(srv.URL, testOptions())

	books, err := c.Lookup(context.Background(), metadata.Query{ItemID: "27942886"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "체 게바라 평전", books[0].Title)
}

func TestLookupBySearch(t *testing.T) {
	srv := lookupServer(t)
	c := NewClientWithBaseURL(srv.URL, testOptions())

	books, err := c.Lookup(context.Background(), metadata.Query{
		Title:  "체 게바라 평전",
		Author: "장 코르미에",
	})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "체 게바라 평전", books[0].Title)
	assert.Equal(t, "9788939205109", books[0].ISBN)
}

func TestLookupCommentsSuffix(t *testing.T) {
	srv := lookupServer(t)
	opts := testOptions()
	opts.CommentsSuffix = `<hr/><p>출처: 알라딘</p>`
	c := NewClientWithBaseURL(srv.URL, opts)

	books, err := c.Lookup(context.Background(), metadata.Query{ISBN: "9788939205109"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Contains(t, books[0].Comments, "출처: 알라딘")
}

func TestLookupNoMatch(t *testing.T) {
	srv := lookupServer(t)
	c := NewClientWithBaseURL(srv.URL, testOptions())

	_, err := c.Lookup(context.Background(), metadata.Query{ISBN: "9999999999999"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestLookupUnknownISBNFallsBackToSearch(t *testing.T) {
	srv := lookupServer(t)
	c := NewClientWithBaseURL(srv.URL, testOptions())

	books, err := c.Lookup(context.Background(), metadata.Query{
		ISBN:  "9999999999999",
		Title: "체 게바라 평전",
	})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "체 게바라 평전", books[0].Title)
}

func TestLookupEmptyQuery(t *testing.T) {
	c := NewClientWithBaseURL("http://unused.invalid", testOptions())
	_, err := c.Lookup(context.Background(), metadata.Query{})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestLookupTagMapping(t *testing.T) {
	srv := lookupServer(t)
	c := NewClientWithBaseURL(srv.URL, testOptions())
	c.SetTagMapper(metadata.NewTagMapper(metadata.TagMapperOptions{
		Mapping:     map[string][]string{"혁명": {"Revolution"}},
		Passthrough: false,
		Delimiter:   "/",
	}))

	books, err := c.Lookup(context.Background(), metadata.Query{ISBN: "9788939205109"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, []string{"역사/인물이야기", "전기/자서전", "Revolution"}, books[0].Tags)
}

func TestTagMapperSwapDuringLookups(t *testing.T) {
	// Config reloads swap the mapper from the watcher goroutine while the
	// server runs lookups; the race detector must stay quiet here.
	srv := lookupServer(t)
	c := NewClientWithBaseURL(srv.URL, testOptions())

	swapped := metadata.NewTagMapper(metadata.TagMapperOptions{
		Mapping:     map[string][]string{"혁명": {"Revolution"}},
		Passthrough: true,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			c.SetTagMapper(swapped)
		}
	}()

	for i := 0; i < 5; i++ {
		books, err := c.Lookup(context.Background(), metadata.Query{ISBN: "9788939205109"})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.NotEmpty(t, books[0].Tags)
	}
	<-done

	// once the swap lands, subsequent lookups use the new mapping
	books, err := c.Lookup(context.Background(), metadata.Query{ISBN: "9788939205109"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Contains(t, books[0].Tags, "Revolution")
	assert.NotContains(t, books[0].Tags, "혁명")
}

func TestLookupFillsIdentifierStore(t *testing.T) {
	srv := lookupServer(t)
	c := NewClientWithBaseURL(srv.URL, testOptions())

	ids, err := cache.NewIdentifierStore(filepath.Join(t.TempDir(), "ids.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ids.Close() })
	c.SetIdentifierStore(ids)

	books, err := c.Lookup(context.Background(), metadata.Query{ISBN: "9788939205109"})
	require.NoError(t, err)
	require.Len(t, books, 1)

	itemID, err := ids.ItemIDForISBN("9788939205109")
	require.NoError(t, err)
	assert.Equal(t, "27942886", itemID)

	coverURL, err := ids.CoverURLForItemID(itemID)
	require.NoError(t, err)
	assert.Equal(t, books[0].CoverURL, coverURL)

	// a cover request after the lookup never re-identifies
	got, err := c.CoverForISBN(context.Background(), "9788939205109")
	require.NoError(t, err)
	assert.Equal(t, books[0].CoverURL, got)
}
