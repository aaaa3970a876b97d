// file: internal/aladin/search_test.go
// version: 1.0.0
// guid: 3e5a7c9b-1d2f-4e3a-8b4c-5d6e7f8a9b0c

package aladin

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchResults(t *testing.T) {
	doc := parseFixture(t, searchPageHTML)
	base, err := url.Parse("https://www.aladin.co.kr")
	require.NoError(t, err)

	results := parseSearchResults(doc, base)
	require.Len(t, results, 2) // the eBook row is dropped

	assert.Equal(t, "체 게바라 평전", results[0].title)
	assert.Equal(t, []string{"장 코르미에", "김미선"}, results[0].authors)
	assert.Equal(t, "https://www.aladin.co.kr/shop/wproduct.aspx?ItemId=27942886", results[0].url)

	assert.Equal(t, "전혀 다른 책", results[1].title)
	assert.Equal(t, "https://www.aladin.co.kr/shop/wproduct.aspx?ItemId=66666", results[1].url)
}

func TestParseSearchResultsEmptyPage(t *testing.T) {
	doc := parseFixture(t, noResultPageHTML)
	assert.Empty(t, parseSearchResults(doc, nil))
}

func TestIsUnsupportedFormat(t *testing.T) {
	assert.True(t, isUnsupportedFormat("[eBook] 체 게바라 평전"))
	assert.True(t, isUnsupportedFormat("그래도 꽃처럼 [음반]"))
	assert.True(t, isUnsupportedFormat("캐리비안의 해적 [DVD]"))
	assert.False(t, isUnsupportedFormat("체 게바라 평전"))
}

func TestMatchesQuery(t *testing.T) {
	r := searchResult{
		title:   "체 게바라 평전",
		authors: []string{"장 코르미에", "김미선"},
	}

	assert.True(t, matchesQuery(r, "체 게바라 평전", ""))
	assert.True(t, matchesQuery(r, "게바라", "코르미에"))
	assert.True(t, matchesQuery(r, "", "김미선"))
	assert.True(t, matchesQuery(r, "", ""))
	assert.False(t, matchesQuery(r, "전혀다른제목", ""))
	assert.False(t, matchesQuery(r, "게바라", "박경리"))
}

func TestSearchURL(t *testing.T) {
	c := NewClientWithBaseURL("https://www.aladin.co.kr", DefaultOptions())

	u := c.searchURL("체 게바라 평전", "장 코르미에")
	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "/search/wsearchresult.aspx", parsed.Path)
	assert.Equal(t, "All", parsed.Query().Get("SearchTarget"))
	// Only the first author token narrows the search.
	assert.Equal(t, "체 게바라 평전 장", parsed.Query().Get("SearchWord"))
}

func TestDetailURLs(t *testing.T) {
	c := NewClientWithBaseURL("https://www.aladin.co.kr", DefaultOptions())
	assert.Equal(t,
		"https://www.aladin.co.kr/shop/wproduct.aspx?ISBN=9788939205109",
		c.detailURLByISBN("9788939205109"))
	assert.Equal(t,
		"https://www.aladin.co.kr/shop/wproduct.aspx?ItemId=27942886",
		c.detailURLByItemID("27942886"))
}
