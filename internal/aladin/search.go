// file: internal/aladin/search.go
// version: 1.3.0
// guid: 4f6a8c0e-2d3b-4e5f-a6b7-c8d9e0f1a2b3

package aladin

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/net/html"
)

// detailURLByISBN goes straight to the product page; the site resolves an
// ISBN without a search round-trip.
func (c *Client) detailURLByISBN(isbn string) string {
	return fmt.Sprintf("%s/shop/wproduct.aspx?ISBN=%s", c.baseURL, url.QueryEscape(isbn))
}

func (c *Client) detailURLByItemID(itemID string) string {
	return fmt.Sprintf("%s/shop/wproduct.aspx?ItemId=%s", c.baseURL, url.QueryEscape(itemID))
}

// searchURL builds a keyword search over everything the store carries.
func (c *Client) searchURL(title, author string) string {
	var tokens []string
	for _, t := range strings.Fields(title) {
		tokens = append(tokens, t)
	}
	// Only the first author narrows results without excluding co-editions.
	if fields := strings.Fields(author); len(fields) > 0 {
		tokens = append(tokens, fields[0])
	}
	q := url.QueryEscape(strings.Join(tokens, " "))
	return fmt.Sprintf("%s/search/wsearchresult.aspx?SearchTarget=All&SearchWord=%s", c.baseURL, q)
}

// Product listings for non-book media carry one of these markers in the
// title; they never map onto a book record.
var unsupportedFormats = []string{"[ebook]", "[알라딘굿즈]", "[커피]", "[음반]", "[dvd]", "[블루레이]"}

func isUnsupportedFormat(title string) bool {
	lower := strings.ToLower(title)
	for _, f := range unsupportedFormats {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// searchResult is one candidate row from the results page.
type searchResult struct {
	title   string
	authors []string
	url     string
}

// parseSearchResults extracts candidate detail URLs from a results page.
// Rows whose title or authors cannot be read are skipped, never fatal.
func parseSearchResults(doc *html.Node, base *url.URL) []searchResult {
	container := findFirst(doc, func(n *html.Node) bool { return hasID(n, "Search3_Result") })
	if container == nil {
		return nil
	}

	var out []searchResult
	for _, box := range findAll(container, func(n *html.Node) bool {
		return isElement(n, "div") && hasClass(n, "ss_book_box")
	}) {
		list := findFirst(box, func(n *html.Node) bool {
			return isElement(n, "div") && hasClass(n, "ss_book_list")
		})
		if list == nil {
			continue
		}
		link := findFirst(list, func(n *html.Node) bool {
			return isElement(n, "a") && strings.Contains(attr(n, "href"), "wproduct.aspx")
		})
		if link == nil {
			continue
		}

		title := collapseSpace(textContent(link))
		if title == "" && link.Parent != nil {
			title = collapseSpace(textContent(link.Parent))
		}
		if title == "" {
			log.Printf("[DEBUG] search row without a title, skipping")
			continue
		}
		if isUnsupportedFormat(title) {
			continue
		}
		// Trailing parenthetical carries edition/binding noise.
		if idx := strings.LastIndex(title, "("); idx > 0 {
			title = strings.TrimSpace(title[:idx])
		}

		var authors []string
		for _, a := range findAll(list, func(n *html.Node) bool {
			return isElement(n, "a") && strings.Contains(attr(n, "href"), "AuthorSearch")
		}) {
			if name := collapseSpace(textContent(a)); name != "" {
				authors = append(authors, name)
			}
		}

		href := attr(link, "href")
		resolved := href
		if ref, err := url.Parse(href); err == nil && base != nil {
			resolved = base.ResolveReference(ref).String()
		}
		out = append(out, searchResult{title: title, authors: authors, url: resolved})
	}
	return out
}

// matchesQuery accepts a candidate when any query title token appears in the
// candidate title and any query author token appears among its authors.
// Tokens match as substrings first, with a fuzzy fallback for particles and
// spacing differences in Korean names.
func matchesQuery(r searchResult, title, author string) bool {
	titleOK := title == ""
	candTitle := strings.ToLower(r.title)
	for _, tok := range strings.Fields(strings.ToLower(title)) {
		if strings.Contains(candTitle, tok) || fuzzy.MatchNormalizedFold(tok, candTitle) {
			titleOK = true
			break
		}
	}

	authorOK := author == ""
	candAuthors := strings.ToLower(strings.Join(r.authors, " "))
	for _, tok := range strings.Fields(strings.ToLower(author)) {
		if strings.Contains(candAuthors, tok) || fuzzy.MatchNormalizedFold(tok, candAuthors) {
			authorOK = true
			break
		}
	}
	return titleOK && authorOK
}
