// file: internal/aladin/detail.go
// version: 1.4.0
// guid: 7d9f1b3c-5e2a-4c8d-b0e4-2f6a8c0d2e4b

package aladin

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/yschoi/aladin-lookup/internal/metadata"
)

// noResultTitle appears in the <title> when a detail URL (bad ISBN, removed
// item) falls back to the site's generic search pitch.
const noResultTitle = "좋은 책을 고르는 방법, 알라딘"

var (
	itemIDPattern  = regexp.MustCompile(`wproduct\.aspx\?.*ItemId=(\w+)`)
	seriesIndexPat = regexp.MustCompile(`\s+(\d+)\s*$`)
	isbnPattern    = regexp.MustCompile(`(?i)isbn(?:\(13\))?\s?:\s?(\S+)`)
	pubDatePattern = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	rolePattern    = regexp.MustCompile(`\((.*)\)`)
)

// roleAuthor is the annotation the site uses for the actual author
// (as opposed to translators, illustrators, editors).
const roleAuthor = "지은이"

// rawDetail is a detail page before tag mapping and description fetch.
type rawDetail struct {
	book       metadata.Book
	categories []string
	itemTags   []string
}

// parseDetail extracts every field from a product detail page. Each field is
// best-effort: a field that cannot be parsed stays zero. Returns ErrNoMatch
// when the page is not a book detail page at all.
func parseDetail(doc *html.Node, pageURL string) (*rawDetail, error) {
	if t := findFirst(doc, func(n *html.Node) bool { return isElement(n, "title") }); t != nil {
		pageTitle := strings.TrimSpace(textContent(t))
		if strings.Contains(pageTitle, noResultTitle) {
			log.Printf("[DEBUG] no detail page behind %s", pageURL)
			return nil, ErrNoMatch
		}
	}
	if errNode := findFirst(doc, func(n *html.Node) bool { return hasID(n, "errorMessage") }); errNode != nil {
		return nil, fmt.Errorf("aladin error page: %s", collapseSpace(textContent(errNode)))
	}

	d := &rawDetail{}
	d.book.SourceID = parseItemID(pageURL)
	if d.book.SourceID == "" {
		// ISBN detail URLs carry no ItemId; the heading link does.
		if link := findFirst(doc, func(n *html.Node) bool {
			return isElement(n, "a") && itemIDPattern.MatchString(attr(n, "href"))
		}); link != nil {
			d.book.SourceID = parseItemID(attr(link, "href"))
		}
	}
	d.book.Title, d.book.Series, d.book.SeriesIndex = parseTitleSeries(doc)
	d.book.Authors = parseAuthors(doc)
	d.book.Rating = parseRating(doc)
	d.book.ISBN = parseISBN(doc)
	d.book.Publisher, d.book.PubDate = parsePublisherAndDate(doc)
	d.book.Language = parseLanguage(doc)
	d.book.CoverURL = parseCoverURL(doc)
	d.categories = parseCategories(doc)
	d.itemTags = parseItemTags(doc)

	if d.book.Title == "" || len(d.book.Authors) == 0 {
		log.Printf("[DEBUG] missing title/authors on %s (title=%q authors=%d)",
			pageURL, d.book.Title, len(d.book.Authors))
		return nil, ErrNoMatch
	}
	return d, nil
}

func parseItemID(pageURL string) string {
	if m := itemIDPattern.FindStringSubmatch(pageURL); m != nil {
		return m[1]
	}
	return ""
}

// parseTitleSeries reads the heading block. The series name lives in a
// nested wseriesitem.aspx link whose subtree must be excluded from the title
// text; a trailing number on the series text is the series index.
func parseTitleSeries(doc *html.Node) (title, series string, index float64) {
	titleLink := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "a") && hasClass(n, "p_topt01")
	})
	if titleLink == nil || titleLink.Parent == nil {
		return "", "", 0
	}
	heading := titleLink.Parent

	seriesLink := findFirst(heading, func(n *html.Node) bool {
		return isElement(n, "a") && strings.Contains(attr(n, "href"), "wseriesitem.aspx")
	})
	if seriesLink == nil {
		return collapseSpace(textContent(heading)), "", 0
	}

	seriesInfo := collapseSpace(textContent(seriesLink))

	// The series link sits in its own wrapper under the heading; drop that
	// whole subtree from the title text.
	excluded := seriesLink
	for excluded.Parent != nil && excluded.Parent != heading {
		excluded = excluded.Parent
	}
	title = collapseSpace(textContentExcluding(heading, excluded))
	title = strings.TrimSpace(strings.TrimSuffix(title, seriesInfo))

	if seriesInfo == "" {
		return title, "", 0
	}
	if m := seriesIndexPat.FindStringSubmatch(seriesInfo); m != nil {
		index, _ = strconv.ParseFloat(m[1], 64)
		series = strings.TrimSpace(seriesInfo[:len(seriesInfo)-len(m[0])])
	} else {
		series = seriesInfo
	}
	return title, series, index
}

// parseAuthors walks the contributor line. Author links are followed by text
// like " (지은이) | " naming the role of the preceding link(s); scanning
// backwards assigns each link the nearest following role annotation.
func parseAuthors(doc *html.Node) []metadata.Author {
	authorLink := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "a") && hasClass(n, "np_af") &&
			strings.Contains(attr(n, "href"), "AuthorSearch=")
	})
	if authorLink == nil || authorLink.Parent == nil {
		return nil
	}

	var children []*html.Node
	for c := authorLink.Parent.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}

	var all []metadata.Author
	role := ""
	for i := len(children) - 1; i >= 0; i-- {
		n := children[i]
		switch {
		case isElement(n, "a") && strings.Contains(attr(n, "href"), "AuthorSearch="):
			name := collapseSpace(textContent(n))
			if name != "" {
				all = append(all, metadata.Author{Name: name, Role: role})
			}
		case n.Type == html.TextNode:
			if m := rolePattern.FindStringSubmatch(n.Data); m != nil {
				role = strings.TrimSpace(m[1])
			}
		}
	}
	// restore page order
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all
}

// filterAuthors keeps only the primary contributors unless every contributor
// was requested. Primary means: no role or the author role; when neither
// exists the first contributor's role is accepted for the run it starts.
func filterAuthors(all []metadata.Author, allContributors bool) []metadata.Author {
	if allContributors {
		return all
	}
	var out []metadata.Author
	validRole := ""
	for _, a := range all {
		switch {
		case a.Role == "" || a.Role == roleAuthor:
			out = append(out, a)
		case len(out) == 0:
			out = append(out, a)
			validRole = a.Role
		case a.Role == validRole:
			out = append(out, a)
		default:
			return out
		}
	}
	return out
}

// parseRating reads the star score; the site scores out of 10.
func parseRating(doc *html.Node) float64 {
	node := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "span") && hasClass(n, "star_nom")
	})
	if node == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(textContent(node)), 64)
	if err != nil {
		return 0
	}
	return v / 2
}

// goodsInfo returns the text of the standard-data block (ISBN, page count,
// language and so on).
func goodsInfo(doc *html.Node) string {
	node := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "div") && hasClass(n, "p_goodstd03")
	})
	if node == nil {
		return ""
	}
	return textContent(node)
}

func parseISBN(doc *html.Node) string {
	if m := isbnPattern.FindStringSubmatch(goodsInfo(doc)); m != nil {
		return metadata.NormalizeISBN(m[1])
	}
	return ""
}

// parsePublisherAndDate reads the publisher link and the "| YYYY-MM-DD" text
// that follows it.
func parsePublisherAndDate(doc *html.Node) (string, time.Time) {
	node := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "a") && hasClass(n, "np_af") &&
			strings.Contains(attr(n, "href"), "PublisherSearch=")
	})
	if node == nil {
		return "", time.Time{}
	}
	publisher := collapseSpace(textContent(node))

	for sib := node.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.TextNode {
			continue
		}
		if m := pubDatePattern.FindStringSubmatch(sib.Data); m != nil {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			return publisher, time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
	}
	return publisher, time.Time{}
}

func parseCategories(doc *html.Node) []string {
	block := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "div") && hasClass(n, "p_categorize")
	})
	if block == nil {
		return nil
	}
	var out []string
	for _, li := range findAll(block, func(n *html.Node) bool { return isElement(n, "li") }) {
		if text := collapseSpace(textContent(li)); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func parseItemTags(doc *html.Node) []string {
	block := findFirst(doc, func(n *html.Node) bool { return hasID(n, "div_itemtaglist") })
	if block == nil {
		return nil
	}
	var out []string
	for _, a := range findAll(block, func(n *html.Node) bool {
		return isElement(n, "a") && strings.Contains(attr(n, "href"), "tagname=")
	}) {
		if text := collapseSpace(textContent(a)); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// parseCoverURL reads the og:image thumbnail. The site's "no image"
// placeholder is skipped entirely.
func parseCoverURL(doc *html.Node) string {
	meta := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "meta") && attr(n, "property") == "og:image"
	})
	if meta == nil {
		return ""
	}
	coverURL := attr(meta, "content")
	if coverURL == "" || strings.Contains(coverURL, "noimg") {
		return ""
	}
	return coverURL
}
