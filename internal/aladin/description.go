// file: internal/aladin/description.go
// version: 1.2.0
// guid: 6a8c0e2f-4b5d-4f6a-b8c9-d0e1f2a3b4c5

package aladin

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// The description and table of contents are not on the product page; the
// site loads them from a separate endpoint keyed by ISBN.
func (c *Client) contentsURL(isbn string) string {
	return fmt.Sprintf("%s/shop/product/getContents.aspx?ISBN=%s&name=Introduce&type=0&date=%d",
		c.baseURL, url.QueryEscape(isbn), time.Now().Hour())
}

// fetchDescription fills Comments and TOC on a raw detail record. Every
// failure path degrades to the og/meta description or to no description at
// all; it never returns an error to the lookup.
func (c *Client) fetchDescription(ctx context.Context, d *rawDetail, detailDoc *html.Node, detailURL string) {
	var comments, toc string

	if d.book.ISBN != "" {
		doc, err := c.fetchHTML(ctx, c.contentsURL(d.book.ISBN), detailURL)
		if err != nil {
			log.Printf("[WARN] description fetch failed for ISBN %s: %v", d.book.ISBN, err)
		} else {
			comments = parseDescriptionBlock(doc)
			if c.opts.AppendTOC {
				toc = parseTOC(doc)
			}
		}
	}

	if comments == "" {
		comments = metaDescription(detailDoc)
	}
	if comments != "" {
		comments = `<div id="comments">` + comments + `</div>`
	}
	if toc != "" {
		comments += `<h3>[목차]</h3><div id="toc">` + toc + `</div>`
	}
	if comments != "" && c.opts.CommentsSuffix != "" {
		comments += c.opts.CommentsSuffix
	}
	d.book.Comments = comments
	d.book.TOC = toc
}

// parseDescriptionBlock returns the publisher-provided description HTML with
// active content stripped.
func parseDescriptionBlock(doc *html.Node) string {
	block := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "div") && hasClass(n, "p_textbox")
	})
	if block == nil {
		return ""
	}
	removeChildren(block, "script", "style", "object")
	return renderNode(block)
}

// parseTOC prefers the full table of contents and falls back to the short
// one. Only the first paragraph block is the TOC body.
func parseTOC(doc *html.Node) string {
	for _, id := range []string{"div_TOC_All", "div_TOC_Short"} {
		block := findFirst(doc, func(n *html.Node) bool { return hasID(n, id) })
		if block == nil {
			continue
		}
		p := findFirst(block, func(n *html.Node) bool { return isElement(n, "p") })
		if p == nil {
			continue
		}
		return renderNode(p)
	}
	return ""
}

func metaDescription(doc *html.Node) string {
	meta := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "meta") && strings.EqualFold(attr(n, "name"), "description")
	})
	if meta == nil {
		return ""
	}
	return strings.TrimSpace(attr(meta, "content"))
}
