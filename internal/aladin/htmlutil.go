// file: internal/aladin/htmlutil.go
// version: 1.1.0
// guid: 1c3e5a7b-9d0f-4b2c-8e4a-6f8b0d2e4c6a

package aladin

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Small traversal helpers over x/net/html node trees. The parser gives us a
// plain tree; the selectors the site needs are all class/id/attribute checks.

func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func hasID(n *html.Node, id string) bool {
	return attr(n, "id") == id
}

// textContent concatenates every text node under n, skipping an optional
// excluded subtree.
func textContent(n *html.Node) string {
	return textContentExcluding(n, nil)
}

func textContentExcluding(n, excluded *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil || n == excluded {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// collapseSpace trims and squeezes runs of whitespace, including NBSP.
func collapseSpace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// removeChildren deletes any descendant elements with one of the given tag
// names, in place. Used to drop script/style/object from description HTML.
func removeChildren(n *html.Node, tags ...string) {
	drop := make(map[string]bool, len(tags))
	for _, t := range tags {
		drop[t] = true
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && drop[c.Data] {
			n.RemoveChild(c)
		} else {
			removeChildren(c, tags...)
		}
		c = next
	}
}

// renderNode serializes a node back to HTML; parse/render errors yield "".
func renderNode(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}
