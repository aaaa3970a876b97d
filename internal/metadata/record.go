// file: internal/metadata/record.go
// version: 1.1.0
// guid: 3f8a1b2c-9d4e-4f5a-8b6c-7d8e9f0a1b2c

package metadata

import (
	"strings"
	"time"
)

// Author is a single contributor with an optional role annotation as it
// appears on the source page, e.g. "지은이" (author) or "옮긴이" (translator).
type Author struct {
	Name string
	Role string
}

// Book is one bibliographic record produced by a lookup. It is returned by
// value and never mutated after construction.
type Book struct {
	SourceID    string // site item identifier
	Title       string
	Authors     []Author
	Series      string
	SeriesIndex float64
	ISBN        string
	Comments    string  // description, HTML
	TOC         string  // table of contents, HTML
	Rating      float64 // 0-5
	Publisher   string
	PubDate     time.Time
	Tags        []string
	Language    string // ISO-639-2 code
	CoverURL    string
}

// AuthorNames returns just the contributor names, in page order.
func (b *Book) AuthorNames() []string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	return names
}

// PrimaryAuthor returns the first contributor name, or "".
func (b *Book) PrimaryAuthor() string {
	if len(b.Authors) == 0 {
		return ""
	}
	return b.Authors[0].Name
}

// IsZero reports whether the record carries no usable identification.
func (b *Book) IsZero() bool {
	return b.SourceID == "" && b.Title == "" && b.ISBN == ""
}

// NormalizeISBN strips hyphens and spaces from an ISBN and validates the
// plausible lengths. Returns "" when the input cannot be an ISBN-10/13.
func NormalizeISBN(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == 'X' || r == 'x' {
			b.WriteRune(r)
		}
	}
	isbn := strings.ToUpper(b.String())
	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}
	return isbn
}
