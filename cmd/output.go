// file: cmd/output.go
// version: 1.1.0
// guid: 8b0d2f4a-6c8e-4a0b-9c1d-2e3f4a5b6c7d

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yschoi/aladin-lookup/internal/metadata"
)

// bookOutput is the serializable view of a record for json/yaml output.
type bookOutput struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Authors     []string `json:"authors" yaml:"authors"`
	Series      string   `json:"series,omitempty" yaml:"series,omitempty"`
	SeriesIndex float64  `json:"series_index,omitempty" yaml:"series_index,omitempty"`
	ISBN        string   `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	Rating      float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	Publisher   string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PubDate     string   `json:"pubdate,omitempty" yaml:"pubdate,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
	Comments    string   `json:"comments,omitempty" yaml:"comments,omitempty"`
}

func toOutput(b metadata.Book) bookOutput {
	out := bookOutput{
		ID:          b.SourceID,
		Title:       b.Title,
		Authors:     b.AuthorNames(),
		Series:      b.Series,
		SeriesIndex: b.SeriesIndex,
		ISBN:        b.ISBN,
		Rating:      b.Rating,
		Publisher:   b.Publisher,
		Tags:        b.Tags,
		Language:    b.Language,
		CoverURL:    b.CoverURL,
		Comments:    b.Comments,
	}
	if !b.PubDate.IsZero() {
		out.PubDate = b.PubDate.Format(time.DateOnly)
	}
	return out
}

// writeBooks renders records in the requested format.
func writeBooks(w io.Writer, books []metadata.Book, format string) error {
	outs := make([]bookOutput, 0, len(books))
	for _, b := range books {
		outs = append(outs, toOutput(b))
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outs)
	case "yaml":
		return yaml.NewEncoder(w).Encode(outs)
	case "", "text":
		for i, b := range outs {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Title:     %s\n", b.Title)
			fmt.Fprintf(w, "Authors:   %s\n", strings.Join(b.Authors, ", "))
			if b.Series != "" {
				fmt.Fprintf(w, "Series:    %s", b.Series)
				if b.SeriesIndex > 0 {
					fmt.Fprintf(w, " #%g", b.SeriesIndex)
				}
				fmt.Fprintln(w)
			}
			if b.ISBN != "" {
				fmt.Fprintf(w, "ISBN:      %s\n", b.ISBN)
			}
			if b.Publisher != "" {
				fmt.Fprintf(w, "Publisher: %s\n", b.Publisher)
			}
			if b.PubDate != "" {
				fmt.Fprintf(w, "Published: %s\n", b.PubDate)
			}
			if b.Rating > 0 {
				fmt.Fprintf(w, "Rating:    %.1f/5\n", b.Rating)
			}
			if len(b.Tags) > 0 {
				fmt.Fprintf(w, "Tags:      %s\n", strings.Join(b.Tags, ", "))
			}
			if b.Language != "" {
				fmt.Fprintf(w, "Language:  %s\n", b.Language)
			}
			if b.CoverURL != "" {
				fmt.Fprintf(w, "Cover:     %s\n", b.CoverURL)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
