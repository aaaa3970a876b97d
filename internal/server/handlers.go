// file: internal/server/handlers.go
// version: 1.1.0
// guid: a3b5c7d9-e1f2-4a3b-8c9d-0e1f2a3b4c5d

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yschoi/aladin-lookup/internal/aladin"
	"github.com/yschoi/aladin-lookup/internal/metadata"
)

// bookResponse is the JSON shape of one record.
type bookResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Series      string   `json:"series,omitempty"`
	SeriesIndex float64  `json:"series_index,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`
	Comments    string   `json:"comments,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	PubDate     string   `json:"pubdate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Language    string   `json:"language,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
}

func toBookResponse(b metadata.Book) bookResponse {
	resp := bookResponse{
		ID:          b.SourceID,
		Title:       b.Title,
		Authors:     b.AuthorNames(),
		Series:      b.Series,
		SeriesIndex: b.SeriesIndex,
		ISBN:        b.ISBN,
		Comments:    b.Comments,
		Rating:      b.Rating,
		Publisher:   b.Publisher,
		Tags:        b.Tags,
		Language:    b.Language,
		CoverURL:    b.CoverURL,
	}
	if !b.PubDate.IsZero() {
		resp.PubDate = b.PubDate.Format(time.DateOnly)
	}
	return resp
}

// handleLookup serves GET /api/v1/lookup?isbn=…|title=…&author=…
// A lookup that finds nothing is a 404, never a 5xx: upstream flakiness is
// "no match" to the caller, matching the adapter contract.
func (s *Server) handleLookup(c *gin.Context) {
	q := metadata.Query{
		ISBN:   c.Query("isbn"),
		ItemID: c.Query("item_id"),
		Title:  c.Query("title"),
		Author: c.Query("author"),
	}
	if q.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of isbn, item_id, title or author is required"})
		return
	}

	books, err := s.lookups.Lookup(c.Request.Context(), q)
	if err != nil || len(books) == 0 {
		if err != nil && !errors.Is(err, aladin.ErrNoMatch) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no match", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "no match"})
		return
	}

	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "results": out})
}

// handleCover serves GET /api/v1/cover/:isbn as a redirect to the image.
func (s *Server) handleCover(c *gin.Context) {
	isbn := metadata.NormalizeISBN(c.Param("isbn"))
	if isbn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isbn"})
		return
	}
	coverURL, err := s.lookups.CoverURL(c.Request.Context(), isbn)
	if err != nil || coverURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cover"})
		return
	}
	c.Redirect(http.StatusFound, coverURL)
}
