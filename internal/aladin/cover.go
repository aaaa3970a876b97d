// file: internal/aladin/cover.go
// version: 1.2.0
// guid: 8c0e2a4b-6d7f-4a8b-c0d1-e2f3a4b5c6d7

package aladin

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yschoi/aladin-lookup/internal/metadata"
)

var coverSizeSuffix = regexp.MustCompile(`_\d\.(jpg|gif)`)

// FullSizeCoverURL rewrites an og:image thumbnail URL to the full-size
// "letslook" variant the site keeps next to it.
func FullSizeCoverURL(smallURL string) string {
	full := strings.Replace(smallURL, "/cover/", "/letslook/", 1)
	return coverSizeSuffix.ReplaceAllString(full, "_f.jpg")
}

// placeholder images come back tiny; anything under this is the site's
// broken-link filler rather than a cover.
const minCoverBytes = 1000

// resolveCoverURL picks the cover URL for a record honoring the small-cover
// preference, verifying that the full-size variant actually exists. The site
// keeps broken letslook links, so an extra request is unavoidable.
func (c *Client) resolveCoverURL(ctx context.Context, smallURL string) string {
	if smallURL == "" || c.opts.SmallCover {
		return smallURL
	}
	fullURL := FullSizeCoverURL(smallURL)
	body, _, err := c.fetch(ctx, fullURL, "")
	if err != nil {
		log.Printf("[DEBUG] full-size cover unavailable, keeping thumbnail: %v", err)
		return smallURL
	}
	defer body.Close()
	n, _ := io.Copy(io.Discard, io.LimitReader(body, minCoverBytes+1))
	if n <= minCoverBytes {
		log.Printf("[WARN] broken image for url: %s", fullURL)
		return smallURL
	}
	return fullURL
}

// DownloadCover fetches a cover image and saves it to
// {destDir}/covers/{id}.{ext}. Returns the local path. Only image content
// types are accepted and the body is capped at 10 MB.
func (c *Client) DownloadCover(ctx context.Context, coverURL, destDir, id string) (string, error) {
	if coverURL == "" {
		return "", fmt.Errorf("empty cover URL")
	}
	if id == "" {
		return "", fmt.Errorf("empty cover id")
	}
	coversDir := filepath.Join(destDir, "covers")
	if err := os.MkdirAll(coversDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create covers directory: %w", err)
	}

	body, contentType, err := c.fetch(ctx, coverURL, "")
	if err != nil {
		return "", fmt.Errorf("failed to download cover: %w", err)
	}
	defer body.Close()

	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unexpected content type: %s", contentType)
	}

	destPath := filepath.Join(coversDir, id+extensionFromContentType(contentType))
	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create cover file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(body, 10*1024*1024))
	if err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to write cover file: %w", err)
	}
	if written < minCoverBytes {
		os.Remove(destPath)
		return "", fmt.Errorf("cover image too small (%d bytes), placeholder", written)
	}
	return destPath, nil
}

// CoverForISBN resolves a cover URL for an ISBN, preferring the identifier
// cache populated by earlier lookups and falling back to a fresh lookup.
func (c *Client) CoverForISBN(ctx context.Context, isbn string) (string, error) {
	if c.ids != nil {
		if itemID, err := c.ids.ItemIDForISBN(isbn); err == nil && itemID != "" {
			if coverURL, err := c.ids.CoverURLForItemID(itemID); err == nil && coverURL != "" {
				return coverURL, nil
			}
		}
	}
	books, err := c.Lookup(ctx, metadata.Query{ISBN: isbn})
	if err != nil {
		return "", err
	}
	for _, b := range books {
		if b.CoverURL != "" {
			return b.CoverURL, nil
		}
	}
	return "", ErrNoMatch
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(ct)
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}
