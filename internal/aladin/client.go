// file: internal/aladin/client.go
// version: 1.3.0
// guid: 5b9d2e7f-4a1c-4d8b-9e3f-6c0a8b2d4f6e

package aladin

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"github.com/yschoi/aladin-lookup/internal/cache"
	"github.com/yschoi/aladin-lookup/internal/metadata"
)

// Options control parsing and lookup behavior. They correspond to the
// user-visible settings of the adapter and are read-only during a lookup.
type Options struct {
	MaxResults      int
	AllContributors bool   // keep every contributor, not just primary authors
	SmallCover      bool   // keep the og:image thumbnail instead of the letslook full-size image
	AppendTOC       bool   // append table of contents to the description
	CommentsSuffix  string // optional HTML appended to the description
	Timeout         time.Duration
	RequestInterval time.Duration // minimum spacing between outbound requests
}

// DefaultOptions returns the settings the upstream site tolerates well.
func DefaultOptions() Options {
	return Options{
		MaxResults:      5,
		AppendTOC:       true,
		Timeout:         20 * time.Second,
		RequestInterval: 200 * time.Millisecond,
	}
}

// Client fetches and parses Aladin.co.kr catalog pages. A single synchronous
// request chain per lookup; the only mutable shared state is the tag mapper,
// which config reloads swap behind the mutex while lookups are in flight.
type Client struct {
	httpClient *http.Client
	baseURL    string
	opts       Options
	limiter    *rate.Limiter
	ids        *cache.IdentifierStore

	mu        sync.RWMutex // guards tagMapper
	tagMapper *metadata.TagMapper
}

// NewClient creates a client for the live site.
func NewClient(opts Options) *Client {
	baseURL := os.Getenv("ALADIN_BASE_URL")
	if baseURL == "" {
		baseURL = "https://www.aladin.co.kr"
	}
	return NewClientWithBaseURL(baseURL, opts)
}

// NewClientWithBaseURL creates a client with a custom base URL (for testing).
func NewClientWithBaseURL(baseURL string, opts Options) *Client {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	interval := opts.RequestInterval
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		opts:       opts,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		tagMapper:  metadata.NewTagMapper(metadata.TagMapperOptions{Passthrough: true}),
	}
}

// Name returns the display name for this metadata source.
func (c *Client) Name() string {
	return "Aladin.co.kr"
}

// SetTagMapper attaches the configured category/tag mapping. Safe to call
// while lookups are running; the config watcher uses it for live reloads.
func (c *Client) SetTagMapper(tm *metadata.TagMapper) {
	if tm == nil {
		return
	}
	c.mu.Lock()
	c.tagMapper = tm
	c.mu.Unlock()
}

// mapper returns the current tag mapper. A lookup loads it once and keeps it
// for the whole record, so a reload mid-lookup cannot mix mappings.
func (c *Client) mapper() *metadata.TagMapper {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tagMapper
}

// SetIdentifierStore attaches a persistent ISBN→ItemId / ItemId→cover cache.
func (c *Client) SetIdentifierStore(ids *cache.IdentifierStore) {
	c.ids = ids
}

// BaseURL returns the site root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// fetchHTML GETs a page and returns the parsed document. referer may be ""
// (the description endpoint rejects requests without one).
func (c *Client) fetchHTML(ctx context.Context, pageURL, referer string) (*html.Node, error) {
	body, contentType, err := c.fetch(ctx, pageURL, referer)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r, err := decodeReader(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", pageURL, err)
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// fetch issues a rate-limited GET. The caller owns the returned body.
func (c *Client) fetch(ctx context.Context, pageURL, referer string) (io.ReadCloser, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "ko, en")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			log.Printf("[DEBUG] page not found: %s", pageURL)
			return nil, "", ErrNoMatch
		}
		return nil, "", fmt.Errorf("aladin returned status %d for %s", resp.StatusCode, pageURL)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

const userAgent = "aladin-lookup/1.0 (+https://github.com/yschoi/aladin-lookup)"

// decodeReader converts a response body to UTF-8. The site serves a mix of
// EUC-KR (legacy catalog pages) and UTF-8 (getContents endpoint); when
// neither the header nor the meta tags declare a charset, assume EUC-KR
// rather than the windows-1252 sniffing default.
func decodeReader(body io.Reader, contentType string) (io.Reader, error) {
	br := bufio.NewReader(body)
	peek, err := br.Peek(1024)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	enc, name, certain := charset.DetermineEncoding(peek, contentType)
	if !certain && name == "windows-1252" {
		enc = korean.EUCKR
	}
	return stripControl(transform.NewReader(br, enc.NewDecoder())), nil
}

// stripControl drops ASCII control characters that break the HTML tokenizer.
func stripControl(r io.Reader) io.Reader {
	return transform.NewReader(r, runes.Remove(runes.Predicate(func(c rune) bool {
		return c < 0x20 && c != '\t' && c != '\n' && c != '\r'
	})))
}
