package crawler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opencrawl/opencrawl/internal/model"
)

// Fetcher is the capability interface for retrieving a single page.
// Implementations must always return a PageResult: network errors, non-2xx
// responses, and parse failures all map to a failed result, never to a
// panic or an unhandled error.
type Fetcher interface {
	// Fetch retrieves the page at the given absolute URL.
	Fetch(ctx context.Context, pageURL string) *model.PageResult
}

// HTTPFetcher fetches pages over plain HTTP and parses them with Parser.
// This is the basic backend; see RenderFetcher for the rendering-capable
// one and NewFallbackFetcher for the chain combining both.
type HTTPFetcher struct {
	// client is the HTTP client used for all requests.
	client *http.Client

	// userAgent is the User-Agent header to send.
	userAgent string

	// headers are additional headers applied to every request.
	headers map[string]string

	// maxBodySize limits the number of response bytes read.
	maxBodySize int64

	// parser extracts title, text, and links from the response body.
	parser *Parser
}

// HTTPFetcherOption configures an HTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithHeaders sets additional headers applied to every request.
func WithHeaders(headers map[string]string) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.headers = headers
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// DefaultUserAgent identifies opencrawl in HTTP requests. A descriptive
// User-Agent lets site operators identify crawler traffic in their logs.
const DefaultUserAgent = "opencrawl/1.0 (research tool; +https://github.com/opencrawl/opencrawl)"

// DefaultMaxBodySize limits response bodies to 5MB. Sufficient for HTML
// pages while preventing memory exhaustion from unexpectedly large responses.
const DefaultMaxBodySize = 5 * 1024 * 1024

// NewHTTPFetcher creates an HTTPFetcher using the given client.
//
// Design decision: We require an external client because timeout and
// transport configuration belong to the caller, and tests can substitute
// an httptest-backed client.
func NewHTTPFetcher(client *http.Client, opts ...HTTPFetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:      client,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		parser:      NewParser(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves and parses a single page. It never returns an error;
// all failures yield a PageResult with Success=false.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) *model.PageResult {
	fetchedAt := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return failedPage(pageURL, fetchedAt, fmt.Sprintf("invalid URL: %v", err))
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return failedPage(pageURL, fetchedAt, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failedPage(pageURL, fetchedAt, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return failedPage(pageURL, fetchedAt, fmt.Sprintf("failed to read body: %v", err))
	}

	parsed, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return failedPage(pageURL, fetchedAt, fmt.Sprintf("failed to parse HTML: %v", err))
	}

	return &model.PageResult{
		URL:       pageURL,
		Title:     parsed.Title,
		Content:   parsed.Text,
		Links:     parsed.Links,
		Success:   true,
		FetchedAt: fetchedAt,
	}
}

func failedPage(pageURL string, fetchedAt time.Time, message string) *model.PageResult {
	page := model.NewFailedPage(pageURL, message)
	page.FetchedAt = fetchedAt
	return page
}

// FallbackFetcher chains two fetchers: if the primary fails for a URL, the
// secondary is tried transparently for the same URL.
//
// Design decision: The rendering-capable backend and the basic backend are
// two implementations of one capability composed as a chain, not an
// inheritance hierarchy. The caller only ever sees a single Fetcher.
type FallbackFetcher struct {
	primary   Fetcher
	secondary Fetcher
}

// NewFallbackFetcher creates a fetcher that tries primary first and falls
// back to secondary when the primary result is unsuccessful.
func NewFallbackFetcher(primary, secondary Fetcher) *FallbackFetcher {
	return &FallbackFetcher{primary: primary, secondary: secondary}
}

// Fetch tries the primary fetcher and falls back to the secondary on failure.
func (f *FallbackFetcher) Fetch(ctx context.Context, pageURL string) *model.PageResult {
	page := f.primary.Fetch(ctx, pageURL)
	if page.Success {
		return page
	}
	return f.secondary.Fetch(ctx, pageURL)
}
