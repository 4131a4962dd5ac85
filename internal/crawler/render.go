package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/opencrawl/opencrawl/internal/model"
)

// RenderFetcher fetches pages through a headless browser so that
// client-side rendered content becomes visible to the evaluation.
//
// Design decision: Rendering is optional and best-effort. The fetcher is
// meant to sit in front of an HTTPFetcher via NewFallbackFetcher, so any
// browser failure degrades transparently to the basic backend. Rendering
// correctness itself is out of scope; we only need the text and links the
// browser ends up with.
type RenderFetcher struct {
	// timeout bounds a single navigation including page load.
	timeout time.Duration

	// allocatorOpts configure the headless Chrome instance.
	allocatorOpts []chromedp.ExecAllocatorOption
}

// DefaultRenderTimeout bounds a single browser navigation. Rendered pages
// load slower than plain fetches, so this is more generous than the HTTP
// timeout.
const DefaultRenderTimeout = 45 * time.Second

// RenderFetcherOption configures a RenderFetcher.
type RenderFetcherOption func(*RenderFetcher)

// WithRenderTimeout sets the per-page navigation timeout.
func WithRenderTimeout(d time.Duration) RenderFetcherOption {
	return func(f *RenderFetcher) {
		f.timeout = d
	}
}

// NewRenderFetcher creates a RenderFetcher with a headless configuration.
func NewRenderFetcher(opts ...RenderFetcherOption) *RenderFetcher {
	f := &RenderFetcher{
		timeout: DefaultRenderTimeout,
		allocatorOpts: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
		),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch navigates to the page in a headless browser and extracts title,
// text, and links from the rendered DOM. Never returns an error; all
// failures yield a failed PageResult so the fallback chain can take over.
func (f *RenderFetcher) Fetch(ctx context.Context, pageURL string) *model.PageResult {
	fetchedAt := time.Now()

	navCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(navCtx, f.allocatorOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var renderedHTML string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.OuterHTML("html", &renderedHTML),
	)
	if err != nil {
		return failedPage(pageURL, fetchedAt, fmt.Sprintf("render failed: %v", err))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderedHTML))
	if err != nil {
		return failedPage(pageURL, fetchedAt, fmt.Sprintf("failed to parse rendered HTML: %v", err))
	}

	doc.Find("script, style").Remove()

	links := make([]string, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && strings.TrimSpace(href) != "" {
			links = append(links, strings.TrimSpace(href))
		}
	})

	return &model.PageResult{
		URL:       pageURL,
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		Content:   strings.Join(strings.Fields(doc.Text()), " "),
		Links:     links,
		Success:   true,
		FetchedAt: fetchedAt,
	}
}
