package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opencrawl/opencrawl/internal/model"
)

// StatusFunc receives human-readable progress messages at fixed checkpoints
// during a crawl. It is push-only: the return-less signature and the
// panic-proof dispatch guarantee a status sink can never affect control flow.
type StatusFunc func(message string)

// DefaultIntraDomainDelay is the politeness delay between two requests to
// the same site. Conservative and respectful of server resources.
const DefaultIntraDomainDelay = 1 * time.Second

// Crawler drives the fetch sequence for one organization at a time.
// It never issues concurrent fetches within an organization.
type Crawler struct {
	// fetcher retrieves individual pages. Usually a FallbackFetcher
	// chaining the rendering backend in front of plain HTTP.
	fetcher Fetcher

	// classifier filters raw hrefs to crawlable internal links.
	classifier *Classifier

	// selector resolves the crawl strategy.
	selector *Selector

	// robotsClient is used for the advisory robots.txt lookup.
	// Nil disables the lookup.
	robotsClient *http.Client

	// userAgent is reported to robots.txt.
	userAgent string

	// intraDelay is the politeness delay between fetches.
	intraDelay time.Duration

	// status receives progress messages; may be nil.
	status StatusFunc

	// logger records crawl progress.
	logger *slog.Logger
}

// CrawlerOption configures a Crawler.
type CrawlerOption func(*Crawler)

// WithIntraDomainDelay sets the delay between fetches within one site.
func WithIntraDomainDelay(d time.Duration) CrawlerOption {
	return func(c *Crawler) {
		c.intraDelay = d
	}
}

// WithStatusFunc sets the progress message sink.
func WithStatusFunc(fn StatusFunc) CrawlerOption {
	return func(c *Crawler) {
		c.status = fn
	}
}

// WithRobotsClient enables the advisory robots.txt lookup using the given
// client.
func WithRobotsClient(client *http.Client) CrawlerOption {
	return func(c *Crawler) {
		c.robotsClient = client
	}
}

// WithCrawlerUserAgent sets the user agent reported to robots.txt.
func WithCrawlerUserAgent(ua string) CrawlerOption {
	return func(c *Crawler) {
		c.userAgent = ua
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) CrawlerOption {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// New creates a Crawler.
//
// Design decision: The fetcher and the strategy selector (which carries the
// LLM collaborator) are injected rather than constructed here, so tests can
// substitute deterministic implementations.
func New(fetcher Fetcher, selector *Selector, opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		fetcher:    fetcher,
		classifier: NewClassifier(),
		selector:   selector,
		userAgent:  DefaultUserAgent,
		intraDelay: DefaultIntraDomainDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// CrawlOrganization crawls one organization's website and returns the
// aggregated result. It never returns an error or panics: a failed homepage
// fetch yields a terminal single-page result, and any unexpected internal
// error is converted into a terminal failed result.
func (c *Crawler) CrawlOrganization(ctx context.Context, organizationName, baseURL string, criteriaNames []string) (result *model.OrganizationCrawlResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("crawl aborted by internal error",
				"organization", organizationName,
				"panic", r,
			)
			result = &model.OrganizationCrawlResult{
				OrganizationName: organizationName,
				BaseURL:          baseURL,
				Pages:            []*model.PageResult{},
				Duration:         time.Since(start),
				Errors: []model.CrawlError{
					{URL: baseURL, Message: fmt.Sprintf("crawl failed: %v", r)},
				},
			}
		}
	}()

	c.logger.Info("starting crawl",
		"organization", organizationName,
		"url", baseURL,
		"strategy", c.selector.Strategy(),
	)

	delay := c.intraDelay
	if c.robotsClient != nil {
		robots := CheckRobots(ctx, c.robotsClient, baseURL, c.userAgent)
		if robots.Exists && robots.CrawlDelay > delay {
			c.logger.Info("robots.txt requests a longer crawl delay",
				"organization", organizationName,
				"delay", robots.CrawlDelay,
			)
			delay = robots.CrawlDelay
		}
	}

	c.notify(fmt.Sprintf("Fetching homepage: %s", baseURL))
	mainPage := c.fetcher.Fetch(ctx, baseURL)

	if !mainPage.Success {
		c.notify(fmt.Sprintf("Homepage fetch failed: %s", mainPage.ErrorMessage))
		return &model.OrganizationCrawlResult{
			OrganizationName: organizationName,
			BaseURL:          baseURL,
			Pages:            []*model.PageResult{mainPage},
			TotalPages:       1,
			SuccessfulPages:  0,
			Duration:         time.Since(start),
			Errors: []model.CrawlError{
				{URL: baseURL, Message: "failed to fetch homepage: " + mainPage.ErrorMessage},
			},
		}
	}

	internalLinks := c.classifier.InternalLinks(baseURL, mainPage.Links)
	remaining := c.selector.Select(ctx, organizationName, baseURL, internalLinks, criteriaNames)
	c.notify(fmt.Sprintf("Crawling %d pages (%d subpages discovered)", len(remaining)+1, len(internalLinks)))

	pages := []*model.PageResult{mainPage}
	errors := make([]model.CrawlError, 0)

	for idx, pageURL := range remaining {
		if err := c.wait(ctx, delay); err != nil {
			// Cancelled mid-crawl: return what we have so far.
			c.logger.Warn("crawl cancelled",
				"organization", organizationName,
				"fetched", len(pages),
			)
			break
		}

		c.notify(fmt.Sprintf("Fetching page %d/%d: %s", idx+2, len(remaining)+1, pageName(pageURL)))
		page := c.fetcher.Fetch(ctx, pageURL)
		pages = append(pages, page)

		if page.Success {
			c.notify(fmt.Sprintf("Fetched: %s", pageName(pageURL)))
		} else {
			c.notify(fmt.Sprintf("Failed: %s - %s", pageName(pageURL), page.ErrorMessage))
			errors = append(errors, model.CrawlError{URL: pageURL, Message: page.ErrorMessage})
		}
	}

	successful := 0
	for _, page := range pages {
		if page.Success {
			successful++
		}
	}

	result = &model.OrganizationCrawlResult{
		OrganizationName: organizationName,
		BaseURL:          baseURL,
		Pages:            pages,
		TotalPages:       len(pages),
		SuccessfulPages:  successful,
		Duration:         time.Since(start),
		Errors:           errors,
	}

	c.notify(fmt.Sprintf("Crawl finished: %d/%d pages fetched in %s",
		successful, len(pages), result.Duration.Round(time.Millisecond)))

	return result
}

// wait sleeps for the politeness delay, honoring cancellation.
func (c *Crawler) wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// notify dispatches a status message. A panicking sink must never break
// the crawl.
func (c *Crawler) notify(message string) {
	if c.status == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("status callback panicked", "panic", r)
		}
	}()
	c.status(message)
}

// pageName returns a short readable name for a page URL, used in status
// messages.
func pageName(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "homepage"
	}

	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	if len(name) > 30 {
		name = name[:27] + "..."
	}
	return name
}
