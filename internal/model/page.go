package model

import "time"

// PageResult represents the outcome of fetching a single web page.
// It is created once per fetch attempt and never mutated afterwards.
//
// Design decision: Fetch failures are represented as data rather than
// errors because:
//  1. The crawl loop appends every attempt, successful or not
//  2. Downstream evaluation only needs the success flag to filter
//  3. Callers never have to distinguish error kinds at this level
type PageResult struct {
	// URL is the absolute URL that was fetched.
	URL string `json:"url"`

	// Title is the page title extracted from the <title> element.
	// Empty for failed fetches and non-HTML content.
	Title string `json:"title,omitempty"`

	// Content is the page text with script and style elements removed
	// and all whitespace runs collapsed to single spaces.
	// Always empty when Success is false.
	Content string `json:"content,omitempty"`

	// Links contains the raw href values of all anchor elements in
	// document order, with empty values dropped.
	// Always empty when Success is false.
	Links []string `json:"links,omitempty"`

	// Success reports whether the fetch and parse succeeded.
	Success bool `json:"success"`

	// ErrorMessage describes why the fetch failed. Empty on success.
	ErrorMessage string `json:"error_message,omitempty"`

	// FetchedAt is the time the fetch attempt started.
	FetchedAt time.Time `json:"fetched_at"`
}

// NewFailedPage creates a PageResult for a failed fetch attempt.
// The returned page has empty content and no links, which callers
// rely on when filtering pages for evaluation.
func NewFailedPage(url, errorMessage string) *PageResult {
	return &PageResult{
		URL:          url,
		Success:      false,
		ErrorMessage: errorMessage,
		FetchedAt:    time.Now(),
	}
}

// CrawlError records a single failed fetch within an organization crawl.
type CrawlError struct {
	// URL is the page that failed.
	URL string `json:"url"`

	// Message is the failure description from the fetcher.
	Message string `json:"message"`
}

// OrganizationCrawlResult is the result of crawling one organization's
// website. It is built incrementally by the crawler and frozen on return.
type OrganizationCrawlResult struct {
	// OrganizationName is the display name of the crawled organization.
	OrganizationName string `json:"organization_name"`

	// BaseURL is the homepage URL the crawl started from.
	BaseURL string `json:"base_url"`

	// Pages holds every fetch attempt in crawl order, including failures.
	Pages []*PageResult `json:"pages"`

	// TotalPages is the number of fetch attempts.
	TotalPages int `json:"total_pages"`

	// SuccessfulPages is the number of pages fetched successfully.
	SuccessfulPages int `json:"successful_pages"`

	// Duration is the wall-clock time the crawl took.
	Duration time.Duration `json:"duration"`

	// Errors lists each failed fetch with its reason.
	Errors []CrawlError `json:"errors,omitempty"`
}

// SuccessfulPageResults returns the pages that were fetched successfully,
// in crawl order.
func (r *OrganizationCrawlResult) SuccessfulPageResults() []*PageResult {
	pages := make([]*PageResult, 0, r.SuccessfulPages)
	for _, p := range r.Pages {
		if p.Success {
			pages = append(pages, p)
		}
	}
	return pages
}
