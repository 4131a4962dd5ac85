package model

import (
	"testing"
)

// TestNewFailedPage verifies the failed-page invariant: no content, no links.
func TestNewFailedPage(t *testing.T) {
	t.Parallel()

	page := NewFailedPage("https://example.org/missing", "HTTP 404")

	if page.Success {
		t.Error("expected Success to be false")
	}
	if page.Content != "" {
		t.Errorf("expected empty content, got %q", page.Content)
	}
	if len(page.Links) != 0 {
		t.Errorf("expected no links, got %d", len(page.Links))
	}
	if page.ErrorMessage != "HTTP 404" {
		t.Errorf("expected error message 'HTTP 404', got %q", page.ErrorMessage)
	}
	if page.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}

// TestSuccessfulPageResults verifies filtering preserves crawl order.
func TestSuccessfulPageResults(t *testing.T) {
	t.Parallel()

	result := &OrganizationCrawlResult{
		Pages: []*PageResult{
			{URL: "https://example.org/", Success: true},
			NewFailedPage("https://example.org/broken", "timeout"),
			{URL: "https://example.org/about", Success: true},
		},
		TotalPages:      3,
		SuccessfulPages: 2,
	}

	pages := result.SuccessfulPageResults()
	if len(pages) != 2 {
		t.Fatalf("expected 2 successful pages, got %d", len(pages))
	}
	if pages[0].URL != "https://example.org/" || pages[1].URL != "https://example.org/about" {
		t.Errorf("unexpected page order: %q, %q", pages[0].URL, pages[1].URL)
	}
}
