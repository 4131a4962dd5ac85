package crawler

import (
	"net/url"
	"strings"
)

// Classifier resolves, canonicalizes, and filters raw hrefs down to
// same-site content pages worth crawling.
//
// Design decision: The classifier works on raw href strings rather than
// parsed URLs because the parser hands links through untouched. Keeping
// resolution in one place makes the exclusion rules easy to audit.
type Classifier struct{}

// NewClassifier creates a link classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// excludedExtensions are file extensions that never carry evaluatable text.
var excludedExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx",
	".zip", ".rar", ".tar", ".gz",
	".jpg", ".jpeg", ".png", ".gif", ".svg",
	".mp3", ".mp4", ".avi", ".mov",
	".xml",
}

// excludedMarkers are path fragments identifying non-content URLs.
var excludedMarkers = []string{
	"/login", "/admin", "/wp-admin", "/user",
	"/feed", "/rss",
}

// excludedSchemes are href prefixes that are not crawlable pages.
var excludedSchemes = []string{"mailto:", "tel:", "javascript:"}

// InternalLinks resolves each href against the base URL and returns the
// canonicalized same-site links in first-seen order, deduplicated, with the
// base URL itself removed.
//
// Canonicalization drops the query string and fragment, so two hrefs that
// differ only in tracking parameters collapse to one crawl candidate.
// First-seen order matters: the limited strategy and the intelligent
// strategy's fallback both take a prefix of this list.
func (c *Classifier) InternalLinks(baseURL string, hrefs []string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	links := make([]string, 0)

	for _, href := range hrefs {
		if isExcludedHref(href) {
			continue
		}

		ref, err := url.Parse(href)
		if err != nil {
			continue
		}

		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			continue
		}
		if !strings.EqualFold(resolved.Host, base.Host) {
			continue
		}

		clean := resolved.Scheme + "://" + resolved.Host + resolved.Path
		if isExcludedURL(clean) {
			continue
		}
		if clean == baseURL || seen[clean] {
			continue
		}

		seen[clean] = true
		links = append(links, clean)
	}

	return links
}

// isExcludedHref rejects hrefs before resolution: pseudo-schemes and
// anything carrying a fragment marker.
func isExcludedHref(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range excludedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return strings.Contains(lower, "#")
}

// isExcludedURL rejects canonicalized URLs on the denylist: binary and
// media file extensions plus well-known non-content path markers.
func isExcludedURL(cleanURL string) bool {
	lower := strings.ToLower(cleanURL)

	for _, ext := range excludedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	for _, marker := range excludedMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}
