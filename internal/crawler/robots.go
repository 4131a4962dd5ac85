package crawler

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsInfo summarizes the advisory robots.txt lookup for a site.
// The lookup is purely informational in this design: its absence or failure
// never blocks crawling, but a published crawl-delay is honored when it is
// longer than the configured politeness delay.
type RobotsInfo struct {
	// Exists reports whether a robots.txt was found and parsed.
	Exists bool

	// CrawlDelay is the crawl-delay advertised for our user agent, zero
	// when none is set.
	CrawlDelay time.Duration

	// group answers per-path allow questions for our user agent.
	group *robotstxt.Group
}

// Allowed reports whether the given URL path may be fetched according to
// robots.txt. Without robots data everything is allowed.
func (r *RobotsInfo) Allowed(path string) bool {
	if r == nil || r.group == nil {
		return true
	}
	return r.group.Test(path)
}

// CheckRobots fetches and parses /robots.txt for the site of baseURL.
// All failures degrade to an empty RobotsInfo.
func CheckRobots(ctx context.Context, client *http.Client, baseURL, userAgent string) *RobotsInfo {
	info := &RobotsInfo{}

	base, err := url.Parse(baseURL)
	if err != nil {
		return info
	}

	robotsURL := base.Scheme + "://" + base.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return info
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return info
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil || resp.StatusCode != http.StatusOK {
		return info
	}

	group := data.FindGroup(userAgent)
	info.Exists = true
	info.group = group
	if group != nil {
		info.CrawlDelay = group.CrawlDelay
	}

	return info
}
