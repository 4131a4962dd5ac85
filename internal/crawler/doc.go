// Package crawler fetches organization websites politely and sequentially.
//
// # Architecture
//
// The package is designed around the Crawler type, which drives the fetch
// sequence for one organization: fetch the homepage, classify its internal
// links, resolve the crawl strategy, then fetch the remaining URLs one at a
// time with a politeness delay between requests.
//
// # Components
//
//   - Fetcher: capability interface with two implementations (plain HTTP and
//     a chromedp-rendered backend) plus a fallback chain combining them
//   - Parser: HTML parser extracting title, cleaned text, and raw hrefs
//   - Classifier: resolves and filters links to same-site content pages
//   - Selector: decides which URLs to crawl, optionally asking the LLM
//   - Crawler: the sequential orchestrator with status checkpoints
//
// # Politeness
//
// The crawler never issues concurrent requests for the same organization.
// Each fetch is preceded by a configurable intra-domain delay, and the
// advisory robots.txt crawl-delay can raise that delay further. This is a
// deliberate rate-limit policy, not a throughput optimization.
//
// # Failure model
//
// A failed fetch is data, not an error: every attempt yields a PageResult.
// Only a failed homepage fetch terminates the crawl; any unexpected internal
// error is caught at the top level and converted into a terminal failed
// result rather than propagating.
package crawler
