package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/opencrawl/opencrawl/internal/llm"
)

// Strategy names the policy deciding which URLs beyond the homepage are
// fetched.
type Strategy string

// Available crawl strategies.
const (
	// StrategyHomepageOnly fetches only the base URL.
	StrategyHomepageOnly Strategy = "homepage_only"

	// StrategyAllPages fetches the base URL and every internal link.
	StrategyAllPages Strategy = "all_pages"

	// StrategyLimited fetches the base URL plus the first N-1 internal
	// links in discovery order.
	StrategyLimited Strategy = "limited"

	// StrategyIntelligent asks the LLM to pick the N-1 most promising
	// internal links, falling back to StrategyLimited on any failure.
	StrategyIntelligent Strategy = "intelligent"
)

// ParseStrategy validates a strategy name from configuration.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategyHomepageOnly, StrategyAllPages, StrategyLimited, StrategyIntelligent:
		return Strategy(name), nil
	default:
		return "", fmt.Errorf("unknown crawl strategy %q (use homepage_only, all_pages, limited, or intelligent)", name)
	}
}

// SubpageSelector is the LLM capability the intelligent strategy consults.
// The concrete client is injected so tests can substitute a stub.
type SubpageSelector interface {
	// SelectSubpages picks the most promising candidate URLs.
	SelectSubpages(ctx context.Context, req llm.SubpageRequest) (*llm.SubpageSelection, error)
}

// Selector resolves the set of URLs to crawl beyond the homepage.
type Selector struct {
	// strategy is the configured crawl strategy.
	strategy Strategy

	// maxPages is the total page budget including the homepage.
	maxPages int

	// subpages is the LLM collaborator; may be nil, in which case the
	// intelligent strategy degrades to limited.
	subpages SubpageSelector

	// logger records strategy decisions and fallbacks.
	logger *slog.Logger
}

// NewSelector creates a strategy selector. The subpage selector may be nil
// when LLM support is disabled.
func NewSelector(strategy Strategy, maxPages int, subpages SubpageSelector, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		strategy: strategy,
		maxPages: maxPages,
		subpages: subpages,
		logger:   logger,
	}
}

// Strategy returns the configured strategy.
func (s *Selector) Strategy() Strategy {
	return s.strategy
}

// Select returns the URLs to crawl after the homepage, in crawl order.
// internalLinks must be in discovery order; the limited strategy and the
// intelligent fallback both take its prefix, which is what makes the
// fallback deterministic.
func (s *Selector) Select(ctx context.Context, organizationName, baseURL string, internalLinks, criteriaNames []string) []string {
	switch s.strategy {
	case StrategyHomepageOnly:
		return nil

	case StrategyAllPages:
		return internalLinks

	case StrategyIntelligent:
		if s.subpages == nil || len(criteriaNames) == 0 || len(internalLinks) == 0 {
			return s.limited(internalLinks)
		}
		return s.intelligent(ctx, organizationName, baseURL, internalLinks, criteriaNames)

	default: // StrategyLimited
		return s.limited(internalLinks)
	}
}

// limited takes the first maxPages-1 links in discovery order.
func (s *Selector) limited(internalLinks []string) []string {
	budget := s.maxPages - 1
	if budget < 0 {
		budget = 0
	}
	if len(internalLinks) > budget {
		return internalLinks[:budget]
	}
	return internalLinks
}

// intelligent asks the LLM for the best subpages and falls back to the
// limited prefix on any failure. The fallback must select exactly the URLs
// the limited strategy would, so downstream behavior stays reproducible
// when the LLM is flaky.
func (s *Selector) intelligent(ctx context.Context, organizationName, baseURL string, internalLinks, criteriaNames []string) []string {
	candidates := make([]llm.Candidate, 0, llm.MaxCandidates)
	for _, link := range internalLinks {
		if len(candidates) == llm.MaxCandidates {
			break
		}
		candidates = append(candidates, llm.Candidate{
			URL:   link,
			Title: titleFromURL(link),
		})
	}

	selection, err := s.subpages.SelectSubpages(ctx, llm.SubpageRequest{
		OrganizationName: organizationName,
		BaseURL:          baseURL,
		Candidates:       candidates,
		CriteriaNames:    criteriaNames,
		MaxPages:         s.maxPages - 1,
	})
	if err != nil {
		s.logger.Warn("llm subpage selection failed, falling back to limited strategy",
			"organization", organizationName,
			"error", err,
		)
		return s.limited(internalLinks)
	}

	s.logger.Info("llm selected subpages",
		"organization", organizationName,
		"selected", len(selection.SelectedURLs),
		"reasoning", selection.Reasoning,
	)

	// A short selection is used as-is; we deliberately do not pad it
	// with fallback candidates.
	return selection.SelectedURLs
}

var urlTitleExtension = regexp.MustCompile(`(?i)\.(html?|php|asp|jsp)$`)

var titleCaser = cases.Title(language.Und)

// titleFromURL derives a human-readable title from a URL path, used when a
// candidate page has not been fetched yet.
func titleFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "Unknown page"
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "Homepage"
	}

	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	name = urlTitleExtension.ReplaceAllString(name, "")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown page"
	}

	return titleCaser.String(name)
}
