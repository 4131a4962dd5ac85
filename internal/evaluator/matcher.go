package evaluator

import (
	"fmt"
	"strings"

	"github.com/opencrawl/opencrawl/internal/catalog"
	"github.com/opencrawl/opencrawl/internal/model"
)

// Match is one piece of evidence tying a criterion to a page.
type Match struct {
	// Confidence is the evidence strength in [0, 1].
	Confidence float64

	// PatternType tags the source: "llm", "text", "url", or "logo".
	PatternType string

	// Evidence is the matched fragment, URL, or indicator.
	Evidence string

	// Justification explains the match in one sentence.
	Justification string

	// SourceURL is the page the evidence was found on.
	SourceURL string
}

// Confidence scoring for heuristic matches.
const (
	// textBaseConfidence is the confidence for a single text match;
	// each additional occurrence adds textMatchBonus up to textMaxConfidence.
	textBaseConfidence = 0.3
	textMatchBonus     = 0.2
	textMaxConfidence  = 0.9

	// urlOwnConfidence scores a pattern found in the page's own URL,
	// urlLinkConfidence one found in an outbound link.
	urlOwnConfidence  = 0.8
	urlLinkConfidence = 0.7

	// logoConfidence scores a logo indicator hit.
	logoConfidence = 0.6
)

// evidenceWindow is the number of characters of surrounding text quoted on
// each side of a text match.
const evidenceWindow = 50

// PatternMatcher scores heuristic pattern evidence against a single page.
// It is stateless: identical inputs always yield the identical result.
type PatternMatcher struct {
	// caseSensitive disables the default case folding during matching.
	caseSensitive bool
}

// NewPatternMatcher creates a pattern matcher.
func NewPatternMatcher(caseSensitive bool) *PatternMatcher {
	return &PatternMatcher{caseSensitive: caseSensitive}
}

// Match dispatches to the matcher for the given pattern type and returns
// the first match found, or nil.
func (m *PatternMatcher) Match(patternType string, patterns []string, page *model.PageResult) *Match {
	switch patternType {
	case catalog.PatternText:
		return m.MatchText(patterns, page)
	case catalog.PatternURL:
		return m.MatchURL(patterns, page)
	case catalog.PatternLogo:
		return m.MatchLogo(patterns, page)
	default:
		return nil
	}
}

// MatchText searches the cleaned page text for each pattern. Confidence
// grows with the number of occurrences; the first matching pattern wins.
func (m *PatternMatcher) MatchText(patterns []string, page *model.PageResult) *Match {
	content := m.fold(page.Content)

	for _, pattern := range patterns {
		needle := m.fold(pattern)
		if needle == "" {
			continue
		}

		count := strings.Count(content, needle)
		if count == 0 {
			continue
		}

		confidence := textBaseConfidence + textMatchBonus*float64(count)
		if confidence > textMaxConfidence {
			confidence = textMaxConfidence
		}

		return &Match{
			Confidence:    confidence,
			PatternType:   model.PatternTypeText,
			Evidence:      textWindow(content, strings.Index(content, needle), len(needle)),
			Justification: fmt.Sprintf("Pattern %q found %d time(s) in the page text", pattern, count),
			SourceURL:     page.URL,
		}
	}

	return nil
}

// MatchURL tests each pattern against the page's own URL first, then
// against the outbound links in order. The first hit wins; a hit in the own
// URL scores higher than one in a link.
func (m *PatternMatcher) MatchURL(patterns []string, page *model.PageResult) *Match {
	ownURL := m.fold(page.URL)
	for _, pattern := range patterns {
		needle := m.fold(pattern)
		if needle == "" {
			continue
		}
		if strings.Contains(ownURL, needle) {
			return &Match{
				Confidence:    urlOwnConfidence,
				PatternType:   model.PatternTypeURL,
				Evidence:      page.URL,
				Justification: fmt.Sprintf("Pattern %q found in the page URL", pattern),
				SourceURL:     page.URL,
			}
		}
	}

	for _, link := range page.Links {
		folded := m.fold(link)
		for _, pattern := range patterns {
			needle := m.fold(pattern)
			if needle == "" {
				continue
			}
			if strings.Contains(folded, needle) {
				return &Match{
					Confidence:    urlLinkConfidence,
					PatternType:   model.PatternTypeURL,
					Evidence:      link,
					Justification: fmt.Sprintf("Pattern %q found in an outbound link", pattern),
					SourceURL:     page.URL,
				}
			}
		}
	}

	return nil
}

// MatchLogo searches the page content for indicator strings derived from
// each pattern, covering the usual ways a logo shows up in markup: alt
// texts, image file names, and asset paths.
func (m *PatternMatcher) MatchLogo(patterns []string, page *model.PageResult) *Match {
	content := m.fold(page.Content)

	for _, pattern := range patterns {
		needle := m.fold(pattern)
		if needle == "" {
			continue
		}
		for _, indicator := range logoIndicators(needle) {
			if strings.Contains(content, indicator) {
				return &Match{
					Confidence:    logoConfidence,
					PatternType:   model.PatternTypeLogo,
					Evidence:      indicator,
					Justification: fmt.Sprintf("Logo indicator for %q found in the page content", pattern),
					SourceURL:     page.URL,
				}
			}
		}
	}

	return nil
}

// logoIndicators builds the indicator strings checked for one logo pattern.
func logoIndicators(pattern string) []string {
	return []string{
		`alt="` + pattern + `"`,
		`alt='` + pattern + `'`,
		pattern + ".png",
		pattern + ".jpg",
		pattern + ".svg",
		"logo/" + pattern,
		"images/" + pattern,
	}
}

// fold lowercases s unless matching is case-sensitive.
func (m *PatternMatcher) fold(s string) string {
	if m.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// textWindow quotes the match plus up to evidenceWindow characters of
// context on each side.
func textWindow(content string, index, length int) string {
	start := index - evidenceWindow
	if start < 0 {
		start = 0
	}
	end := index + length + evidenceWindow
	if end > len(content) {
		end = len(content)
	}
	return strings.TrimSpace(content[start:end])
}
