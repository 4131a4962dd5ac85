package llm

import (
	"fmt"
	"strings"
)

const selectionSystemPrompt = "You are an expert in organizational analysis and openness assessment. " +
	"Select the web pages most likely to contain evidence for openness criteria. " +
	"Always answer in JSON."

const analysisSystemPrompt = "You are an expert in assessing organizational openness. " +
	"Analyze web page content and judge whether specific criteria are fulfilled. " +
	"Always answer in JSON."

// buildSelectionPrompt renders the subpage-selection request.
func buildSelectionPrompt(req SubpageRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Select the %d subpages best suited for evaluating openness criteria.\n\n", req.MaxPages)
	fmt.Fprintf(&b, "ORGANIZATION: %s\n", req.OrganizationName)
	fmt.Fprintf(&b, "HOMEPAGE: %s\n\n", req.BaseURL)

	b.WriteString("CRITERIA TO EVALUATE:\n")
	for _, name := range req.CriteriaNames {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	b.WriteString("\nAVAILABLE SUBPAGES:\n")
	for _, candidate := range req.Candidates {
		title := candidate.Title
		if title == "" {
			title = "Unknown page"
		}
		fmt.Fprintf(&b, "- %s: %s\n", title, candidate.URL)
	}

	fmt.Fprintf(&b, `
TASK:
Pick the %d subpages most likely to contain evidence for the criteria.
Consider relevance (pages like "About us", "Transparency", "Publications",
"Open Data", "Research"), information density over pure navigation pages,
governance and strategy pages, and coverage of different parts of the
organization.

ANSWER FORMAT (JSON):
{
    "selected_urls": ["url1", "url2", ...],
    "reasoning": "why these pages were chosen",
    "relevance_scores": {"url1": 0.9, "url2": 0.8}
}

Select exactly %d URLs, ranked by relevance, best first. Answer with the
JSON object only.
`, req.MaxPages, req.MaxPages)

	return b.String()
}

// buildAnalysisPrompt renders the criterion-analysis request. The content
// is already truncated by the caller.
func buildAnalysisPrompt(req AnalysisRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the following web page content and judge whether the criterion %q is fulfilled.\n", req.CriterionName)
	if req.SourceURL != "" {
		fmt.Fprintf(&b, "SOURCE: %s\n", req.SourceURL)
	}

	fmt.Fprintf(&b, `
CRITERION:
Name: %s
Description: %s
Keywords: %s

PAGE CONTENT:
%s

TASK:
Judge whether the criterion is fulfilled based on the page content.
Consider direct keyword mentions, semantic matches with the criterion
description, and the context of any findings.

ANSWER FORMAT (JSON):
{
    "fulfilled": true,
    "confidence": 0.0,
    "justification": "reason for the verdict",
    "evidence": ["supporting text fragments"],
    "found_patterns": ["keywords that were found"]
}

Answer with the JSON object only.
`, req.CriterionName, req.CriterionDescription, strings.Join(req.Patterns, ", "), req.Content)

	return b.String()
}
