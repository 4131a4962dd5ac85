package llm

// Candidate is one subpage offered to the LLM for selection.
type Candidate struct {
	// URL is the canonicalized subpage URL.
	URL string `json:"url"`

	// Title is a human-readable page title, derived from the URL path
	// when the real title is unknown.
	Title string `json:"title"`
}

// SubpageRequest asks the LLM to pick the most promising subpages for
// evaluating the given criteria.
type SubpageRequest struct {
	// OrganizationName is the organization being crawled.
	OrganizationName string

	// BaseURL is the organization's homepage.
	BaseURL string

	// Candidates are the subpages to choose from, at most MaxCandidates.
	Candidates []Candidate

	// CriteriaNames are the names of the criteria that will be evaluated.
	CriteriaNames []string

	// MaxPages is the number of URLs to select.
	MaxPages int
}

// SubpageSelection is the LLM's ranked answer to a SubpageRequest.
type SubpageSelection struct {
	// SelectedURLs are the chosen URLs ranked best-first.
	SelectedURLs []string `json:"selected_urls"`

	// Reasoning explains the selection.
	Reasoning string `json:"reasoning"`

	// RelevanceScores maps each selected URL to a relevance score.
	RelevanceScores map[string]float64 `json:"relevance_scores"`
}

// AnalysisRequest asks the LLM whether one page fulfills one criterion.
type AnalysisRequest struct {
	// Content is the cleaned page text. It is truncated to
	// MaxContentLength characters before being sent.
	Content string

	// CriterionName is the criterion's display name.
	CriterionName string

	// CriterionDescription explains what evidence fulfills the criterion.
	CriterionDescription string

	// Patterns are keyword hints from the criterion definition.
	Patterns []string

	// SourceURL is the page URL, included for context.
	SourceURL string
}

// Analysis is the LLM's structured verdict for an AnalysisRequest.
type Analysis struct {
	// Fulfilled reports whether the LLM judged the criterion fulfilled
	// on this page.
	Fulfilled bool `json:"fulfilled"`

	// Confidence is the LLM's confidence in [0, 1]. Values outside the
	// range are clamped during decoding.
	Confidence float64 `json:"confidence"`

	// Justification explains the verdict.
	Justification string `json:"justification"`

	// Evidence lists the text fragments the verdict is based on.
	Evidence []string `json:"evidence"`

	// FoundPatterns lists which of the hint patterns were found.
	FoundPatterns []string `json:"found_patterns"`
}
