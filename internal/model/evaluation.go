package model

// Pattern type tags recorded on criterion evaluations. They identify which
// evidence source produced the winning match.
const (
	// PatternTypeLLM marks evidence produced by the semantic LLM analysis.
	PatternTypeLLM = "llm"

	// PatternTypeText marks evidence from substring matches in page text.
	PatternTypeText = "text"

	// PatternTypeURL marks evidence from matches in the page URL or links.
	PatternTypeURL = "url"

	// PatternTypeLogo marks evidence from logo indicator matches.
	PatternTypeLogo = "logo"
)

// Criterion types distinguish day-to-day practice from declared strategy.
const (
	// CriterionTypeOperational marks criteria about operational practice.
	CriterionTypeOperational = "operational"

	// CriterionTypeStrategic marks criteria about strategic commitments.
	CriterionTypeStrategic = "strategic"
)

// CriterionEvaluation is the verdict for a single openness criterion.
// Fulfilled is true only when Confidence reached the criterion's threshold.
type CriterionEvaluation struct {
	// CriterionID is the catalog identifier of the criterion.
	CriterionID string `json:"criterion_id"`

	// CriterionName is the human-readable criterion name.
	CriterionName string `json:"criterion_name"`

	// Fulfilled reports whether the criterion was judged fulfilled.
	Fulfilled bool `json:"fulfilled"`

	// Confidence is the best evidence confidence found, in [0, 1].
	// Zero when no evidence was found at all.
	Confidence float64 `json:"confidence"`

	// Justification explains the verdict in one sentence.
	Justification string `json:"justification"`

	// SourceURL is the page the winning evidence came from, or the
	// organization's base URL when the criterion is unfulfilled.
	SourceURL string `json:"source_url"`

	// EvidenceText is the specific fragment that matched. Empty when
	// unfulfilled.
	EvidenceText string `json:"evidence_text,omitempty"`

	// PatternType tags the evidence source: "llm", "text", "url", "logo",
	// or empty when unfulfilled.
	PatternType string `json:"pattern_type,omitempty"`
}

// DimensionStats aggregates criterion results within one catalog dimension.
type DimensionStats struct {
	// Total is the number of criteria in the dimension.
	Total int `json:"total"`

	// Fulfilled is the number of fulfilled criteria in the dimension.
	Fulfilled int `json:"fulfilled"`

	// Percentage is Fulfilled/Total*100, zero when Total is zero.
	Percentage float64 `json:"percentage"`
}

// ConfidenceBands counts evaluations per confidence bracket.
type ConfidenceBands struct {
	// High counts confidences above 0.8.
	High int `json:"high"`

	// Medium counts confidences in [0.5, 0.8].
	Medium int `json:"medium"`

	// Low counts confidences below 0.5.
	Low int `json:"low"`
}

// TypeStats counts criteria per criterion type.
type TypeStats struct {
	// Operational counts criteria of type "operational".
	Operational int `json:"operational"`

	// Strategic counts criteria of type "strategic".
	Strategic int `json:"strategic"`
}

// EvaluationSummary groups criterion results along several axes for
// reporting. It is derived from the evaluations and the catalog, never
// stored independently.
type EvaluationSummary struct {
	// ByDimension maps dimension name to its fulfillment statistics.
	ByDimension map[string]DimensionStats `json:"by_dimension"`

	// ByConfidence buckets all evaluations by confidence band.
	ByConfidence ConfidenceBands `json:"by_confidence"`

	// ByPatternType counts fulfilled evaluations per evidence source.
	ByPatternType map[string]int `json:"by_pattern_type"`

	// FulfilledByType counts fulfilled criteria per criterion type.
	FulfilledByType TypeStats `json:"fulfilled_by_type"`

	// TotalByType counts all criteria per criterion type.
	TotalByType TypeStats `json:"total_by_type"`
}

// OrganizationEvaluation holds all criterion verdicts for one organization
// plus the derived aggregates. Created once per evaluation run.
type OrganizationEvaluation struct {
	// OrganizationName is the display name of the evaluated organization.
	OrganizationName string `json:"organization_name"`

	// BaseURL is the organization's homepage URL.
	BaseURL string `json:"base_url"`

	// Results holds one evaluation per catalog criterion, in catalog order.
	Results []CriterionEvaluation `json:"results"`

	// TotalCriteria is the number of criteria evaluated.
	TotalCriteria int `json:"total_criteria"`

	// FulfilledCriteria is the number of fulfilled criteria.
	FulfilledCriteria int `json:"fulfilled_criteria"`

	// FulfillmentPercentage is FulfilledCriteria/TotalCriteria*100,
	// zero when no criteria were evaluated.
	FulfillmentPercentage float64 `json:"fulfillment_percentage"`

	// AverageConfidence is the mean confidence over all evaluations,
	// including unfulfilled ones. Zero when no criteria were evaluated.
	AverageConfidence float64 `json:"average_confidence"`

	// Summary groups the results by dimension, confidence band, pattern
	// type, and criterion type.
	Summary EvaluationSummary `json:"summary"`
}
