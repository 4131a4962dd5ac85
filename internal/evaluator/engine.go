package evaluator

import (
	"context"
	"log/slog"

	"github.com/opencrawl/opencrawl/internal/catalog"
	"github.com/opencrawl/opencrawl/internal/model"
)

// DefaultConfidenceThreshold marks a criterion fulfilled when no
// per-criterion threshold is configured.
const DefaultConfidenceThreshold = 0.5

// LowSignalBar is the confidence below which gated evidence sources are
// still consulted. Once the semantic analysis has produced evidence at or
// above this bar, the heuristic sources stop running for that criterion;
// heuristic evidence itself never suppresses later, possibly stronger
// heuristic matches.
const LowSignalBar = 0.3

// prioritySource is one entry of the engine's ordered source list.
type prioritySource struct {
	source Source

	// gated sources are consulted only while the best confidence found
	// so far is below LowSignalBar.
	gated bool
}

// Engine evaluates a criteria catalog against an organization's crawl
// result. Evidence sources are dispatched in priority order per page.
type Engine struct {
	// sources is the ordered evidence source list: semantic analysis
	// first (when configured), heuristic patterns second.
	sources []prioritySource

	// defaultThreshold applies to criteria without an own threshold.
	defaultThreshold float64

	// caseSensitive configures the heuristic matcher.
	caseSensitive bool

	// logger records evaluation progress.
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDefaultThreshold sets the fallback confidence threshold.
func WithDefaultThreshold(threshold float64) EngineOption {
	return func(e *Engine) {
		e.defaultThreshold = threshold
	}
}

// WithCaseSensitiveMatching makes heuristic pattern matching
// case-sensitive.
func WithCaseSensitiveMatching() EngineOption {
	return func(e *Engine) {
		e.caseSensitive = true
	}
}

// WithEngineLogger sets a custom logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an evaluation engine. The semantic analyzer may be nil,
// in which case only heuristic pattern evidence is used.
func NewEngine(semantic SemanticAnalyzer, opts ...EngineOption) *Engine {
	e := &Engine{
		defaultThreshold: DefaultConfidenceThreshold,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	if semantic != nil {
		e.sources = append(e.sources, prioritySource{
			source: NewLLMSource(semantic, e.logger),
		})
	}
	e.sources = append(e.sources, prioritySource{
		source: NewPatternSource(NewPatternMatcher(e.caseSensitive)),
		gated:  true,
	})

	return e
}

// EvaluateOrganization judges every catalog criterion against the crawled
// pages and aggregates the verdicts. An empty criteria list yields an
// all-zero evaluation.
func (e *Engine) EvaluateOrganization(ctx context.Context, crawl *model.OrganizationCrawlResult, criteria []catalog.CriterionDefinition) *model.OrganizationEvaluation {
	pages := crawl.SuccessfulPageResults()

	e.logger.Info("starting evaluation",
		"organization", crawl.OrganizationName,
		"criteria", len(criteria),
		"pages", len(pages),
	)

	results := make([]model.CriterionEvaluation, 0, len(criteria))
	fulfilled := 0
	confidenceSum := 0.0

	for _, criterion := range criteria {
		result := e.evaluateCriterion(ctx, pages, crawl.BaseURL, criterion)
		results = append(results, result)

		if result.Fulfilled {
			fulfilled++
		}
		confidenceSum += result.Confidence
	}

	evaluation := &model.OrganizationEvaluation{
		OrganizationName:  crawl.OrganizationName,
		BaseURL:           crawl.BaseURL,
		Results:           results,
		TotalCriteria:     len(results),
		FulfilledCriteria: fulfilled,
		Summary:           buildSummary(results, criteria),
	}
	if len(results) > 0 {
		evaluation.FulfillmentPercentage = float64(fulfilled) / float64(len(results)) * 100
		// The mean deliberately includes zero-evidence criteria, so a
		// sparse catalog hit reads as low overall confidence.
		evaluation.AverageConfidence = confidenceSum / float64(len(results))
	}

	e.logger.Info("evaluation finished",
		"organization", crawl.OrganizationName,
		"fulfilled", fulfilled,
		"total", len(results),
	)

	return evaluation
}

// evaluateCriterion scans all pages in crawl order and keeps the
// highest-confidence match across all sources.
func (e *Engine) evaluateCriterion(ctx context.Context, pages []*model.PageResult, baseURL string, criterion catalog.CriterionDefinition) model.CriterionEvaluation {
	threshold := criterion.ConfidenceThreshold
	if threshold == 0 {
		threshold = e.defaultThreshold
	}

	var best *Match
	signal := 0.0
	for _, page := range pages {
		for _, entry := range e.sources {
			if entry.gated && signal >= LowSignalBar {
				continue
			}
			match := entry.source.Evaluate(ctx, page, criterion)
			if match == nil {
				continue
			}
			if !entry.gated && match.Confidence > signal {
				signal = match.Confidence
			}
			if best == nil || match.Confidence > best.Confidence {
				best = match
			}
		}
	}

	if best != nil && best.Confidence >= threshold {
		return model.CriterionEvaluation{
			CriterionID:   criterion.ID,
			CriterionName: criterion.Name,
			Fulfilled:     true,
			Confidence:    best.Confidence,
			Justification: best.Justification,
			SourceURL:     best.SourceURL,
			EvidenceText:  best.Evidence,
			PatternType:   best.PatternType,
		}
	}

	confidence := 0.0
	if best != nil {
		confidence = best.Confidence
	}

	return model.CriterionEvaluation{
		CriterionID:   criterion.ID,
		CriterionName: criterion.Name,
		Fulfilled:     false,
		Confidence:    confidence,
		Justification: "No sufficient evidence found on the crawled pages",
		SourceURL:     baseURL,
	}
}
