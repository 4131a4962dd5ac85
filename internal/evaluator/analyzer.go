package evaluator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/opencrawl/opencrawl/internal/catalog"
	"github.com/opencrawl/opencrawl/internal/llm"
	"github.com/opencrawl/opencrawl/internal/model"
)

// SemanticAnalyzer is the LLM capability the engine consults per page.
// The concrete client is injected so tests can substitute a stub.
type SemanticAnalyzer interface {
	// AnalyzeCriterion judges one criterion against page content.
	AnalyzeCriterion(ctx context.Context, req llm.AnalysisRequest) (*llm.Analysis, error)
}

// Source produces candidate evidence for one (page, criterion) pair.
// Returning nil means no signal.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Evaluate returns the best match this source finds on the page,
	// or nil.
	Evaluate(ctx context.Context, page *model.PageResult, criterion catalog.CriterionDefinition) *Match
}

// LLMSource adapts the semantic analyzer to the Source interface.
// Any transport or parse failure is absent signal, never an error.
type LLMSource struct {
	analyzer SemanticAnalyzer
	logger   *slog.Logger
}

// NewLLMSource creates the semantic evidence source.
func NewLLMSource(analyzer SemanticAnalyzer, logger *slog.Logger) *LLMSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMSource{analyzer: analyzer, logger: logger}
}

// Name returns the source name.
func (s *LLMSource) Name() string {
	return model.PatternTypeLLM
}

// Evaluate submits the page to the LLM and converts a positive verdict
// into a match. Negative verdicts and failures yield nil.
func (s *LLMSource) Evaluate(ctx context.Context, page *model.PageResult, criterion catalog.CriterionDefinition) *Match {
	analysis, err := s.analyzer.AnalyzeCriterion(ctx, llm.AnalysisRequest{
		Content:              page.Content,
		CriterionName:        criterion.Name,
		CriterionDescription: criterion.Description,
		Patterns:             criterion.AllPatterns(),
		SourceURL:            page.URL,
	})
	if err != nil {
		s.logger.Debug("llm criterion analysis failed, treating as no signal",
			"criterion", criterion.ID,
			"url", page.URL,
			"error", err,
		)
		return nil
	}
	if !analysis.Fulfilled {
		return nil
	}

	return &Match{
		Confidence:    analysis.Confidence,
		PatternType:   model.PatternTypeLLM,
		Evidence:      strings.Join(analysis.Evidence, "; "),
		Justification: analysis.Justification,
		SourceURL:     page.URL,
	}
}

// PatternSource adapts the heuristic matcher to the Source interface.
// It runs every pattern type configured for the criterion and returns the
// strongest match.
type PatternSource struct {
	matcher *PatternMatcher
}

// NewPatternSource creates the heuristic evidence source.
func NewPatternSource(matcher *PatternMatcher) *PatternSource {
	return &PatternSource{matcher: matcher}
}

// Name returns the source name.
func (s *PatternSource) Name() string {
	return "patterns"
}

// Evaluate runs all configured pattern types against the page.
func (s *PatternSource) Evaluate(_ context.Context, page *model.PageResult, criterion catalog.CriterionDefinition) *Match {
	var best *Match

	for _, patternType := range catalog.ValidPatternTypes() {
		patterns := criterion.Patterns[patternType]
		if len(patterns) == 0 {
			continue
		}
		if match := s.matcher.Match(patternType, patterns, page); match != nil {
			if best == nil || match.Confidence > best.Confidence {
				best = match
			}
		}
	}

	return best
}
