package pipeline

import (
	"context"
	"errors"

	"github.com/opencrawl/opencrawl/internal/catalog"
	"github.com/opencrawl/opencrawl/internal/crawler"
	"github.com/opencrawl/opencrawl/internal/evaluator"
)

// ErrNoCrawlResult is returned by the evaluation step when the crawl step
// did not run before it.
var ErrNoCrawlResult = errors.New("pipeline: evaluation requires a crawl result")

// CrawlStep fetches the organization's website.
// It never fails critically: fetch problems are recorded inside the crawl
// result itself.
type CrawlStep struct {
	crawler       *crawler.Crawler
	criteriaNames []string
}

// NewCrawlStep creates the crawl stage. criteriaNames describe the
// assessment goals to the intelligent crawl strategy.
func NewCrawlStep(c *crawler.Crawler, criteriaNames []string) *CrawlStep {
	return &CrawlStep{crawler: c, criteriaNames: criteriaNames}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do crawls the organization and stores the result in the run.
func (s *CrawlStep) Do(ctx context.Context, run *Run) error {
	run.Crawl = s.crawler.CrawlOrganization(ctx, run.Organization.Name, run.Organization.URL, s.criteriaNames)
	return nil
}

// EvaluateStep judges the crawl result against the criteria catalog.
type EvaluateStep struct {
	engine   *evaluator.Engine
	criteria []catalog.CriterionDefinition
}

// NewEvaluateStep creates the evaluation stage.
func NewEvaluateStep(engine *evaluator.Engine, criteria []catalog.CriterionDefinition) *EvaluateStep {
	return &EvaluateStep{engine: engine, criteria: criteria}
}

// Name returns the step name.
func (s *EvaluateStep) Name() string {
	return "evaluate"
}

// Do evaluates the crawl result and stores the evaluation in the run.
func (s *EvaluateStep) Do(ctx context.Context, run *Run) error {
	if run.Crawl == nil {
		return ErrNoCrawlResult
	}
	run.Evaluation = s.engine.EvaluateOrganization(ctx, run.Crawl, s.criteria)
	return nil
}
