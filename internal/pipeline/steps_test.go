package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opencrawl/opencrawl/internal/catalog"
	"github.com/opencrawl/opencrawl/internal/crawler"
	"github.com/opencrawl/opencrawl/internal/evaluator"
	"github.com/opencrawl/opencrawl/internal/model"
)

func TestCrawlAndEvaluateSteps(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Org</title></head><body>Unser Jahresbericht ist online.</body></html>`)
	}))
	defer server.Close()

	fetcher := crawler.NewHTTPFetcher(server.Client())
	selector := crawler.NewSelector(crawler.StrategyHomepageOnly, 1, nil, nil)
	c := crawler.New(fetcher, selector, crawler.WithIntraDomainDelay(0))

	criteria := []catalog.CriterionDefinition{{
		ID:                  "annual_report",
		Dimension:           "transparency",
		Factor:              "reporting",
		Name:                "Annual report available",
		Type:                model.CriterionTypeOperational,
		Patterns:            map[string][]string{catalog.PatternText: {"jahresbericht"}},
		ConfidenceThreshold: 0.3,
	}}

	p := New()
	p.AddSteps(
		NewCrawlStep(c, []string{"Annual report available"}),
		NewEvaluateStep(evaluator.NewEngine(nil), criteria),
	)

	run := &Run{Organization: model.Organization{Name: "Org", URL: server.URL}}
	if err := p.Execute(context.Background(), run); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if run.Crawl == nil || run.Crawl.SuccessfulPages != 1 {
		t.Fatalf("unexpected crawl result: %+v", run.Crawl)
	}
	if run.Evaluation == nil {
		t.Fatal("evaluation missing")
	}
	if run.Evaluation.FulfilledCriteria != 1 {
		t.Errorf("FulfilledCriteria = %d, want 1", run.Evaluation.FulfilledCriteria)
	}
}

func TestEvaluateStepRequiresCrawl(t *testing.T) {
	t.Parallel()

	step := NewEvaluateStep(evaluator.NewEngine(nil), nil)
	err := step.Do(context.Background(), &Run{})
	if err != ErrNoCrawlResult {
		t.Errorf("Do() error = %v, want ErrNoCrawlResult", err)
	}
}
