package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/opencrawl/opencrawl/internal/model"
)

// DefaultInterOrganizationDelay separates two organization assessments.
// Between different sites this is mostly a pacing courtesy towards any
// shared infrastructure (DNS, LLM API).
const DefaultInterOrganizationDelay = 2 * time.Second

// Runner processes multiple organizations strictly one after another.
//
// Design decision: We use a separate Runner rather than adding multi-run
// functionality to Pipeline because:
//  1. It keeps the Pipeline focused on single-organization execution
//  2. Sequential pacing with delays is a policy of its own
//  3. It provides cleaner separation of concerns
//
// There is deliberately no concurrency here: assessing organizations in
// parallel would multiply the load on the LLM API and undermine the
// per-site politeness the crawler guarantees.
type Runner struct {
	// pipelineFactory creates a new pipeline for each organization.
	// We use a factory to ensure each run gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// delay is the pause between two organization assessments.
	delay time.Duration

	// logger is used for runner-level logging.
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets a custom logger for the runner.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithInterOrganizationDelay sets the pause between organizations.
func WithInterOrganizationDelay(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.delay = d
	}
}

// NewRunner creates a Runner.
//
// The pipelineFactory function is called for each organization to create a
// fresh pipeline instance, so no state leaks between runs.
func NewRunner(pipelineFactory func() *Pipeline, opts ...RunnerOption) *Runner {
	r := &Runner{
		pipelineFactory: pipelineFactory,
		delay:           DefaultInterOrganizationDelay,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Process assesses all organizations in order and returns one run per
// organization, in input order. A failed run does not stop the remaining
// organizations; its error is recorded in the run state. Cancellation
// returns the runs completed so far together with the context error.
func (r *Runner) Process(ctx context.Context, organizations []model.Organization) ([]*Run, error) {
	return r.ProcessWithCallback(ctx, organizations, nil)
}

// ProcessWithCallback assesses all organizations and calls the callback
// after each completed run. This is useful for streaming results to
// reports while a long batch is still in progress.
func (r *Runner) ProcessWithCallback(ctx context.Context, organizations []model.Organization, callback func(run *Run, index int)) ([]*Run, error) {
	r.logger.Info("starting assessment run",
		"organizations", len(organizations),
		"delay", r.delay,
	)

	startTime := time.Now()
	runs := make([]*Run, 0, len(organizations))

	for i, organization := range organizations {
		if i > 0 {
			if err := r.pause(ctx); err != nil {
				return runs, err
			}
		}

		select {
		case <-ctx.Done():
			r.logger.Warn("assessment run cancelled",
				"completed", len(runs),
				"total", len(organizations),
			)
			return runs, ctx.Err()
		default:
		}

		r.logger.Info("assessing organization",
			"organization", organization.Name,
			"index", i+1,
			"total", len(organizations),
		)

		run := &Run{Organization: organization}
		if err := r.pipelineFactory().Execute(ctx, run); err != nil {
			r.logger.Warn("assessment failed",
				"organization", organization.Name,
				"error", err,
			)
		}
		runs = append(runs, run)

		if callback != nil {
			callback(run, i)
		}
	}

	r.logger.Info("assessment run complete",
		"organizations", len(organizations),
		"elapsed", time.Since(startTime),
	)

	return runs, nil
}

// pause waits the inter-organization delay, honoring cancellation.
func (r *Runner) pause(ctx context.Context) error {
	if r.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.delay):
		return nil
	}
}
