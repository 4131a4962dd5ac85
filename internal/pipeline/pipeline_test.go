package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opencrawl/opencrawl/internal/model"
)

// fakeStep records its execution and optionally fails.
type fakeStep struct {
	name string
	err  error
	runs int
}

func (s *fakeStep) Do(_ context.Context, _ *Run) error {
	s.runs++
	return s.err
}

func (s *fakeStep) Name() string {
	return s.name
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		first := &fakeStep{name: "first"}
		second := &fakeStep{name: "second"}

		p := New()
		p.AddSteps(first, second)

		run := &Run{Organization: model.Organization{Name: "Org"}}
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if first.runs != 1 || second.runs != 1 {
			t.Errorf("step runs = %d/%d, want 1/1", first.runs, second.runs)
		}
		if diff := cmp.Diff([]string{"first", "second"}, run.PerformedSteps); diff != "" {
			t.Errorf("PerformedSteps mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		failing := &fakeStep{name: "failing", err: errors.New("boom")}
		after := &fakeStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		run := &Run{}
		if err := p.Execute(context.Background(), run); err == nil {
			t.Fatal("expected the step error to propagate")
		}
		if after.runs != 0 {
			t.Error("subsequent step ran after a failure")
		}
		if run.ErrorMessage != "boom" {
			t.Errorf("ErrorMessage = %q, want boom", run.ErrorMessage)
		}
	})

	t.Run("continueOnError keeps executing", func(t *testing.T) {
		t.Parallel()

		failing := &fakeStep{name: "failing", err: errors.New("boom")}
		after := &fakeStep{name: "after"}

		p := New(WithContinueOnError(true))
		p.AddSteps(failing, after)

		run := &Run{}
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v, want nil with continueOnError", err)
		}
		if after.runs != 1 {
			t.Error("subsequent step did not run despite continueOnError")
		}
	})

	t.Run("cancellation marks the run", func(t *testing.T) {
		t.Parallel()

		step := &fakeStep{name: "never"}
		p := New()
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		run := &Run{}
		if err := p.Execute(ctx, run); !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, want context.Canceled", err)
		}
		if !run.Cancelled {
			t.Error("Cancelled not set")
		}
		if step.runs != 0 {
			t.Error("step ran despite cancellation")
		}
	})

	t.Run("step bookkeeping", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&fakeStep{name: "a"}, &fakeStep{name: "b"})

		if p.StepCount() != 2 {
			t.Errorf("StepCount() = %d, want 2", p.StepCount())
		}
		if diff := cmp.Diff([]string{"a", "b"}, p.StepNames()); diff != "" {
			t.Errorf("StepNames() mismatch (-want +got):\n%s", diff)
		}
	})
}
