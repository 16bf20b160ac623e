package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// mockStep is a test double for Step.
type mockStep struct {
	name     string
	err      error
	executed bool
	onDo     func(report *model.ScanReport)

	mu    *sync.Mutex
	order *[]string
}

func (m *mockStep) Do(_ context.Context, report *model.ScanReport) error {
	m.executed = true
	if m.order != nil {
		m.mu.Lock()
		*m.order = append(*m.order, m.name)
		m.mu.Unlock()
	}
	if m.onDo != nil {
		m.onDo(report)
	}
	return m.err
}

func (m *mockStep) Name() string {
	return m.name
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestPipelineNew tests pipeline construction.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p.StepCount() != 0 {
			t.Errorf("got %d steps, want 0", p.StepCount())
		}
		if p.continueOnError {
			t.Error("expected stop-on-error by default")
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("options applied", func(t *testing.T) {
		t.Parallel()

		logger := discardLogger()
		p := New(WithLogger(logger), WithContinueOnError(true))

		if p.logger != logger {
			t.Error("custom logger not applied")
		}
		if !p.continueOnError {
			t.Error("continueOnError not applied")
		}
	})
}

// TestPipelineExecute tests step execution semantics.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var (
			mu    sync.Mutex
			order []string
		)
		p := New(WithLogger(discardLogger()))
		p.AddSteps(
			&mockStep{name: "first", mu: &mu, order: &order},
			&mockStep{name: "second", mu: &mu, order: &order},
			&mockStep{name: "third", mu: &mu, order: &order},
		)

		report := model.NewScanReport("test")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"first", "second", "third"}
		if !reflect.DeepEqual(order, want) {
			t.Errorf("got order %v, want %v", order, want)
		}
		if !reflect.DeepEqual(report.PerformedSteps, want) {
			t.Errorf("got performed steps %v, want %v", report.PerformedSteps, want)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("import failed")
		second := &mockStep{name: "second"}
		p := New(WithLogger(discardLogger()))
		p.AddSteps(
			&mockStep{name: "first", err: stepErr},
			second,
		)

		report := model.NewScanReport("test")
		err := p.Execute(context.Background(), report)

		if !errors.Is(err, stepErr) {
			t.Errorf("got error %v, want step error", err)
		}
		if second.executed {
			t.Error("second step should not execute after failure")
		}
		if !errors.Is(report.Error, stepErr) {
			t.Error("step error not recorded in report")
		}
		if report.ErrorMessage != "import failed" {
			t.Errorf("got error message %q", report.ErrorMessage)
		}
	})

	t.Run("continues after error when configured", func(t *testing.T) {
		t.Parallel()

		second := &mockStep{name: "second"}
		p := New(WithLogger(discardLogger()), WithContinueOnError(true))
		p.AddSteps(
			&mockStep{name: "first", err: errors.New("boom")},
			second,
		)

		report := model.NewScanReport("test")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !second.executed {
			t.Error("second step should execute with continueOnError")
		}
		if report.Error == nil {
			t.Error("step error should still be recorded in report")
		}
	})

	t.Run("respects cancellation", func(t *testing.T) {
		t.Parallel()

		step := &mockStep{name: "never"}
		p := New(WithLogger(discardLogger()))
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.Execute(ctx, model.NewScanReport("test"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got error %v, want context.Canceled", err)
		}
		if step.executed {
			t.Error("step should not execute after cancellation")
		}
	})

	t.Run("empty pipeline succeeds", func(t *testing.T) {
		t.Parallel()

		p := New(WithLogger(discardLogger()))
		if err := p.Execute(context.Background(), model.NewScanReport("test")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// TestPipelineStepNames tests step introspection.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New(WithLogger(discardLogger()))
	p.AddSteps(&mockStep{name: "a"}, &mockStep{name: "b"})

	if p.StepCount() != 2 {
		t.Errorf("got %d steps, want 2", p.StepCount())
	}
	if got := p.StepNames(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got names %v", got)
	}
}
