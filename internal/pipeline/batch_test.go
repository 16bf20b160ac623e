package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// countingFactory returns a factory whose pipelines record one observation
// per scanned path, failing for paths in the failing set.
func countingFactory(failing map[string]bool) func(path string) *Pipeline {
	return func(path string) *Pipeline {
		p := New(WithLogger(discardLogger()))
		step := &mockStep{name: "scan"}
		if failing[path] {
			step.err = errors.New("scan failed: " + path)
		} else {
			step.onDo = func(report *model.ScanReport) {
				report.Sites = append(report.Sites, model.CellSite{Lat: 1, Lon: 1})
			}
		}
		p.AddStep(step)
		return p
	}
}

// TestProcessBatch tests concurrent multi-file scanning.
func TestProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("results keep input order", func(t *testing.T) {
		t.Parallel()

		paths := []string{"a.csv", "b.csv", "c.csv", "d.csv", "e.csv"}
		bp := NewBatchProcessor(countingFactory(nil),
			WithBatchLogger(discardLogger()), WithConcurrency(2))

		reports, err := bp.ProcessBatch(context.Background(), paths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reports) != len(paths) {
			t.Fatalf("got %d reports, want %d", len(reports), len(paths))
		}
		for i, report := range reports {
			if report == nil {
				t.Fatalf("report %d is nil", i)
			}
			if report.Source != paths[i] {
				t.Errorf("report %d has source %q, want %q", i, report.Source, paths[i])
			}
			if len(report.Sites) != 1 {
				t.Errorf("report %d has %d sites, want 1", i, len(report.Sites))
			}
		}
	})

	t.Run("failed files are reported, not fatal", func(t *testing.T) {
		t.Parallel()

		paths := []string{"ok.csv", "bad.csv", "also-ok.csv"}
		bp := NewBatchProcessor(countingFactory(map[string]bool{"bad.csv": true}),
			WithBatchLogger(discardLogger()))

		reports, err := bp.ProcessBatch(context.Background(), paths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reports[0].Error != nil || reports[2].Error != nil {
			t.Error("healthy files should not carry errors")
		}
		if reports[1].Error == nil {
			t.Error("failed file should carry its error in the report")
		}
	})

	t.Run("cancelled context aborts the batch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(countingFactory(nil), WithBatchLogger(discardLogger()))

		_, err := bp.ProcessBatch(ctx, []string{"a.csv", "b.csv"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got error %v, want context.Canceled", err)
		}
	})
}

// TestProcessBatchWithCallback tests the streaming variant.
func TestProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	paths := []string{"a.csv", "b.csv", "c.csv"}
	bp := NewBatchProcessor(countingFactory(nil), WithBatchLogger(discardLogger()))

	var (
		mu   sync.Mutex
		seen = make(map[int]string)
	)
	err := bp.ProcessBatchWithCallback(context.Background(), paths,
		func(report *model.ScanReport, index int) {
			mu.Lock()
			seen[index] = report.Source
			mu.Unlock()
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != len(paths) {
		t.Fatalf("callback ran %d times, want %d", len(seen), len(paths))
	}
	for i, path := range paths {
		if seen[i] != path {
			t.Errorf("index %d saw %q, want %q", i, seen[i], path)
		}
	}
}
