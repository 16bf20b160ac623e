package pipeline

import (
	"context"
	"log/slog"

	"github.com/JamesPriceZV/stingraycatcher/internal/classify"
	"github.com/JamesPriceZV/stingraycatcher/internal/config"
	"github.com/JamesPriceZV/stingraycatcher/internal/ingest"
	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// ImportStep loads observations from an input file into the report.
// The format is inferred from the file extension.
//
// Design decision: Import is a separate step rather than a pipeline
// precondition because demo and feed batches skip it entirely; they arrive
// with Sites already populated and run only the later steps.
type ImportStep struct {
	// path is the input file to import.
	path string

	// logger for structured logging.
	logger *slog.Logger
}

// ImportStepOption configures an ImportStep.
type ImportStepOption func(*ImportStep)

// WithImportLogger sets a custom logger for the import step.
func WithImportLogger(logger *slog.Logger) ImportStepOption {
	return func(s *ImportStep) {
		s.logger = logger
	}
}

// NewImportStep creates an import step for the given input file.
func NewImportStep(path string, opts ...ImportStepOption) *ImportStep {
	s := &ImportStep{
		path:   path,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ImportStep) Name() string {
	return "import"
}

// Do executes the import step.
func (s *ImportStep) Do(ctx context.Context, report *model.ScanReport) error {
	sites, err := ingest.Load(ctx, s.path)
	if err != nil {
		return err
	}

	report.Sites = sites
	s.logger.Info("imported observations",
		"source", s.path,
		"count", len(sites),
	)
	return nil
}

// ClassifyStep runs the classification engine over the report's observations
// and replaces them with the annotated batch.
type ClassifyStep struct {
	// classifier is the configured classification engine.
	classifier *classify.Classifier

	// logger for structured logging.
	logger *slog.Logger
}

// ClassifyStepOption configures a ClassifyStep.
type ClassifyStepOption func(*ClassifyStep)

// WithClassifyLogger sets a custom logger for the classify step.
func WithClassifyLogger(logger *slog.Logger) ClassifyStepOption {
	return func(s *ClassifyStep) {
		s.logger = logger
	}
}

// NewClassifyStep creates a classification step using the given engine.
func NewClassifyStep(classifier *classify.Classifier, opts ...ClassifyStepOption) *ClassifyStep {
	s := &ClassifyStep{
		classifier: classifier,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do executes the classification step.
func (s *ClassifyStep) Do(ctx context.Context, report *model.ScanReport) error {
	classified, err := s.classifier.Classify(ctx, report.Sites)
	if err != nil {
		return err
	}

	report.Sites = classified
	s.logger.Info("classification completed",
		"source", report.Source,
		"total", len(classified),
		"suspected", len(report.SuspectedSites()),
	)
	return nil
}

// SummarizeStep aggregates per-category counts into the report summary.
//
// Design decision: Summarization is its own step rather than part of
// ClassifyStep so report writers always find a Summary even when a later
// caller re-runs classification with different thresholds.
type SummarizeStep struct{}

// NewSummarizeStep creates a summarize step.
func NewSummarizeStep() *SummarizeStep {
	return &SummarizeStep{}
}

// Name returns the step name.
func (s *SummarizeStep) Name() string {
	return "summarize"
}

// Do executes the summarize step.
func (s *SummarizeStep) Do(_ context.Context, report *model.ScanReport) error {
	report.Summary = model.NewSummary(report)
	return nil
}

// DefaultPipeline creates the standard pipeline for scanning one input file:
// import, classify, summarize.
func DefaultPipeline(path string, cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	p := New(append([]Option{WithLogger(logger)}, opts...)...)

	p.AddSteps(
		NewImportStep(path, WithImportLogger(logger)),
		NewClassifyStep(classify.NewFromConfig(cfg, logger), WithClassifyLogger(logger)),
		NewSummarizeStep(),
	)

	return p
}

// ClassifyOnlyPipeline creates a pipeline for batches that arrive with Sites
// already populated, such as demo data and live-feed batches.
func ClassifyOnlyPipeline(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	p := New(append([]Option{WithLogger(logger)}, opts...)...)

	p.AddSteps(
		NewClassifyStep(classify.NewFromConfig(cfg, logger), WithClassifyLogger(logger)),
		NewSummarizeStep(),
	)

	return p
}
