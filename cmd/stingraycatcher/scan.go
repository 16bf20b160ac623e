package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/JamesPriceZV/stingraycatcher/internal/config"
	"github.com/JamesPriceZV/stingraycatcher/internal/log"
	"github.com/JamesPriceZV/stingraycatcher/internal/model"
	"github.com/JamesPriceZV/stingraycatcher/internal/pipeline"
	"github.com/JamesPriceZV/stingraycatcher/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <file> [file...]",
		Short: "Classify observation files for cell-site simulator signatures",
		Long: `Scan imports base-station observations and classifies each one against
the simulator heuristics:

- Unknown identity (no operator and no MCC/MNC)
- Operator name contradicting the MCC/MNC registry
- Implausibly strong RSRP or RSSI
- Degenerate (reserved-range) TAC, LAC, or cell ID
- Dense clusters of strong transmitters in one grid bucket

Input format is inferred from the file extension: .csv, .json, or a
SQLite survey export (.db, .sqlite, .sqlite3).

Examples:
  # Scan a single survey file
  stingraycatcher scan survey.csv

  # Scan several files concurrently
  stingraycatcher scan east.csv west.csv --batch 4

  # Output JSON for tool integration
  stingraycatcher scan survey.csv --json -o report.json

  # Render an interactive map
  stingraycatcher scan survey.csv --html -o map.html

  # Use a custom operator registry (non-US deployments)
  stingraycatcher scan survey.csv --registry operators.yml`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Threshold flags
	cmd.Flags().Float64("rsrp-threshold", config.DefaultStrongRSRPThreshold,
		"RSRP (dBm) above which a signal is implausibly strong")
	cmd.Flags().Float64("rssi-threshold", config.DefaultStrongRSSIThreshold,
		"RSSI (dBm) above which a signal is implausibly strong")
	cmd.Flags().Int("cluster-size", config.DefaultClusterMinSize,
		"Bucket population at which the density heuristic engages")
	cmd.Flags().Int("cluster-flag-limit", config.DefaultClusterFlagLimit,
		"Maximum members of a dense bucket to flag")
	cmd.Flags().Int("grid-scale", config.DefaultGridScale,
		"Coordinate multiplier for grid bucketing")

	// Registry flag
	cmd.Flags().StringP("registry", "r", "",
		"YAML file with operator registry and carrier colors")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of files scanned concurrently")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --html)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --html)")
	cmd.Flags().Bool("html", false,
		"Output interactive HTML map (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runScan(ctx, cfg, logger)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a coordinate-coarsening structured logger based on
// the verbosity setting.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	return log.NewLogger(os.Stderr, getVerboseFlag(cmd))
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.StrongRSRPThreshold, err = cmd.Flags().GetFloat64("rsrp-threshold")
	if err != nil {
		return nil, err
	}

	cfg.StrongRSSIThreshold, err = cmd.Flags().GetFloat64("rssi-threshold")
	if err != nil {
		return nil, err
	}

	cfg.ClusterMinSize, err = cmd.Flags().GetInt("cluster-size")
	if err != nil {
		return nil, err
	}

	cfg.ClusterFlagLimit, err = cmd.Flags().GetInt("cluster-flag-limit")
	if err != nil {
		return nil, err
	}

	cfg.GridScale, err = cmd.Flags().GetInt("grid-scale")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.RegistryPath, err = cmd.Flags().GetString("registry")
	if err != nil {
		return nil, err
	}

	// A custom registry replaces the built-in table and color scheme.
	if cfg.RegistryPath != "" {
		registry, colors, err := config.LoadRegistryFile(cfg.RegistryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load registry %s: %w", cfg.RegistryPath, err)
		}
		cfg.Registry = registry
		if len(colors) > 0 {
			cfg.Colors = colors
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.HTMLMap, err = cmd.Flags().GetBool("html")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the input files
	cfg.Inputs = args

	return cfg, nil
}

// runScan executes the scan over the configured input files.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"inputs", cfg.Inputs,
		"batchSize", cfg.BatchSize,
	)

	// Use batch processor for parallel scanning if multiple files
	if len(cfg.Inputs) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, logger)
	}

	return runSequentialScan(ctx, cfg, logger)
}

// runSequentialScan scans files one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	for _, path := range cfg.Inputs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := pipeline.DefaultPipeline(path, cfg, logger)
		scanReport := model.NewScanReport(path)

		fmt.Fprintf(os.Stderr, "Scanning %s...\n", path)
		startTime := time.Now()

		if err := p.Execute(ctx, scanReport); err != nil {
			logger.Error("scan failed", "file", path, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", path, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Fprintf(os.Stderr, "Scan completed in %s\n\n", elapsed.Round(time.Millisecond))

		if err := outputReport(cfg, scanReport); err != nil {
			logger.Error("report failed", "file", path, "error", err)
		}
	}

	return nil
}

// runBatchScan scans multiple files concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Starting batch scan of %d files (concurrency: %d)...\n\n",
		len(cfg.Inputs), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func(path string) *pipeline.Pipeline {
			return pipeline.DefaultPipeline(path, cfg, logger)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Inputs, func(scanReport *model.ScanReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(os.Stderr, "[%d/%d] Scan completed: %s\n", index+1, len(cfg.Inputs), scanReport.Source)

		if err := outputReport(cfg, scanReport); err != nil {
			logger.Error("report failed", "file", scanReport.Source, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Fprintf(os.Stderr, "\nBatch scan completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, scanReport *model.ScanReport) error {
	if scanReport.Summary == nil {
		scanReport.Summary = model.NewSummary(scanReport)
	}

	output, cleanup, err := openOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer cleanup()

	writer := selectWriter(cfg, output)
	_, err = writer.Write(scanReport)
	return err
}

// selectWriter picks the report writer for the configured format.
func selectWriter(cfg *config.Config, output *os.File) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	case cfg.HTMLMap:
		return report.NewHTMLMapWriter(output, report.WithCarrierColors(cfg.Colors))
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// openOutput opens the report destination, defaulting to stdout.
// The returned cleanup closes the file when one was opened.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports reveal where the analyst surveyed; keep them owner-readable.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-chosen path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil //nolint:errcheck // best effort close
}
