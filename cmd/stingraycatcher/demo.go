package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JamesPriceZV/stingraycatcher/internal/config"
	"github.com/JamesPriceZV/stingraycatcher/internal/ingest"
	"github.com/JamesPriceZV/stingraycatcher/internal/model"
	"github.com/JamesPriceZV/stingraycatcher/internal/pipeline"
)

// NewDemoCmd creates the demo command.
func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Classify a generated demo batch",
		Long: `Demo generates a deterministic batch of plausible carrier towers plus a
tight cluster carrying classic simulator signatures, classifies it, and
renders the result. Useful for trying the tool without survey data and
for demonstrating what a positive detection looks like.

Examples:
  # Terminal summary of the demo batch
  stingraycatcher demo

  # Render the demo as an interactive map
  stingraycatcher demo --html -o demo-map.html`,
		Args: cobra.NoArgs,
		RunE: runDemoCmd,
	}

	cmd.Flags().Float64("center-lat", config.DefaultDemoCenterLat,
		"Latitude of the demo batch center")
	cmd.Flags().Float64("center-lon", config.DefaultDemoCenterLon,
		"Longitude of the demo batch center")
	cmd.Flags().IntP("count", "n", config.DefaultDemoCount,
		"Number of legitimate towers to generate")

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

// runDemoCmd executes the demo command.
func runDemoCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildDemoConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	sites := ingest.DemoSites(ingest.DemoOptions{
		CenterLat:  cfg.DemoCenterLat,
		CenterLon:  cfg.DemoCenterLon,
		TowerCount: cfg.DemoCount,
	})

	scanReport := model.NewScanReport("demo")
	scanReport.Sites = sites

	fmt.Fprintf(os.Stderr, "Classifying demo batch of %d observations...\n", len(sites))
	startTime := time.Now()

	p := pipeline.ClassifyOnlyPipeline(cfg, logger)
	if err := p.Execute(ctx, scanReport); err != nil {
		return fmt.Errorf("demo classification failed: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(os.Stderr, "Classification completed in %s\n\n", elapsed.Round(time.Millisecond))

	return outputReport(cfg, scanReport)
}

// buildDemoConfig creates a Config from demo command flags.
func buildDemoConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.DemoCenterLat, err = cmd.Flags().GetFloat64("center-lat")
	if err != nil {
		return nil, err
	}

	cfg.DemoCenterLon, err = cmd.Flags().GetFloat64("center-lon")
	if err != nil {
		return nil, err
	}

	cfg.DemoCount, err = cmd.Flags().GetInt("count")
	if err != nil {
		return nil, err
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

	return cfg, nil
}
