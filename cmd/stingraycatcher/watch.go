package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/JamesPriceZV/stingraycatcher/internal/config"
	"github.com/JamesPriceZV/stingraycatcher/internal/feed"
	"github.com/JamesPriceZV/stingraycatcher/internal/model"
	"github.com/JamesPriceZV/stingraycatcher/internal/pipeline"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file...]",
		Short: "Continuously classify a live feed or re-scan files on a schedule",
		Long: `Watch runs StingRayCatcher continuously in one of two modes.

Feed mode consumes observation JSON from a Kafka topic, classifies it in
batches, and emits a report per batch. A batch is classified when it
reaches the configured size or when the flush interval elapses.

Schedule mode re-scans the given observation files on a cron schedule,
for survey files that are appended to by an external collector.

Examples:
  # Classify a live feed
  stingraycatcher watch --brokers localhost:9092 --topic cells --group catchers

  # Re-scan a growing survey file every five minutes
  stingraycatcher watch --schedule "*/5 * * * *" survey.csv

  # Keep the latest map of the feed on disk
  stingraycatcher watch --brokers localhost:9092 --topic cells --html -o live-map.html`,
		Args: cobra.ArbitraryArgs,
		RunE: runWatchCmd,
	}

	// Feed mode flags
	cmd.Flags().StringSlice("brokers", nil,
		"Kafka broker addresses for live-feed mode")
	cmd.Flags().String("topic", "",
		"Kafka topic carrying observation JSON")
	cmd.Flags().String("group", config.AppName,
		"Kafka consumer group ID")
	cmd.Flags().Int("feed-batch", config.DefaultFeedBatchSize,
		"Observations per classification pass in feed mode")
	cmd.Flags().Duration("flush-interval", config.DefaultFeedFlushInterval,
		"Maximum wait for a full feed batch")

	// Schedule mode flags
	cmd.Flags().StringP("schedule", "s", "",
		"Cron expression for periodic file re-scans (e.g. \"*/5 * * * *\")")

	// Threshold flags shared with scan
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
	cmd.Flags().StringP("registry", "r", "",
		"YAML file with operator registry and carrier colors")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --html)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --html)")
	cmd.Flags().Bool("html", false,
		"Output interactive HTML map (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write each report to specified file path (overwritten per batch)")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildWatchConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	switch {
	case len(cfg.FeedBrokers) > 0:
		if cfg.FeedTopic == "" {
			return errors.New("feed mode requires --topic")
		}
		return runFeedWatch(ctx, cfg, logger)
	case cfg.Schedule != "":
		if len(cfg.Inputs) == 0 {
			return errors.New("schedule mode requires at least one observation file")
		}
		return runScheduledWatch(ctx, cfg, logger)
	default:
		return errors.New("watch requires either --brokers (feed mode) or --schedule (file mode)")
	}
}

// buildWatchConfig creates a Config from watch command flags.
func buildWatchConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	// Watch shares the scan thresholds and report flags, so reuse its
	// builder and layer the watch-only flags on top.
	cfg, err := buildWatchBase(cmd, args)
	if err != nil {
		return nil, err
	}

	cfg.FeedBrokers, err = cmd.Flags().GetStringSlice("brokers")
	if err != nil {
		return nil, err
	}

	cfg.FeedTopic, err = cmd.Flags().GetString("topic")
	if err != nil {
		return nil, err
	}

	cfg.FeedGroup, err = cmd.Flags().GetString("group")
	if err != nil {
		return nil, err
	}

	cfg.FeedBatchSize, err = cmd.Flags().GetInt("feed-batch")
	if err != nil {
		return nil, err
	}

	cfg.FeedFlushInterval, err = cmd.Flags().GetDuration("flush-interval")
	if err != nil {
		return nil, err
	}

	cfg.Schedule, err = cmd.Flags().GetString("schedule")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildWatchBase reads the flags watch shares with scan.
func buildWatchBase(cmd *cobra.Command, args []string) (*config.Config, error) {
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

	cfg.RegistryPath, err = cmd.Flags().GetString("registry")
	if err != nil {
		return nil, err
	}

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
	cfg.Inputs = args

	return cfg, nil
}

// runFeedWatch consumes the Kafka feed until interrupted.
func runFeedWatch(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Watching topic %q on %v (batch: %d, flush: %s)...\n",
		cfg.FeedTopic, cfg.FeedBrokers, cfg.FeedBatchSize, cfg.FeedFlushInterval)

	consumer := feed.NewConsumer(cfg, logger)
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Error("failed to close feed consumer", "error", err)
		}
	}()

	p := pipeline.ClassifyOnlyPipeline(cfg, logger)
	source := "kafka:" + cfg.FeedTopic
	batchNum := 0

	return consumer.Run(ctx, func(ctx context.Context, sites []model.CellSite) error {
		batchNum++

		scanReport := model.NewScanReport(source)
		scanReport.Sites = sites

		if err := p.Execute(ctx, scanReport); err != nil {
			return fmt.Errorf("feed batch %d: %w", batchNum, err)
		}

		if scanReport.Summary.HasSuspects() {
			fmt.Fprintf(os.Stderr, "[batch %d] ALERT: %d of %d observations flagged\n",
				batchNum, scanReport.Summary.SuspectedCount, scanReport.Summary.TotalSites)
		} else {
			fmt.Fprintf(os.Stderr, "[batch %d] %d observations, no suspects\n",
				batchNum, scanReport.Summary.TotalSites)
		}

		return outputReport(cfg, scanReport)
	})
}

// runScheduledWatch re-scans the input files on the configured cron schedule
// until interrupted.
func runScheduledWatch(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Re-scanning %d file(s) on schedule %q. Press Ctrl+C to stop.\n",
		len(cfg.Inputs), cfg.Schedule)

	scheduler := cron.New()

	rescan := func() {
		start := time.Now()
		if err := runSequentialScan(ctx, cfg, logger); err != nil {
			logger.Error("scheduled scan failed", "error", err)
			return
		}
		logger.Info("scheduled scan completed",
			"files", len(cfg.Inputs),
			"elapsed", time.Since(start),
		)
	}

	if _, err := scheduler.AddFunc(cfg.Schedule, rescan); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}

	// Scan once immediately so the first report doesn't wait a full period.
	rescan()

	scheduler.Start()
	<-ctx.Done()

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	return nil
}
