// Package main provides the entry point for the StingRayCatcher CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for StingRayCatcher.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stingraycatcher",
		Short: "Detect suspected cell-site simulators in survey data",
		Long: `StingRayCatcher classifies batches of cellular base-station observations
and flags sites whose identity, signal strength, or spatial clustering
matches known cell-site simulator (IMSI catcher) behavior.

Observations are imported from CSV, JSON, or SQLite survey exports, or
consumed live from a Kafka feed. Results can be rendered as a terminal
summary, JSON, Markdown, or an interactive HTML map.

A flag is a heuristic signal for further investigation, not proof: real
towers near the receiver, femtocells, and survey glitches all produce
simulator-like signatures.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewDemoCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
