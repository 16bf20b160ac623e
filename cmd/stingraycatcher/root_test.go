package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewRootCmd tests root command composition.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	if cmd.Use != "stingraycatcher" {
		t.Errorf("got use %q", cmd.Use)
	}
	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("root command should silence usage and errors")
	}
	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("missing persistent verbose flag")
	}

	subcommands := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, want := range []string{"scan", "demo", "watch", "version"} {
		if !subcommands[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

// TestRootCmdHelp tests that help output describes the tool.
func TestRootCmdHelp(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "cell-site simulator") {
		t.Error("help output should describe simulator detection")
	}
}
