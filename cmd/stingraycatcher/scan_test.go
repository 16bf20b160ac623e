package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JamesPriceZV/stingraycatcher/internal/config"
	"github.com/JamesPriceZV/stingraycatcher/internal/report"
)

// parseScanFlags parses flag arguments on a fresh scan command.
func parseScanFlags(t *testing.T, args ...string) *config.Config {
	t.Helper()

	cmd := NewScanCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := buildConfig(cmd, cmd.Flags().Args())
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	return cfg
}

// TestBuildConfig tests flag-to-config mapping.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg := parseScanFlags(t, "survey.csv")

		if cfg.StrongRSRPThreshold != config.DefaultStrongRSRPThreshold {
			t.Errorf("got RSRP threshold %v", cfg.StrongRSRPThreshold)
		}
		if cfg.ClusterMinSize != config.DefaultClusterMinSize {
			t.Errorf("got cluster size %d", cfg.ClusterMinSize)
		}
		if len(cfg.Inputs) != 1 || cfg.Inputs[0] != "survey.csv" {
			t.Errorf("got inputs %v", cfg.Inputs)
		}
		if cfg.JSONReport || cfg.MarkdownReport || cfg.HTMLMap {
			t.Error("no report format should be selected by default")
		}
	})

	t.Run("threshold overrides", func(t *testing.T) {
		t.Parallel()

		cfg := parseScanFlags(t,
			"--rsrp-threshold", "-55",
			"--rssi-threshold", "-40",
			"--cluster-size", "6",
			"--cluster-flag-limit", "3",
			"--grid-scale", "100",
			"--batch", "8",
			"survey.csv")

		if cfg.StrongRSRPThreshold != -55 || cfg.StrongRSSIThreshold != -40 {
			t.Errorf("thresholds not applied: %v / %v",
				cfg.StrongRSRPThreshold, cfg.StrongRSSIThreshold)
		}
		if cfg.ClusterMinSize != 6 || cfg.ClusterFlagLimit != 3 {
			t.Errorf("cluster settings not applied: %d / %d",
				cfg.ClusterMinSize, cfg.ClusterFlagLimit)
		}
		if cfg.GridScale != 100 || cfg.BatchSize != 8 {
			t.Errorf("grid/batch not applied: %d / %d", cfg.GridScale, cfg.BatchSize)
		}
	})

	t.Run("report format flags", func(t *testing.T) {
		t.Parallel()

		cfg := parseScanFlags(t, "--json", "-o", "out.json", "survey.csv")

		if !cfg.JSONReport {
			t.Error("json flag not applied")
		}
		if cfg.OutputFile != "out.json" {
			t.Errorf("got output %q", cfg.OutputFile)
		}
	})

	t.Run("custom registry replaces built-in table", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "registry.yml")
		content := "operators:\n  - mcc: 262\n    mnc: 1\n    name: Telekom\ncolors:\n  Telekom: teal\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("write registry: %v", err)
		}

		cfg := parseScanFlags(t, "--registry", path, "survey.csv")

		if name, ok := cfg.Registry.Lookup(262, 1); !ok || name != "Telekom" {
			t.Errorf("custom registry not loaded: %q %v", name, ok)
		}
		if _, ok := cfg.Registry.Lookup(310, 410); ok {
			t.Error("built-in table should be replaced, not merged")
		}
		if got := cfg.Colors.ColorFor("Telekom"); got != "teal" {
			t.Errorf("got color %q", got)
		}
	})

	t.Run("missing registry file errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.ParseFlags([]string{"--registry", filepath.Join(t.TempDir(), "nope.yml")}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		if _, err := buildConfig(cmd, []string{"survey.csv"}); !errors.Is(err, config.ErrRegistryNotFound) {
			t.Errorf("got error %v, want ErrRegistryNotFound", err)
		}
	})
}

// TestSelectWriter tests report writer dispatch.
func TestSelectWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"default is terminal", func(c *config.Config) {}, "*report.SimpleWriter"},
		{"json", func(c *config.Config) { c.JSONReport = true }, "*report.FullJSONWriter"},
		{"markdown", func(c *config.Config) { c.MarkdownReport = true }, "*report.MarkdownWriter"},
		{"html map", func(c *config.Config) { c.HTMLMap = true }, "*report.HTMLMapWriter"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			w := selectWriter(cfg, os.Stdout)
			var got string
			switch w.(type) {
			case *report.FullJSONWriter:
				got = "*report.FullJSONWriter"
			case *report.MarkdownWriter:
				got = "*report.MarkdownWriter"
			case *report.HTMLMapWriter:
				got = "*report.HTMLMapWriter"
			case *report.SimpleWriter:
				got = "*report.SimpleWriter"
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// TestOpenOutput tests report destination handling.
func TestOpenOutput(t *testing.T) {
	t.Parallel()

	t.Run("empty path is stdout", func(t *testing.T) {
		t.Parallel()

		f, cleanup, err := openOutput("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer cleanup()

		if f != os.Stdout {
			t.Error("expected stdout")
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "reports", "june", "report.json")

		f, cleanup, err := openOutput(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.WriteString("{}"); err != nil {
			t.Fatalf("write: %v", err)
		}
		cleanup()

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("output file not created: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("got permissions %v, want 0600", info.Mode().Perm())
		}
	})
}

// TestRunScanEndToEnd tests a full sequential scan writing a JSON report.
func TestRunScanEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	surveyPath := filepath.Join(dir, "survey.csv")
	survey := "lat,lon,operator,mcc,mnc,tac,cid,rsrp\n" +
		"40.7500,-73.9900,AT&T,310,410,12345,100001,-95\n" +
		"40.7584,-73.9857,,,,0,1,-48\n"
	if err := os.WriteFile(surveyPath, []byte(survey), 0600); err != nil {
		t.Fatalf("write survey: %v", err)
	}

	outPath := filepath.Join(dir, "report.json")
	cfg := config.NewConfig()
	cfg.Inputs = []string{surveyPath}
	cfg.JSONReport = true
	cfg.OutputFile = outPath

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := runScan(context.Background(), cfg, logger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var decoded report.VersionedReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Summary == nil || decoded.Summary.TotalSites != 2 {
		t.Fatalf("got summary %+v", decoded.Summary)
	}
	if decoded.Summary.SuspectedCount != 1 {
		t.Errorf("got %d suspects, want 1", decoded.Summary.SuspectedCount)
	}
}
