package config

import (
	"errors"
	"strings"
	"testing"
)

// TestNewConfig tests default configuration values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.StrongRSRPThreshold != DefaultStrongRSRPThreshold {
		t.Errorf("got RSRP threshold %v, want %v", cfg.StrongRSRPThreshold, DefaultStrongRSRPThreshold)
	}
	if cfg.StrongRSSIThreshold != DefaultStrongRSSIThreshold {
		t.Errorf("got RSSI threshold %v, want %v", cfg.StrongRSSIThreshold, DefaultStrongRSSIThreshold)
	}
	if cfg.ClusterMinSize != DefaultClusterMinSize {
		t.Errorf("got cluster min size %d, want %d", cfg.ClusterMinSize, DefaultClusterMinSize)
	}
	if cfg.ClusterFlagLimit != DefaultClusterFlagLimit {
		t.Errorf("got cluster flag limit %d, want %d", cfg.ClusterFlagLimit, DefaultClusterFlagLimit)
	}
	if cfg.GridScale != DefaultGridScale {
		t.Errorf("got grid scale %d, want %d", cfg.GridScale, DefaultGridScale)
	}
	if cfg.Registry == nil || cfg.Registry.Len() == 0 {
		t.Error("expected built-in operator registry")
	}
	if len(cfg.Colors) == 0 {
		t.Error("expected built-in carrier colors")
	}
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Inputs = []string{"survey.csv"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid config", func(c *Config) {}, nil},
		{"no inputs", func(c *Config) { c.Inputs = nil }, ErrNoInput},
		{"zero grid scale", func(c *Config) { c.GridScale = 0 }, ErrInvalidGridScale},
		{"negative grid scale", func(c *Config) { c.GridScale = -1 }, ErrInvalidGridScale},
		{"cluster size below two", func(c *Config) { c.ClusterMinSize = 1 }, ErrInvalidClusterSize},
		{"zero flag limit", func(c *Config) { c.ClusterFlagLimit = 0 }, ErrInvalidClusterFlagLimit},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
		{"json and markdown", func(c *Config) { c.JSONReport = true; c.MarkdownReport = true }, ErrConflictingReportFormats},
		{"markdown and html", func(c *Config) { c.MarkdownReport = true; c.HTMLMap = true }, ErrConflictingReportFormats},
		{"single format is fine", func(c *Config) { c.HTMLMap = true }, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestXDGDirs tests XDG path construction.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if dir := XDGDataDir(); !strings.HasSuffix(dir, AppName) {
		t.Errorf("data dir %q does not end with app name", dir)
	}
	if dir := XDGConfigDir(); !strings.HasSuffix(dir, AppName) {
		t.Errorf("config dir %q does not end with app name", dir)
	}
}
