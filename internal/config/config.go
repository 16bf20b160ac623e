package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The classification thresholds are the calibrated values from field use of
// the original detector; they are configurable but the defaults are the
// behavior under test and should not be changed lightly.
const (
	// DefaultStrongRSRPThreshold is the RSRP level in dBm above which a
	// signal is considered implausibly strong. A legitimate macro cell
	// received above -65 dBm implies the antenna is within tens of meters
	// of the receiver; a simulator placed very close produces exactly this
	// signature.
	DefaultStrongRSRPThreshold = -65.0

	// DefaultStrongRSSIThreshold is the RSSI level in dBm above which a
	// signal is considered implausibly strong.
	DefaultStrongRSSIThreshold = -50.0

	// DefaultDegenerateCodeMax is the highest TAC/LAC/CID value treated as
	// degenerate. Production networks almost never assign the smallest
	// reserved code values; default/unconfigured simulator firmware does.
	DefaultDegenerateCodeMax = 1

	// DefaultClusterMinSize is the number of co-located observations that
	// makes a grid bucket suspiciously dense. Four distinct reported cells
	// inside a 50-100m bucket is atypical of real macro/micro deployment.
	DefaultClusterMinSize = 4

	// DefaultClusterFlagLimit caps how many members of a dense bucket are
	// flagged. Only the strongest transmitters are plausibly the rogue
	// device itself; flagging the whole bucket would drown real towers that
	// merely share the area.
	DefaultClusterFlagLimit = 2

	// DefaultGridScale is the coordinate multiplier for grid bucketing,
	// yielding buckets on the order of 50-100 meters per side.
	DefaultGridScale = 200

	// DefaultBatchSize is the number of input files processed concurrently
	// when scanning multiple files.
	DefaultBatchSize = 4

	// DefaultDemoCount is the number of legitimate demo observations
	// generated around the demo center.
	DefaultDemoCount = 12

	// DefaultDemoCenterLat and DefaultDemoCenterLon place the demo batch in
	// Times Square, matching the original demo data.
	DefaultDemoCenterLat = 40.7580
	DefaultDemoCenterLon = -73.9855

	// DefaultFeedBatchSize is the number of feed observations accumulated
	// before a classification pass runs in watch mode.
	DefaultFeedBatchSize = 50

	// DefaultFeedFlushInterval bounds how long watch mode waits for a full
	// batch before classifying whatever has arrived.
	DefaultFeedFlushInterval = 30 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "stingraycatcher"
)

// Config holds all options for a classification run.
// This struct is populated from CLI flags and passed through the application
// via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ThresholdConfig, FeedConfig). The number of options is manageable,
// and nesting would add complexity without significant benefit.
type Config struct {
	// Inputs is the list of observation files to scan. Format is inferred
	// from the extension (.csv, .json, .db/.sqlite/.sqlite3).
	Inputs []string

	// RegistryPath is an optional YAML file replacing the built-in operator
	// registry and carrier colors, e.g. for non-US deployments.
	RegistryPath string

	// Registry is the operator registry used by the identity resolver and
	// the mismatch heuristic. Populated from RegistryPath or the built-in
	// defaults.
	Registry *OperatorRegistry

	// Colors maps carrier names to map marker colors.
	Colors CarrierColors

	// === Classification thresholds ===

	// StrongRSRPThreshold flags RSRP readings above this value (dBm).
	StrongRSRPThreshold float64

	// StrongRSSIThreshold flags RSSI readings above this value (dBm).
	StrongRSSIThreshold float64

	// DegenerateCodeMax is the highest TAC/LAC/CID value treated as
	// degenerate.
	DegenerateCodeMax int

	// ClusterMinSize is the bucket population at which the density
	// heuristic engages.
	ClusterMinSize int

	// ClusterFlagLimit caps how many members of a dense bucket are flagged.
	ClusterFlagLimit int

	// GridScale is the coordinate multiplier for grid bucketing.
	GridScale int

	// === Output ===

	// JSONReport enables JSON report output instead of the terminal summary.
	// Mutually exclusive with MarkdownReport and HTMLMap.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport and HTMLMap.
	MarkdownReport bool

	// HTMLMap enables HTML map output (Leaflet map with carrier-colored
	// markers and flagged sites highlighted).
	// Mutually exclusive with JSONReport and MarkdownReport.
	HTMLMap bool

	// OutputFile is the report destination path. Empty means stdout.
	// Directories are created automatically if they don't exist.
	OutputFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of input files scanned concurrently.
	BatchSize int

	// === Demo mode ===

	// DemoCenterLat and DemoCenterLon center the generated demo batch.
	DemoCenterLat float64
	DemoCenterLon float64

	// DemoCount is the number of legitimate demo observations to generate.
	DemoCount int

	// === Watch mode ===

	// FeedBrokers lists Kafka broker addresses for live-feed ingestion.
	// Empty means watch mode uses scheduled file re-scans instead.
	FeedBrokers []string

	// FeedTopic is the Kafka topic carrying observation JSON.
	FeedTopic string

	// FeedGroup is the Kafka consumer group ID.
	FeedGroup string

	// FeedBatchSize is the number of observations per classification pass.
	FeedBatchSize int

	// FeedFlushInterval bounds the wait for a full feed batch.
	FeedFlushInterval time.Duration

	// Schedule is a cron expression for periodic file re-scans in watch
	// mode (e.g. "*/5 * * * *").
	Schedule string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults; users override specific
// values after creation.
//
// Design decision: We use a constructor function instead of relying on zero
// values because most defaults are non-zero (thresholds, cluster sizes) and
// a zero threshold would silently change classification behavior.
func NewConfig() *Config {
	return &Config{
		Registry:            DefaultOperatorRegistry(),
		Colors:              DefaultCarrierColors(),
		StrongRSRPThreshold: DefaultStrongRSRPThreshold,
		StrongRSSIThreshold: DefaultStrongRSSIThreshold,
		DegenerateCodeMax:   DefaultDegenerateCodeMax,
		ClusterMinSize:      DefaultClusterMinSize,
		ClusterFlagLimit:    DefaultClusterFlagLimit,
		GridScale:           DefaultGridScale,
		BatchSize:           DefaultBatchSize,
		DemoCenterLat:       DefaultDemoCenterLat,
		DemoCenterLon:       DefaultDemoCenterLon,
		DemoCount:           DefaultDemoCount,
		FeedBatchSize:       DefaultFeedBatchSize,
		FeedFlushInterval:   DefaultFeedFlushInterval,
	}
}

// XDGDataDir returns the XDG data directory for StingRayCatcher.
// On Linux: ~/.local/share/stingraycatcher
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for StingRayCatcher.
// On Linux: ~/.config/stingraycatcher
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific sentinel error describing what is invalid.
//
// We return the first error found rather than collecting all errors because
// fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}
	if c.GridScale <= 0 {
		return ErrInvalidGridScale
	}
	if c.ClusterMinSize < 2 {
		return ErrInvalidClusterSize
	}
	if c.ClusterFlagLimit <= 0 {
		return ErrInvalidClusterFlagLimit
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if countTrue(c.JSONReport, c.MarkdownReport, c.HTMLMap) > 1 {
		return ErrConflictingReportFormats
	}
	return nil
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
