package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/JamesPriceZV/stingraycatcher/internal/config"
	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// ErrMissingCoordinates is returned when an observation reaches the engine
// without latitude or longitude. The ingestion layer is responsible for
// filtering such records; hitting this error means an integration bug, so we
// fail fast rather than silently skipping the record.
var ErrMissingCoordinates = errors.New("observation is missing latitude/longitude")

// Heuristic defines the interface for individual per-record checks.
//
// Design decision: We use an interface rather than concrete types because:
//  1. Allows easy extension with new checks
//  2. Enables testing with synthetic heuristics
//  3. Keeps threshold state local to the check that uses it
type Heuristic interface {
	// Name returns the heuristic's name for logging.
	Name() string

	// Check inspects a single observation and returns the reason to attach
	// if the heuristic fires. Check must not mutate the observation.
	Check(site *model.CellSite) (model.Reason, bool)
}

// Options configures classifier behavior. All thresholds default to the
// calibrated values in the config package.
type Options struct {
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

	// Logger is used for structured logging during classification.
	Logger *slog.Logger
}

// DefaultOptions returns the calibrated default thresholds.
func DefaultOptions() Options {
	return Options{
		StrongRSRPThreshold: config.DefaultStrongRSRPThreshold,
		StrongRSSIThreshold: config.DefaultStrongRSSIThreshold,
		DegenerateCodeMax:   config.DefaultDegenerateCodeMax,
		ClusterMinSize:      config.DefaultClusterMinSize,
		ClusterFlagLimit:    config.DefaultClusterFlagLimit,
		GridScale:           config.DefaultGridScale,
	}
}

// Classifier coordinates the identity resolver, the per-record heuristics,
// and the cross-record density check.
//
// A Classifier holds no per-batch state: every Classify call is independent,
// so one Classifier can serve concurrent classification of disjoint batches.
type Classifier struct {
	resolver   *Resolver
	heuristics []Heuristic
	options    Options
}

// New creates a Classifier with all built-in heuristics registered in
// specification order. The registry is read-only shared configuration; it is
// consulted by both the identity resolver and the mismatch heuristic.
func New(registry *config.OperatorRegistry, opts ...func(*Options)) *Classifier {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	c := &Classifier{
		resolver: NewResolver(registry),
		options:  options,
	}

	// Registration order is the reason-output order.
	c.Register(NewUnknownIdentityHeuristic())
	c.Register(NewIdentityMismatchHeuristic(registry))
	c.Register(NewStrongSignalHeuristic(options.StrongRSRPThreshold, options.StrongRSSIThreshold))
	c.Register(NewDegenerateCodeHeuristic(options.DegenerateCodeMax))

	return c
}

// NewFromConfig creates a Classifier with thresholds taken from cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Classifier {
	return New(cfg.Registry, func(o *Options) {
		o.StrongRSRPThreshold = cfg.StrongRSRPThreshold
		o.StrongRSSIThreshold = cfg.StrongRSSIThreshold
		o.DegenerateCodeMax = cfg.DegenerateCodeMax
		o.ClusterMinSize = cfg.ClusterMinSize
		o.ClusterFlagLimit = cfg.ClusterFlagLimit
		o.GridScale = cfg.GridScale
		o.Logger = logger
	})
}

// Register appends a per-record heuristic. Built-in heuristics are already
// registered by New; this exists for extension and tests.
func (c *Classifier) Register(h Heuristic) {
	c.heuristics = append(c.heuristics, h)
}

// Classify runs both classification passes over a batch and returns a new
// annotated batch in the same order. Input records are cloned, never
// mutated, and no reference to either slice is retained after the call.
//
// Pass 1 resolves operator identities and evaluates the per-record
// heuristics; pass 2 runs the grid-density check across the whole batch.
// Absent optional fields simply fail to satisfy comparisons and never error.
// The only failure mode is a NaN coordinate, which violates the mandatory
// geolocation precondition.
func (c *Classifier) Classify(ctx context.Context, sites []model.CellSite) ([]model.CellSite, error) {
	out := make([]model.CellSite, len(sites))

	for i := range sites {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		site := sites[i].Clone()
		if math.IsNaN(site.Lat) || math.IsNaN(site.Lon) {
			return nil, fmt.Errorf("observation %d: %w", i, ErrMissingCoordinates)
		}

		// The reasons sequence must be present, not absent, even for
		// observations nothing flags.
		if site.Reasons == nil {
			site.Reasons = make([]model.Reason, 0)
		}

		c.resolver.Resolve(&site)

		for _, h := range c.heuristics {
			if reason, ok := h.Check(&site); ok {
				c.options.Logger.Debug("heuristic fired",
					"heuristic", h.Name(),
					"lat", site.Lat,
					"lon", site.Lon,
				)
				site.AddReason(reason.Category, reason.Message)
			}
		}

		out[i] = site
	}

	c.densityPass(out)

	return out, nil
}
