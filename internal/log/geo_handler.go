package log

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
)

// coordinateKeys contains attribute keys holding coordinates that should be
// coarsened before logging.
var coordinateKeys = map[string]bool{
	"lat":        true,
	"lon":        true,
	"lng":        true,
	"latitude":   true,
	"longitude":  true,
	"center_lat": true,
	"center_lon": true,
}

// coordinatePrecision is the number of decimal places kept for logged
// coordinates. Two decimal places is roughly 1.1 km at the equator, enough
// to correlate log lines with a neighborhood but not with a street corner.
const coordinatePrecision = 2

// GeoHandler wraps an slog.Handler to coarsen coordinate attributes.
// It intercepts log records and rounds latitude/longitude values before
// passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites keep logging real values; the policy lives in one place
type GeoHandler struct {
	// handler is the underlying slog handler that receives coarsened records.
	handler slog.Handler
}

// NewGeoHandler creates a new GeoHandler wrapping the given handler.
// If handler is nil, the returned GeoHandler uses slog.Default().Handler().
func NewGeoHandler(handler slog.Handler) *GeoHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &GeoHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *GeoHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle coarsens the record's coordinate attributes and passes it to the
// underlying handler.
func (h *GeoHandler) Handle(ctx context.Context, r slog.Record) error {
	coarsened := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		coarsened.AddAttrs(h.coarsenAttr(a))
		return true
	})

	return h.handler.Handle(ctx, coarsened)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are coarsened before being added.
func (h *GeoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	coarsenedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		coarsenedAttrs[i] = h.coarsenAttr(a)
	}
	return &GeoHandler{handler: h.handler.WithAttrs(coarsenedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *GeoHandler) WithGroup(name string) slog.Handler {
	return &GeoHandler{handler: h.handler.WithGroup(name)}
}

// coarsenAttr coarsens a single attribute, recursively handling groups.
func (h *GeoHandler) coarsenAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		coarsenedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			coarsenedAttrs[i] = h.coarsenAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(coarsenedAttrs...)}
	}

	if !coordinateKeys[strings.ToLower(a.Key)] {
		return a
	}
	if a.Value.Kind() != slog.KindFloat64 {
		return a
	}

	return slog.Float64(a.Key, CoarsenCoordinate(a.Value.Float64()))
}

// CoarsenCoordinate rounds a coordinate to the logging precision.
// NaN passes through unchanged so broken inputs remain visible in logs.
func CoarsenCoordinate(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	scale := math.Pow(10, coordinatePrecision)
	return math.Round(v*scale) / scale
}

// NewLogger creates a new slog.Logger with coordinate coarsening.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	geoHandler := NewGeoHandler(textHandler)

	return slog.New(geoHandler)
}

// NewJSONLogger creates a new slog.Logger with coordinate coarsening that
// outputs JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with coarsening.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	geoHandler := NewGeoHandler(jsonHandler)

	return slog.New(geoHandler)
}
