// Package log provides location-aware logging built on the standard slog
// package.
//
// Survey logs are frequently shared when reporting suspected simulators, and
// precise observation coordinates reveal where the analyst was standing. The
// GeoHandler coarsens latitude/longitude attributes to roughly kilometer
// precision before they reach the underlying handler, so debug output stays
// useful for correlating records without disclosing exact positions.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("heuristic fired", "lat", 40.758012, "lon", -73.985512)
//	// logs lat=40.76 lon=-73.99
//
// Report output is unaffected; only log attributes are coarsened.
package log
