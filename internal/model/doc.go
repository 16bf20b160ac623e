// Package model defines the core data structures used throughout StingRayCatcher.
//
// This package contains the following main types:
//   - CellSite: A single normalized base-station observation
//   - Reason: A classification justification attached to an observation
//   - ScanReport: The result of classifying one batch of observations
//   - Summary: A summarized, human-readable view of a ScanReport
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (ingest, classify, report) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
