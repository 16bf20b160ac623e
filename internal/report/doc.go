// Package report renders classification results in multiple output formats.
//
// Supported formats:
//   - Simple: human-readable text for terminal display
//   - JSON: structured output for tool integration
//   - Markdown: documentation-friendly output with summary charts
//   - HTML map: interactive Leaflet map of the surveyed area
//
// All writers implement the Writer interface, allowing output format
// selection at runtime and multi-destination output via MultiWriter.
package report
