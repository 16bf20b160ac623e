// Package ingest loads cell-site observations from external sources and
// normalizes them into model.CellSite batches.
//
// Supported sources:
//   - CSV files with case-insensitive headers
//   - JSON arrays with case-insensitive keys
//   - SQLite databases exported by survey apps (read-only)
//   - A deterministic demo generator
//
// Normalization contract (what the classification engine relies on):
// every returned record has latitude and longitude set; every other field is
// either a validly parsed value or absent. Blank and unparseable numeric
// fields become absent rather than errors, and rows without coordinates are
// silently dropped. The engine never sees raw strings or partial parses.
package ingest
