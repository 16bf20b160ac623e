// Package classify implements the anomaly-classification engine that flags
// observations which look like they originate from a cell-site simulator
// rather than a legitimate carrier tower.
//
// # Design Philosophy
//
// The package follows a modular heuristic pattern where each per-record check
// is implemented as a separate Heuristic. This design was chosen because:
//  1. Each check has unique logic and threshold requirements
//  2. Heuristics are independent; evaluation order only affects reason order
//  3. It makes it easy to add new checks without modifying existing code
//  4. It simplifies testing of individual checks
//
// # Heuristics
//
// Per-record (pass 1), in evaluation order:
//   - Unknown identity: neither an operator label nor a full MCC/MNC pair
//   - Identity mismatch: claimed operator contradicts the MCC/MNC registry
//   - Strong signal: RSRP above -65 dBm or RSSI above -50 dBm
//   - Degenerate codes: TAC, LAC, or CID in the lowest reserved range
//
// Cross-record (pass 2):
//   - Dense cluster: four or more observations in one 50-100m grid bucket;
//     the two strongest by RSRP are flagged
//
// # Guarantees
//
// Classification is a pure transform: it takes a batch of observations and a
// read-only registry/threshold configuration, and returns a new annotated
// batch without retaining references to either. It is idempotent (reasons
// are deduplicated per category), deterministic (density ties break on batch
// order), and total over any combination of present/absent optional fields.
// The only error condition is the mandatory-geolocation precondition, which
// fails fast to surface integration bugs in the ingestion layer.
package classify
