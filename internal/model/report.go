package model

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze report timestamps.
// Production code uses the real clock; tests inject a fake via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for report timestamps.
// Pass nil to reset to the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// ScanReport is the result of classifying one batch of observations.
// It contains the classified records plus batch-level metadata.
//
// Design decision: We use a single struct carried through the pipeline rather
// than returning values from each step because steps accumulate into it
// (import fills Sites, classification replaces them with annotated copies)
// and report writers consume it whole.
type ScanReport struct {
	// Source describes where the batch came from (file path, "demo", or a
	// Kafka topic).
	Source string `json:"source"`

	// DateScanned is the timestamp when classification was performed.
	DateScanned time.Time `json:"date_scanned"`

	// Sites contains the classified observations in batch order.
	Sites []CellSite `json:"sites"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Summary contains the aggregated counts for human-readable output.
	Summary *Summary `json:"summary,omitempty"`

	// Error contains any error that occurred during the run.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// Summary is a summarized, human-readable view of a ScanReport.
//
// Design decision: We create a separate summary rather than printing parts of
// ScanReport directly because it can be serialized to JSON for tools that
// want structured but compact output, and it keeps presentation concerns out
// of the raw batch data.
type Summary struct {
	// Source describes where the batch came from.
	Source string `json:"source"`

	// DateScanned is when the batch was classified.
	DateScanned time.Time `json:"date_scanned"`

	// TotalSites is the number of observations in the batch.
	TotalSites int `json:"total_sites"`

	// SuspectedCount is the number of flagged observations.
	SuspectedCount int `json:"suspected_count"`

	// === Per-category counts ===

	// UnknownIdentityCount counts observations flagged for missing identity.
	UnknownIdentityCount int `json:"unknown_identity_count"`

	// IdentityMismatchCount counts observations whose claimed operator
	// contradicts the MCC/MNC registry.
	IdentityMismatchCount int `json:"identity_mismatch_count"`

	// StrongSignalCount counts observations with implausibly strong signal.
	StrongSignalCount int `json:"strong_signal_count"`

	// DegenerateCodeCount counts observations with reserved-range area or
	// cell codes.
	DegenerateCodeCount int `json:"degenerate_code_count"`

	// DenseClusterCount counts observations flagged by the density heuristic.
	DenseClusterCount int `json:"dense_cluster_count"`

	// Error contains any error message if the run failed.
	Error string `json:"error,omitempty"`
}

// NewScanReport creates an empty report for the given source with the
// scan timestamp taken from the injected clock.
func NewScanReport(source string) *ScanReport {
	return &ScanReport{
		Source:      source,
		DateScanned: clock.Now(),
		Sites:       make([]CellSite, 0),
	}
}

// SuspectedSites returns the flagged observations in batch order.
func (r *ScanReport) SuspectedSites() []CellSite {
	suspected := make([]CellSite, 0)
	for _, s := range r.Sites {
		if s.SuspectedSimulator {
			suspected = append(suspected, s)
		}
	}
	return suspected
}

// NewSummary builds a Summary from a classified report.
func NewSummary(r *ScanReport) *Summary {
	s := &Summary{
		Source:      r.Source,
		DateScanned: r.DateScanned,
		TotalSites:  len(r.Sites),
	}
	if r.Error != nil {
		s.Error = r.Error.Error()
	}

	for i := range r.Sites {
		site := &r.Sites[i]
		if site.SuspectedSimulator {
			s.SuspectedCount++
		}
		for _, reason := range site.Reasons {
			switch reason.Category {
			case ReasonUnknownIdentity:
				s.UnknownIdentityCount++
			case ReasonIdentityMismatch:
				s.IdentityMismatchCount++
			case ReasonStrongSignal:
				s.StrongSignalCount++
			case ReasonDegenerateCode:
				s.DegenerateCodeCount++
			case ReasonDenseCluster:
				s.DenseClusterCount++
			}
		}
	}
	return s
}

// HasSuspects reports whether any observation in the summary was flagged.
func (s *Summary) HasSuspects() bool {
	return s.SuspectedCount > 0
}
