package model

// ReasonCategory identifies which heuristic produced a classification reason.
// Categories make reason deduplication possible: re-running classification on
// an already-classified observation must not append a second reason for the
// same heuristic.
type ReasonCategory string

// Reason categories, one per heuristic. The declaration order matches the
// heuristic evaluation order of the classification engine.
const (
	// ReasonUnknownIdentity fires when an observation has neither an operator
	// label nor a complete MCC/MNC pair.
	ReasonUnknownIdentity ReasonCategory = "unknown_identity"

	// ReasonIdentityMismatch fires when the MCC/MNC pair maps to a different
	// operator than the one the observation claims.
	ReasonIdentityMismatch ReasonCategory = "identity_mismatch"

	// ReasonStrongSignal fires on implausibly strong RSRP or RSSI. A macro
	// cell at this power implies the transmitter is within a few meters of
	// the receiver, which is the signature of a simulator placed nearby.
	ReasonStrongSignal ReasonCategory = "strong_signal"

	// ReasonDegenerateCode fires on TAC/LAC/CID values in the lowest reserved
	// range. Production networks almost never assign them; unconfigured
	// simulator firmware often does.
	ReasonDegenerateCode ReasonCategory = "degenerate_code"

	// ReasonDenseCluster fires on the strongest members of an implausibly
	// dense grid bucket of distinct reported cells.
	ReasonDenseCluster ReasonCategory = "dense_cluster"
)

// Reason is a single classification justification.
type Reason struct {
	// Category identifies the heuristic that produced this reason.
	Category ReasonCategory `json:"category"`

	// Message is the human-readable justification shown in reports.
	Message string `json:"message"`
}

// CellSite is a single normalized observation of a nearby base station.
//
// Latitude and longitude are mandatory; the ingestion layer drops records
// without them before they reach the classification engine. Every other
// network-identity and signal field is independently optional. Optional
// numeric fields use pointers so that "absent" is distinguishable from zero,
// which matters for heuristics like the degenerate-code check where 0 is a
// meaningful (and suspicious) value.
type CellSite struct {
	// Lat is the observation latitude in decimal degrees.
	Lat float64 `json:"lat"`

	// Lon is the observation longitude in decimal degrees.
	Lon float64 `json:"lon"`

	// Operator is the carrier display name (e.g., "AT&T"). Empty means absent.
	Operator string `json:"operator,omitempty"`

	// MCC is the mobile country code.
	MCC *int `json:"mcc,omitempty"`

	// MNC is the mobile network code.
	MNC *int `json:"mnc,omitempty"`

	// LAC is the 2G/3G location area code.
	LAC *int `json:"lac,omitempty"`

	// TAC is the LTE/NR tracking area code.
	TAC *int `json:"tac,omitempty"`

	// CID is the cell identifier (eNB+sector for LTE).
	CID *int64 `json:"cid,omitempty"`

	// PCI is the physical cell identifier (LTE/NR, 0-503 for LTE).
	PCI *int `json:"pci,omitempty"`

	// ARFCN is the absolute radio frequency channel number
	// (EARFCN/NR-ARFCN/UARFCN/GSM-ARFCN depending on technology).
	ARFCN *int `json:"arfcn,omitempty"`

	// Band is the frequency band label (e.g., "B2").
	Band string `json:"band,omitempty"`

	// RSRP is the reference signal received power in dBm.
	RSRP *float64 `json:"rsrp,omitempty"`

	// RSRQ is the reference signal received quality in dB.
	RSRQ *float64 `json:"rsrq,omitempty"`

	// RSSI is the received signal strength indicator in dBm.
	RSSI *float64 `json:"rssi,omitempty"`

	// Timestamp is the observation time as reported by the source.
	// It is carried through opaquely and never parsed.
	Timestamp string `json:"timestamp,omitempty"`

	// SuspectedSimulator is true when at least one heuristic flagged this
	// observation. It is true if and only if Reasons is non-empty.
	SuspectedSimulator bool `json:"suspected_simulator"`

	// Reasons lists the justifications for the suspicion flag in heuristic
	// evaluation order. Non-nil (possibly empty) after classification.
	Reasons []Reason `json:"reasons"`
}

// HasReason reports whether a reason of the given category is already present.
func (s *CellSite) HasReason(category ReasonCategory) bool {
	for _, r := range s.Reasons {
		if r.Category == category {
			return true
		}
	}
	return false
}

// AddReason appends a reason and raises the suspicion flag.
// Adding a second reason of an already-present category is a no-op, which
// makes classification idempotent.
func (s *CellSite) AddReason(category ReasonCategory, message string) {
	if s.HasReason(category) {
		return
	}
	s.Reasons = append(s.Reasons, Reason{Category: category, Message: message})
	s.SuspectedSimulator = true
}

// ReasonMessages returns the reason strings in insertion order.
// Used by report writers that render justifications as plain text.
func (s *CellSite) ReasonMessages() []string {
	msgs := make([]string, len(s.Reasons))
	for i, r := range s.Reasons {
		msgs[i] = r.Message
	}
	return msgs
}

// Clone returns a deep copy of the observation.
// The classification engine clones every input record so that callers never
// share reason slices with the classified output.
func (s CellSite) Clone() CellSite {
	c := s
	if s.Reasons != nil {
		c.Reasons = make([]Reason, len(s.Reasons))
		copy(c.Reasons, s.Reasons)
	}
	return c
}

// IntPtr returns a pointer to v. Convenience for building observations.
func IntPtr(v int) *int { return &v }

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }
