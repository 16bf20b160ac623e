package config

import "strings"

// PLMN is an ordered (MCC, MNC) pair identifying a public land mobile
// network. Lookups are exact: no fuzzy matching, no MNC zero-padding.
type PLMN struct {
	// MCC is the mobile country code (310-316 for the US).
	MCC int

	// MNC is the mobile network code.
	MNC int
}

// OperatorRegistry maps PLMN identities to carrier display names.
// The registry is read-only configuration: the identity resolver and the
// mismatch heuristic read it, but never modify it, so a single registry can
// be shared across concurrent batches.
type OperatorRegistry struct {
	operators map[PLMN]string
}

// NewOperatorRegistry creates a registry from the given mapping.
// The map is copied so later mutation by the caller cannot affect lookups.
func NewOperatorRegistry(operators map[PLMN]string) *OperatorRegistry {
	m := make(map[PLMN]string, len(operators))
	for k, v := range operators {
		m[k] = v
	}
	return &OperatorRegistry{operators: m}
}

// DefaultOperatorRegistry returns the built-in US carrier table.
// Callers targeting other countries supply their own registry via a YAML
// file; the heuristics themselves never change.
func DefaultOperatorRegistry() *OperatorRegistry {
	return NewOperatorRegistry(map[PLMN]string{
		{MCC: 310, MNC: 410}: "AT&T",
		{MCC: 310, MNC: 150}: "AT&T",
		{MCC: 310, MNC: 260}: "T-Mobile",
		{MCC: 310, MNC: 160}: "T-Mobile",
		{MCC: 311, MNC: 480}: "Verizon",
		{MCC: 311, MNC: 490}: "Verizon",
		{MCC: 311, MNC: 870}: "US Cellular",
	})
}

// Lookup returns the operator name for an exact (MCC, MNC) pair.
// A miss is a normal "unknown" outcome, not an error.
func (r *OperatorRegistry) Lookup(mcc, mnc int) (string, bool) {
	name, ok := r.operators[PLMN{MCC: mcc, MNC: mnc}]
	return name, ok
}

// Len returns the number of registered PLMN entries.
func (r *OperatorRegistry) Len() int {
	return len(r.operators)
}

// DefaultMarkerColor is used for carriers without a configured color and for
// observations with no operator at all.
const DefaultMarkerColor = "gray"

// CarrierColors maps carrier display names to map marker colors.
type CarrierColors map[string]string

// DefaultCarrierColors returns the built-in US carrier color scheme.
func DefaultCarrierColors() CarrierColors {
	return CarrierColors{
		"AT&T":        "blue",
		"Verizon":     "red",
		"T-Mobile":    "magenta",
		"US Cellular": "green",
	}
}

// ColorFor returns the marker color for a carrier name, matching
// case-insensitively. Unknown or empty carriers get DefaultMarkerColor.
func (c CarrierColors) ColorFor(carrier string) string {
	if carrier == "" {
		return DefaultMarkerColor
	}
	for name, color := range c {
		if strings.EqualFold(name, carrier) {
			return color
		}
	}
	return DefaultMarkerColor
}
