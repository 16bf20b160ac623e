package classify

import "github.com/JamesPriceZV/stingraycatcher/internal/model"

// MsgStrongSignal is the reason attached to implausibly strong observations.
const MsgStrongSignal = "unusually strong signal"

// StrongSignalHeuristic flags observations whose received power is too high
// for a legitimate macro cell. Signal at these levels implies the transmitter
// is within tens of meters of the receiver; a simulator operated from a
// vehicle or a nearby room produces exactly this signature.
type StrongSignalHeuristic struct {
	// rsrpThreshold flags RSRP readings strictly above this value (dBm).
	rsrpThreshold float64

	// rssiThreshold flags RSSI readings strictly above this value (dBm).
	rssiThreshold float64
}

// NewStrongSignalHeuristic creates the strong-signal check with the given
// thresholds in dBm.
func NewStrongSignalHeuristic(rsrpThreshold, rssiThreshold float64) *StrongSignalHeuristic {
	return &StrongSignalHeuristic{
		rsrpThreshold: rsrpThreshold,
		rssiThreshold: rssiThreshold,
	}
}

// Name returns the heuristic name.
func (h *StrongSignalHeuristic) Name() string {
	return "strong_signal"
}

// Check fires when RSRP or RSSI is present and above its threshold.
// Absent metrics never satisfy the comparison.
func (h *StrongSignalHeuristic) Check(site *model.CellSite) (model.Reason, bool) {
	strong := (site.RSRP != nil && *site.RSRP > h.rsrpThreshold) ||
		(site.RSSI != nil && *site.RSSI > h.rssiThreshold)
	if !strong {
		return model.Reason{}, false
	}
	return model.Reason{
		Category: model.ReasonStrongSignal,
		Message:  MsgStrongSignal,
	}, true
}
