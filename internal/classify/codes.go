package classify

import "github.com/JamesPriceZV/stingraycatcher/internal/model"

// MsgDegenerateCode is the reason attached to observations whose area or
// cell codes sit in the lowest reserved range.
const MsgDegenerateCode = "degenerate area/cell code"

// DegenerateCodeHeuristic flags observations whose TAC, LAC, or CID is in
// the smallest reserved range. Production networks essentially never assign
// these values; simulators running default or unconfigured firmware often
// broadcast 0 or 1.
//
// TAC and LAC are checked independently: both are coarse area codes and
// either being degenerate is equally suspicious.
type DegenerateCodeHeuristic struct {
	// max is the highest code value treated as degenerate (inclusive).
	max int
}

// NewDegenerateCodeHeuristic creates the degenerate-code check.
func NewDegenerateCodeHeuristic(max int) *DegenerateCodeHeuristic {
	return &DegenerateCodeHeuristic{max: max}
}

// Name returns the heuristic name.
func (h *DegenerateCodeHeuristic) Name() string {
	return "degenerate_code"
}

// Check fires when any present area or cell code is at or below the
// degenerate maximum. Absent codes never fire.
func (h *DegenerateCodeHeuristic) Check(site *model.CellSite) (model.Reason, bool) {
	degenerate := (site.TAC != nil && *site.TAC <= h.max) ||
		(site.LAC != nil && *site.LAC <= h.max) ||
		(site.CID != nil && *site.CID <= int64(h.max))
	if !degenerate {
		return model.Reason{}, false
	}
	return model.Reason{
		Category: model.ReasonDegenerateCode,
		Message:  MsgDegenerateCode,
	}, true
}
