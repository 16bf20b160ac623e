package classify

import (
	"fmt"

	"golang.org/x/text/cases"

	"github.com/JamesPriceZV/stingraycatcher/internal/config"
	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// MsgUnknownIdentity is the reason attached when an observation carries
// neither an operator label nor a complete MCC/MNC pair.
const MsgUnknownIdentity = "missing operator and network identity"

// Resolver fills in a missing operator label from the (MCC, MNC) registry.
//
// Resolution is a pure lookup limited to one field: if the operator is
// already present, or either MCC or MNC is absent, the record is left
// untouched. A registry miss is a normal "unknown" outcome, not an error.
type Resolver struct {
	registry *config.OperatorRegistry
}

// NewResolver creates a Resolver backed by the given registry.
func NewResolver(registry *config.OperatorRegistry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve sets the operator label if it is absent and the registry knows the
// observation's (MCC, MNC) pair.
func (r *Resolver) Resolve(site *model.CellSite) {
	if site.Operator != "" || site.MCC == nil || site.MNC == nil {
		return
	}
	if name, ok := r.registry.Lookup(*site.MCC, *site.MNC); ok {
		site.Operator = name
	}
}

// UnknownIdentityHeuristic flags observations that identify themselves
// neither by operator name nor by a complete MCC/MNC pair. It runs after the
// resolver, so a record only reaches this state when the registry could not
// help either.
type UnknownIdentityHeuristic struct{}

// NewUnknownIdentityHeuristic creates the unknown-identity check.
func NewUnknownIdentityHeuristic() *UnknownIdentityHeuristic {
	return &UnknownIdentityHeuristic{}
}

// Name returns the heuristic name.
func (h *UnknownIdentityHeuristic) Name() string {
	return "unknown_identity"
}

// Check fires when the operator is absent and MCC or MNC is absent.
func (h *UnknownIdentityHeuristic) Check(site *model.CellSite) (model.Reason, bool) {
	if site.Operator == "" && (site.MCC == nil || site.MNC == nil) {
		return model.Reason{
			Category: model.ReasonUnknownIdentity,
			Message:  MsgUnknownIdentity,
		}, true
	}
	return model.Reason{}, false
}

// IdentityMismatchHeuristic flags observations whose claimed operator
// contradicts what the registry says the (MCC, MNC) pair belongs to. A
// simulator spoofing a carrier's network codes while advertising a different
// name produces exactly this contradiction.
type IdentityMismatchHeuristic struct {
	registry *config.OperatorRegistry
}

// NewIdentityMismatchHeuristic creates the mismatch check.
func NewIdentityMismatchHeuristic(registry *config.OperatorRegistry) *IdentityMismatchHeuristic {
	return &IdentityMismatchHeuristic{registry: registry}
}

// Name returns the heuristic name.
func (h *IdentityMismatchHeuristic) Name() string {
	return "identity_mismatch"
}

// Check fires when MCC and MNC are present, the registry maps the pair to a
// known operator, the record claims an operator, and the two names differ
// under case-insensitive comparison. The reason names the expected operator.
//
// Comparison uses Unicode case folding rather than ASCII lowercasing so
// registries for non-US carriers compare correctly.
func (h *IdentityMismatchHeuristic) Check(site *model.CellSite) (model.Reason, bool) {
	if site.MCC == nil || site.MNC == nil || site.Operator == "" {
		return model.Reason{}, false
	}

	expected, ok := h.registry.Lookup(*site.MCC, *site.MNC)
	if !ok {
		return model.Reason{}, false
	}

	fold := cases.Fold()
	if fold.String(expected) == fold.String(site.Operator) {
		return model.Reason{}, false
	}

	return model.Reason{
		Category: model.ReasonIdentityMismatch,
		Message: fmt.Sprintf("MCC/MNC (%d-%d) mismatch: expected %s",
			*site.MCC, *site.MNC, expected),
	}, true
}
